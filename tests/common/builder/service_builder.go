//go:build unit || e2e

package builder

import (
	"time"

	reqdto "bookit-api/internal/handler/dto/request"
	"bookit-api/internal/usecase/queries"
	"bookit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ServiceBuilder struct {
	ID              uuid.UUID
	Title           string
	Description     string
	PriceCents      int64
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewServiceBuilder() *ServiceBuilder {
	now := time.Now()
	return &ServiceBuilder{
		ID:              uuid.New(),
		Title:           "Deep Tissue Massage",
		Description:     "60 minute session",
		PriceCents:      8000,
		DurationMinutes: 60,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *ServiceBuilder) WithTitle(title string) *ServiceBuilder {
	s.Title = title
	return s
}

func (s *ServiceBuilder) Inactive() *ServiceBuilder {
	s.IsActive = false
	return s
}

func (s *ServiceBuilder) BuildCreateRequestDTO() reqdto.CreateServiceRequest {
	active := s.IsActive
	return reqdto.CreateServiceRequest{
		Title:           s.Title,
		Description:     s.Description,
		PriceCents:      s.PriceCents,
		DurationMinutes: s.DurationMinutes,
		IsActive:        &active,
	}
}

func (s *ServiceBuilder) BuildViewQuery() *queries.ServiceView {
	return &queries.ServiceView{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		PriceCents:      s.PriceCents,
		DurationMinutes: int32(s.DurationMinutes),
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (s *ServiceBuilder) BuildListItem() *queries.ServiceListItem {
	return &queries.ServiceListItem{
		ID:              s.ID,
		Title:           s.Title,
		PriceCents:      s.PriceCents,
		DurationMinutes: int32(s.DurationMinutes),
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
	}
}

func (s *ServiceBuilder) BuildSnapshot() *shared.ServiceSnapshot {
	return &shared.ServiceSnapshot{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		PriceCents:      s.PriceCents,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
	}
}
