package response

import (
	"time"

	"bookit-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int32     `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ServiceListItemResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int32     `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromServiceView(view *queries.ServiceView) *ServiceResponse {
	var resp ServiceResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromServiceList(items []*queries.ServiceListItem) []*ServiceListItemResponse {
	resp := make([]*ServiceListItemResponse, len(items))
	for i, item := range items {
		var r ServiceListItemResponse
		_ = copier.Copy(&r, item)
		resp[i] = &r
	}
	return resp
}
