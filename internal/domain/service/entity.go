package service

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable offering. Duration determines the end time of every
// booking made against it.
type Service struct {
	id              uuid.UUID
	title           Title
	description     Description
	price           Money
	durationMinutes int
	isActive        bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewService(title Title, description Description, price Money, durationMinutes int, isActive bool) (*Service, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	return &Service{
		id:              uuid.New(),
		title:           title,
		description:     description,
		price:           price,
		durationMinutes: durationMinutes,
		isActive:        isActive,
	}, nil
}

func ReconstructService(id uuid.UUID, title Title, description Description, price Money, durationMinutes int, isActive bool, createdAt, updatedAt time.Time) *Service {
	return &Service{
		id:              id,
		title:           title,
		description:     description,
		price:           price,
		durationMinutes: durationMinutes,
		isActive:        isActive,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (s *Service) ID() uuid.UUID            { return s.id }
func (s *Service) Title() Title             { return s.title }
func (s *Service) Description() Description { return s.description }
func (s *Service) Price() Money             { return s.price }
func (s *Service) DurationMinutes() int     { return s.durationMinutes }
func (s *Service) IsActive() bool           { return s.isActive }
func (s *Service) CreatedAt() time.Time     { return s.createdAt }
func (s *Service) UpdatedAt() time.Time     { return s.updatedAt }

func (s *Service) Duration() time.Duration {
	return time.Duration(s.durationMinutes) * time.Minute
}
