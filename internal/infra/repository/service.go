package repository

import (
	"context"

	"bookit-api/internal/domain/service"
	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"

	"github.com/google/uuid"
)

const createServiceSQL = `
INSERT INTO services (id, title, description, price_cents, duration_minutes, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

const updateServiceSQL = `
UPDATE services
SET title = $2, description = $3, price_cents = $4, duration_minutes = $5, is_active = $6, updated_at = now()
WHERE id = $1
`

const deleteServiceSQL = `
DELETE FROM services
WHERE id = $1
`

type ServiceRepository struct{}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{}
}

func (r *ServiceRepository) Create(ctx context.Context, tx db.DBTX, s *service.Service) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createServiceSQL,
		s.ID(),
		s.Title().Value(),
		s.Description().Value(),
		s.Price().Cents(),
		s.DurationMinutes(),
		s.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create service", err)
	}
	return id, nil
}

func (r *ServiceRepository) Update(ctx context.Context, tx db.DBTX, s *service.Service) error {
	tag, err := tx.Exec(ctx, updateServiceSQL,
		s.ID(),
		s.Title().Value(),
		s.Description().Value(),
		s.Price().Cents(),
		s.DurationMinutes(),
		s.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteServiceSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}
