package readstore

import (
	"context"
	"time"

	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"
	"bookit-api/internal/pkg/pgconv"
	"bookit-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const findServiceByIDSQL = `
SELECT id, title, description, price_cents, duration_minutes, is_active, created_at, updated_at
FROM services
WHERE id = $1
`

const findServicesFirstPageSQL = `
SELECT id, title, price_cents, duration_minutes, is_active, created_at
FROM services
WHERE ($1::boolean = false OR is_active)
ORDER BY created_at DESC, id DESC
LIMIT $2
`

const findServicesKeysetSQL = `
SELECT id, title, price_cents, duration_minutes, is_active, created_at
FROM services
WHERE ($1::boolean = false OR is_active)
  AND (created_at, id) < ($2, $3)
ORDER BY created_at DESC, id DESC
LIMIT $4
`

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(dbtx db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: dbtx}
}

func (s *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	var view queries.ServiceView
	err := s.db.QueryRow(ctx, findServiceByIDSQL, id).Scan(
		&view.ID,
		&view.Title,
		&view.Description,
		&view.PriceCents,
		&view.DurationMinutes,
		&view.IsActive,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by id", err)
	}
	return &view, nil
}

func (s *ServiceReadStore) FindFirstPage(ctx context.Context, activeOnly bool, limit int32) ([]*queries.ServiceListItem, error) {
	rows, err := s.db.Query(ctx, findServicesFirstPageSQL, activeOnly, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	return scanServiceListItems(rows)
}

func (s *ServiceReadStore) FindKeyset(ctx context.Context, activeOnly bool, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ServiceListItem, error) {
	rows, err := s.db.Query(ctx, findServicesKeysetSQL, activeOnly, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	return scanServiceListItems(rows)
}

func scanServiceListItems(rows pgx.Rows) ([]*queries.ServiceListItem, error) {
	defer rows.Close()

	var items []*queries.ServiceListItem
	for rows.Next() {
		var item queries.ServiceListItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.PriceCents,
			&item.DurationMinutes,
			&item.IsActive,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read service rows", err)
	}
	return items, nil
}
