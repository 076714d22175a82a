package queries

import (
	"context"
	"time"

	"bookit-api/internal/infra"
	"bookit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrServiceNotFound = errs.New("service not found")

type ServiceFilters struct {
	// ActiveOnly hides deactivated services; forced on for non-admin callers.
	ActiveOnly bool
}

type ServiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	FindFirstPage(ctx context.Context, activeOnly bool, limit int32) ([]*ServiceListItem, error)
	FindKeyset(ctx context.Context, activeOnly bool, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ServiceListItem, error)
}

type ServiceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	List(ctx context.Context, filters ServiceFilters, cursor *Cursor, limit int) ([]*ServiceListItem, *Cursor, error)
}

type serviceQueriesImpl struct {
	repo ServiceReadStore
}

func NewServiceQueries(repo ServiceReadStore) ServiceQueries {
	return &serviceQueriesImpl{repo: repo}
}

func (q *serviceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ServiceView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *serviceQueriesImpl) List(ctx context.Context, filters ServiceFilters, cursor *Cursor, limit int) ([]*ServiceListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*ServiceListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindFirstPage(ctx, filters.ActiveOnly, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindKeyset(ctx, filters.ActiveOnly, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
