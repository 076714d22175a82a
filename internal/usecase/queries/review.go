package queries

import (
	"context"
	"time"

	"bookit-api/internal/domain/user"
	"bookit-api/internal/infra"
	"bookit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound = errs.New("review not found")
	ErrReviewAccess   = errs.New("review access denied")
)

type ReviewFilters struct {
	MinRating *int
	MaxRating *int
}

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	FindByServiceFirstPage(ctx context.Context, serviceID uuid.UUID, limit int32, minRating, maxRating *int) ([]*ReviewListItem, error)
	FindByServiceKeyset(ctx context.Context, serviceID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32, minRating, maxRating *int) ([]*ReviewListItem, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*ReviewListItem, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReviewListItem, error)
	GetServiceRatingStats(ctx context.Context, serviceID uuid.UUID) (*ServiceRatingStats, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByService(ctx context.Context, serviceID uuid.UUID, filters ReviewFilters, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error)
	ListByUser(ctx context.Context, userID uuid.UUID, actor user.Actor, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error)
	GetServiceRatingStats(ctx context.Context, serviceID uuid.UUID) (*ServiceRatingStats, error)
}

type reviewQueriesImpl struct {
	repo ReviewReadStore
}

func NewReviewQueries(repo ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{repo: repo}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *reviewQueriesImpl) ListByService(ctx context.Context, serviceID uuid.UUID, filters ReviewFilters, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*ReviewListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByServiceFirstPage(ctx, serviceID, int32(limit+1), filters.MinRating, filters.MaxRating)
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByServiceKeyset(ctx, serviceID, lastCreatedAt, lastID, int32(limit+1), filters.MinRating, filters.MaxRating)
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

func (q *reviewQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, actor user.Actor, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error) {
	if !actor.IsAdmin() && !actor.Owns(userID) {
		return nil, nil, ErrReviewAccess
	}

	limit = ValidateLimit(limit)
	var rows []*ReviewListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByUserFirstPage(ctx, userID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByUserKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit+1))
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

func (q *reviewQueriesImpl) GetServiceRatingStats(ctx context.Context, serviceID uuid.UUID) (*ServiceRatingStats, error) {
	stats, err := q.repo.GetServiceRatingStats(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return stats, nil
}
