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
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
	ErrInvalidCursor   = errs.New("invalid cursor")
)

type BookingFilters struct {
	Status *string
	From   *time.Time
	To     *time.Time
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, filters BookingFilters, limit int32) ([]*BookingListItem, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, filters BookingFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindAllFirstPage(ctx context.Context, filters BookingFilters, limit int32) ([]*BookingListItem, error)
	FindAllKeyset(ctx context.Context, filters BookingFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses actor checks; used for idempotent replay reads.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListForActor(ctx context.Context, actor user.Actor, filters BookingFilters, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	repo BookingReadStore
}

func NewBookingQueries(repo BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Owns(view.UserID) {
		return nil, ErrBookingAccess
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

// Admins list every booking; everyone else only their own.
func (q *bookingQueriesImpl) ListForActor(ctx context.Context, actor user.Actor, filters BookingFilters, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*BookingListItem
	var err error
	if cursor == nil || cursor.After == "" {
		if actor.IsAdmin() {
			rows, err = q.repo.FindAllFirstPage(ctx, filters, int32(limit+1))
		} else {
			rows, err = q.repo.FindByUserFirstPage(ctx, actor.ID, filters, int32(limit+1))
		}
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		if actor.IsAdmin() {
			rows, err = q.repo.FindAllKeyset(ctx, filters, lastCreatedAt, lastID, int32(limit+1))
		} else {
			rows, err = q.repo.FindByUserKeyset(ctx, actor.ID, filters, lastCreatedAt, lastID, int32(limit+1))
		}
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
