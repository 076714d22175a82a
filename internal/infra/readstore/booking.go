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

const findBookingByIDSQL = `
SELECT b.id, b.user_id, u.email, b.service_id, s.title, b.start_time, b.end_time,
       b.status, s.price_cents, b.created_at, b.updated_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN services s ON s.id = b.service_id
WHERE b.id = $1
`

const bookingListColumns = `
SELECT b.id, b.service_id, s.title, b.start_time, b.end_time, b.status, b.created_at
FROM bookings b
JOIN services s ON s.id = b.service_id
`

// The optional filters collapse to no-ops when their parameter is NULL,
// keeping a single prepared statement per shape.
const bookingListFilters = `
  AND ($1::text IS NULL OR b.status = $1)
  AND ($2::timestamptz IS NULL OR b.start_time >= $2)
  AND ($3::timestamptz IS NULL OR b.start_time < $3)
`

const findBookingsByUserFirstPageSQL = bookingListColumns + `
WHERE b.user_id = $4
` + bookingListFilters + `
ORDER BY b.created_at DESC, b.id DESC
LIMIT $5
`

const findBookingsByUserKeysetSQL = bookingListColumns + `
WHERE b.user_id = $4
` + bookingListFilters + `
  AND (b.created_at, b.id) < ($5, $6)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $7
`

const findAllBookingsFirstPageSQL = bookingListColumns + `
WHERE true
` + bookingListFilters + `
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`

const findAllBookingsKeysetSQL = bookingListColumns + `
WHERE true
` + bookingListFilters + `
  AND (b.created_at, b.id) < ($4, $5)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $6
`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView
	err := s.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&view.ID,
		&view.UserID,
		&view.UserEmail,
		&view.ServiceID,
		&view.ServiceTitle,
		&view.StartTime,
		&view.EndTime,
		&view.Status,
		&view.PriceCents,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return &view, nil
}

func (s *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, filters queries.BookingFilters, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, findBookingsByUserFirstPageSQL, filters.Status, filters.From, filters.To, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanBookingListItems(rows)
}

func (s *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, filters queries.BookingFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, findBookingsByUserKeysetSQL, filters.Status, filters.From, filters.To, userID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanBookingListItems(rows)
}

func (s *BookingReadStore) FindAllFirstPage(ctx context.Context, filters queries.BookingFilters, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, findAllBookingsFirstPageSQL, filters.Status, filters.From, filters.To, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanBookingListItems(rows)
}

func (s *BookingReadStore) FindAllKeyset(ctx context.Context, filters queries.BookingFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, findAllBookingsKeysetSQL, filters.Status, filters.From, filters.To, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanBookingListItems(rows)
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID,
			&item.ServiceID,
			&item.ServiceTitle,
			&item.StartTime,
			&item.EndTime,
			&item.Status,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}
