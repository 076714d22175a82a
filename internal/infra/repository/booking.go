package repository

import (
	"context"

	"bookit-api/internal/domain/booking"
	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"

	"github.com/google/uuid"
)

const createBookingSQL = `
INSERT INTO bookings (id, user_id, service_id, start_time, end_time, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

const updateBookingSlotSQL = `
UPDATE bookings
SET start_time = $2, end_time = $3, updated_at = now()
WHERE id = $1
`

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1
`

const deleteBookingSQL = `
DELETE FROM bookings
WHERE id = $1
`

// Open-interval overlap: touching endpoints do not conflict. Only
// pending and confirmed bookings hold their slot.
const bookingConflictSQL = `
SELECT EXISTS (
    SELECT 1
    FROM bookings
    WHERE service_id = $1
      AND status IN ('pending', 'confirmed')
      AND start_time < $3
      AND end_time > $2
      AND ($4::uuid IS NULL OR id <> $4)
)
`

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.UserID(),
		b.ServiceID(),
		b.Slot().Start(),
		b.Slot().End(),
		b.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) UpdateSlot(ctx context.Context, tx db.DBTX, id uuid.UUID, slot booking.TimeSlot) error {
	tag, err := tx.Exec(ctx, updateBookingSlotSQL, id, slot.Start(), slot.End())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) HasConflict(ctx context.Context, tx db.DBTX, serviceID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, bookingConflictSQL, serviceID, slot.Start(), slot.End(), excludeID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking conflict", err)
	}
	return exists, nil
}
