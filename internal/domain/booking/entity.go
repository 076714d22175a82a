package booking

import (
	"errors"
	"time"

	"bookit-api/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot   = errors.New("end time must be after start time")
	ErrStartTimeInPast   = errors.New("start time cannot be in the past")
	ErrServiceInactive   = errors.New("service is not active")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrForbidden         = errors.New("actor is not allowed to modify this booking")
	ErrTerminalStatus    = errors.New("booking is in a terminal status")
	ErrAlreadyStarted    = errors.New("booking has already started")
	ErrOwnerOnlyCancel   = errors.New("owner may only cancel a booking")
	ErrNotReschedulable  = errors.New("only pending or confirmed bookings can be rescheduled")
)

// ServiceSpec is the slice of the service a booking needs: the duration
// that fixes the slot end and the active flag gating creation.
type ServiceSpec struct {
	ID              uuid.UUID
	DurationMinutes int
	IsActive        bool
}

func (s ServiceSpec) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type Booking struct {
	id        uuid.UUID
	userID    uuid.UUID
	serviceID uuid.UUID
	slot      TimeSlot
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a pending booking for the service. The slot end is
// always derived from the service duration, never supplied by the caller.
func NewBooking(userID uuid.UUID, svc ServiceSpec, startTime, now time.Time) (*Booking, error) {
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}
	if !startTime.After(now) {
		return nil, ErrStartTimeInPast
	}

	slot, err := SlotFromStart(startTime, svc.Duration())
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:        uuid.New(),
		userID:    userID,
		serviceID: svc.ID,
		slot:      slot,
		status:    StatusPending,
	}, nil
}

func ReconstructBooking(id, userID, serviceID uuid.UUID, slot TimeSlot, status Status, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		userID:    userID,
		serviceID: serviceID,
		slot:      slot,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) ServiceID() uuid.UUID { return b.serviceID }
func (b *Booking) Slot() TimeSlot       { return b.slot }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) IsOwnedBy(actor user.Actor) bool {
	return actor.Owns(b.userID)
}

// ChangeStatus applies the lifecycle rules. Admins may force any valid
// status; owners may only cancel an active booking before it starts.
func (b *Booking) ChangeStatus(actor user.Actor, to Status, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}

	if actor.IsAdmin() {
		b.status = to
		return nil
	}

	if !b.IsOwnedBy(actor) {
		return ErrForbidden
	}
	if to != StatusCancelled {
		return ErrOwnerOnlyCancel
	}
	if b.status.IsTerminal() {
		return ErrTerminalStatus
	}
	if !now.Before(b.slot.Start()) {
		return ErrAlreadyStarted
	}

	b.status = StatusCancelled
	return nil
}

// Reschedule moves an active booking to a new start time, keeping the
// service duration. Conflict checking against other bookings happens at
// the persistence layer within the same transaction.
func (b *Booking) Reschedule(actor user.Actor, startTime, now time.Time, duration time.Duration) error {
	if !b.IsOwnedBy(actor) && !actor.IsAdmin() {
		return ErrForbidden
	}
	if !b.status.IsActive() {
		return ErrNotReschedulable
	}
	if !startTime.After(now) {
		return ErrStartTimeInPast
	}

	slot, err := SlotFromStart(startTime, duration)
	if err != nil {
		return err
	}

	b.slot = slot
	return nil
}

// CanDelete gates hard removal: owners only before the start time,
// admins anytime.
func (b *Booking) CanDelete(actor user.Actor, now time.Time) error {
	if actor.IsAdmin() {
		return nil
	}
	if !b.IsOwnedBy(actor) {
		return ErrForbidden
	}
	if !now.Before(b.slot.Start()) {
		return ErrAlreadyStarted
	}
	return nil
}
