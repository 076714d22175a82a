package shared

import (
	"time"

	"github.com/google/uuid"
)

type UserSnapshot struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

type ServiceSnapshot struct {
	ID              uuid.UUID
	Title           string
	Description     string
	PriceCents      int64
	DurationMinutes int
	IsActive        bool
}

// Minimal snapshot for command read operations
type BookingSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ServiceID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

type ReviewSnapshot struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	UserID    uuid.UUID
	ServiceID uuid.UUID
	Rating    int
	Comment   string
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
