//go:build unit || e2e

package builder

import (
	"time"

	dombooking "bookit-api/internal/domain/booking"
	"bookit-api/internal/domain/user"
	reqdto "bookit-api/internal/handler/dto/request"
	"bookit-api/internal/usecase/queries"
	"bookit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	UserEmail       string
	ServiceID       uuid.UUID
	ServiceTitle    string
	DurationMinutes int
	ServiceActive   bool
	StartTime       time.Time
	Status          dombooking.Status
	PriceCents      int64
	Now             time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().Truncate(time.Second)
	return &BookingBuilder{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		UserEmail:       "booker@example.com",
		ServiceID:       uuid.New(),
		ServiceTitle:    "Test Service",
		DurationMinutes: 60,
		ServiceActive:   true,
		StartTime:       now.Add(24 * time.Hour),
		Status:          dombooking.StatusPending,
		PriceCents:      5000,
		Now:             now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithStartTime(t time.Time) *BookingBuilder {
	b.StartTime = t
	return b
}

func (b *BookingBuilder) WithStatus(s dombooking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithInactiveService() *BookingBuilder {
	b.ServiceActive = false
	return b
}

func (b *BookingBuilder) ServiceSpec() dombooking.ServiceSpec {
	return dombooking.ServiceSpec{
		ID:              b.ServiceID,
		DurationMinutes: b.DurationMinutes,
		IsActive:        b.ServiceActive,
	}
}

func (b *BookingBuilder) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.NewBooking(b.UserID, b.ServiceSpec(), b.StartTime, b.Now)
}

// BuildExisting reconstructs a persisted booking with the builder's
// status, bypassing NewBooking validation.
func (b *BookingBuilder) BuildExisting() *dombooking.Booking {
	slot, _ := dombooking.NewTimeSlot(b.StartTime, b.EndTime())
	return dombooking.ReconstructBooking(b.ID, b.UserID, b.ServiceID, slot, b.Status, b.CreatedAt, b.UpdatedAt)
}

func (b *BookingBuilder) Owner() user.Actor {
	return user.NewActor(b.UserID, user.RoleUser)
}

func (b *BookingBuilder) Admin() user.Actor {
	return user.NewActor(uuid.New(), user.RoleAdmin)
}

func (b *BookingBuilder) Stranger() user.Actor {
	return user.NewActor(uuid.New(), user.RoleUser)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ServiceID: b.ServiceID,
		StartTime: b.StartTime,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	return &queries.BookingView{
		ID:           b.ID,
		UserID:       b.UserID,
		UserEmail:    b.UserEmail,
		ServiceID:    b.ServiceID,
		ServiceTitle: b.ServiceTitle,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime(),
		Status:       b.Status.String(),
		PriceCents:   b.PriceCents,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:           b.ID,
		ServiceID:    b.ServiceID,
		ServiceTitle: b.ServiceTitle,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime(),
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        b.ID,
		UserID:    b.UserID,
		ServiceID: b.ServiceID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime(),
		Status:    b.Status.String(),
	}
}
