package review

import (
	"errors"
	"time"

	"bookit-api/internal/domain/booking"
	"bookit-api/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrEmptyComment       = errors.New("comment cannot be empty")
	ErrCommentTooLong     = errors.New("comment exceeds maximum length")
	ErrBookingNotEligible = errors.New("booking is not eligible for review")
	ErrNotReviewOwner     = errors.New("review not owned by actor")
)

// Review is attached 1:1 to a completed booking. The unique index on
// booking_id is the authoritative duplicate guard; CheckEligibility is
// the advisory pre-check.
type Review struct {
	id        uuid.UUID
	bookingID uuid.UUID
	userID    uuid.UUID
	serviceID uuid.UUID
	rating    Rating
	comment   Comment
	createdAt time.Time
	updatedAt time.Time
}

func NewReview(id, bookingID, userID, serviceID uuid.UUID, ratingValue int, commentText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Review{
		id:        id,
		bookingID: bookingID,
		userID:    userID,
		serviceID: serviceID,
		rating:    rating,
		comment:   comment,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) BookingID() uuid.UUID { return r.bookingID }
func (r *Review) UserID() uuid.UUID    { return r.userID }
func (r *Review) ServiceID() uuid.UUID { return r.serviceID }
func (r *Review) Rating() Rating       { return r.rating }
func (r *Review) Comment() Comment     { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
func (r *Review) UpdatedAt() time.Time { return r.updatedAt }

// CheckEligibility decides whether the actor may review the booking:
// they must own it and it must be exactly completed.
func CheckEligibility(actor user.Actor, bookingOwnerID uuid.UUID, status booking.Status) error {
	if !actor.Owns(bookingOwnerID) {
		return ErrBookingNotEligible
	}
	if status != booking.StatusCompleted {
		return ErrBookingNotEligible
	}
	return nil
}
