//go:build unit || e2e

package builder

import (
	"time"

	domreview "bookit-api/internal/domain/review"
	reqdto "bookit-api/internal/handler/dto/request"
	"bookit-api/internal/usecase/queries"
	"bookit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	ID           uuid.UUID
	BookingID    uuid.UUID
	UserID       uuid.UUID
	UserName     string
	ServiceID    uuid.UUID
	ServiceTitle string
	Rating       int
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	now := time.Now()
	return &ReviewBuilder{
		ID:           uuid.New(),
		BookingID:    uuid.New(),
		UserID:       uuid.New(),
		UserName:     "Test Reviewer",
		ServiceID:    uuid.New(),
		ServiceTitle: "Test Service",
		Rating:       5,
		Comment:      "Excellent service!",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(uuid.Nil, r.BookingID, r.UserID, r.ServiceID, r.Rating, r.Comment, r.CreatedAt)
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

func (r *ReviewBuilder) BuildUpdateRequestDTO() reqdto.UpdateReviewRequest {
	rating := r.Rating
	comment := r.Comment
	return reqdto.UpdateReviewRequest{
		Rating:  &rating,
		Comment: &comment,
	}
}

func (r *ReviewBuilder) BuildViewQuery() *queries.ReviewView {
	return &queries.ReviewView{
		ID:           r.ID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		ServiceID:    r.ServiceID,
		ServiceTitle: r.ServiceTitle,
		BookingID:    r.BookingID,
		Rating:       int32(r.Rating),
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *ReviewBuilder) BuildListItem() *queries.ReviewListItem {
	return &queries.ReviewListItem{
		ID:        r.ID,
		UserName:  r.UserName,
		Rating:    int32(r.Rating),
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildSnapshot() *shared.ReviewSnapshot {
	return &shared.ReviewSnapshot{
		ID:        r.ID,
		BookingID: r.BookingID,
		UserID:    r.UserID,
		ServiceID: r.ServiceID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}
