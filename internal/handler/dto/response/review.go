package response

import (
	"time"

	"bookit-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	ServiceID    uuid.UUID `json:"service_id"`
	ServiceTitle string    `json:"service_title"`
	BookingID    uuid.UUID `json:"booking_id"`
	Rating       int32     `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ReviewListItemResponse struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type RatingStatsResponse struct {
	ServiceID     uuid.UUID `json:"service_id"`
	TotalReviews  int32     `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	Rating1Count  int32     `json:"rating_1_count"`
	Rating2Count  int32     `json:"rating_2_count"`
	Rating3Count  int32     `json:"rating_3_count"`
	Rating4Count  int32     `json:"rating_4_count"`
	Rating5Count  int32     `json:"rating_5_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromReviewView(view *queries.ReviewView) *ReviewResponse {
	var resp ReviewResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReviewList(items []*queries.ReviewListItem) []*ReviewListItemResponse {
	resp := make([]*ReviewListItemResponse, len(items))
	for i, item := range items {
		var r ReviewListItemResponse
		_ = copier.Copy(&r, item)
		resp[i] = &r
	}
	return resp
}

func FromRatingStats(stats *queries.ServiceRatingStats) *RatingStatsResponse {
	var resp RatingStatsResponse
	_ = copier.Copy(&resp, stats)
	return &resp
}
