package repository

import (
	"context"

	"bookit-api/internal/domain/review"
	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"

	"github.com/google/uuid"
)

const createReviewSQL = `
INSERT INTO reviews (id, booking_id, user_id, service_id, rating, comment)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

const updateReviewSQL = `
UPDATE reviews
SET rating = $2, comment = $3, updated_at = now()
WHERE id = $1
`

const deleteReviewSQL = `
DELETE FROM reviews
WHERE id = $1
`

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createReviewSQL,
		rev.ID(),
		rev.BookingID(),
		rev.UserID(),
		rev.ServiceID(),
		rev.Rating().Value(),
		rev.Comment().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
	}
	return id, nil
}

func (r *ReviewRepository) Update(ctx context.Context, tx db.DBTX, reviewID uuid.UUID, rating int, comment string) error {
	tag, err := tx.Exec(ctx, updateReviewSQL, reviewID, rating, comment)
	if err != nil {
		return infra.WrapRepoErr("failed to update review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteReviewSQL, reviewID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}
