package repository

import (
	"context"

	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"

	"github.com/google/uuid"
)

// Full recalculation per write keeps the stats row exact; review volume
// per service is low enough that incremental updates are not worth the
// drift risk.
const recalcServiceRatingStatsSQL = `
INSERT INTO service_rating_stats (
    service_id, total_reviews, average_rating,
    rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count,
    updated_at
)
SELECT
    $1,
    COUNT(*),
    COALESCE(AVG(rating), 0),
    COUNT(*) FILTER (WHERE rating = 1),
    COUNT(*) FILTER (WHERE rating = 2),
    COUNT(*) FILTER (WHERE rating = 3),
    COUNT(*) FILTER (WHERE rating = 4),
    COUNT(*) FILTER (WHERE rating = 5),
    now()
FROM reviews
WHERE service_id = $1
ON CONFLICT (service_id) DO UPDATE SET
    total_reviews  = EXCLUDED.total_reviews,
    average_rating = EXCLUDED.average_rating,
    rating_1_count = EXCLUDED.rating_1_count,
    rating_2_count = EXCLUDED.rating_2_count,
    rating_3_count = EXCLUDED.rating_3_count,
    rating_4_count = EXCLUDED.rating_4_count,
    rating_5_count = EXCLUDED.rating_5_count,
    updated_at     = EXCLUDED.updated_at
`

type RatingStatsRepository struct{}

func NewRatingStatsRepository() *RatingStatsRepository {
	return &RatingStatsRepository{}
}

func (r *RatingStatsRepository) RecalcServiceRatingStats(ctx context.Context, tx db.DBTX, serviceID uuid.UUID) error {
	if _, err := tx.Exec(ctx, recalcServiceRatingStatsSQL, serviceID); err != nil {
		return infra.WrapRepoErr("failed to recalc service rating stats", err)
	}
	return nil
}
