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

const findReviewByIDSQL = `
SELECT r.id, r.user_id, u.name, r.service_id, s.title, r.booking_id,
       r.rating, r.comment, r.created_at, r.updated_at
FROM reviews r
JOIN users u ON u.id = r.user_id
JOIN services s ON s.id = r.service_id
WHERE r.id = $1
`

const findReviewByBookingIDSQL = `
SELECT r.id, r.user_id, u.name, r.service_id, s.title, r.booking_id,
       r.rating, r.comment, r.created_at, r.updated_at
FROM reviews r
JOIN users u ON u.id = r.user_id
JOIN services s ON s.id = r.service_id
WHERE r.booking_id = $1
`

const reviewListColumns = `
SELECT r.id, u.name, r.rating, r.comment, r.created_at
FROM reviews r
JOIN users u ON u.id = r.user_id
`

const findReviewsByServiceFirstPageSQL = reviewListColumns + `
WHERE r.service_id = $1
  AND ($2::int IS NULL OR r.rating >= $2)
  AND ($3::int IS NULL OR r.rating <= $3)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4
`

const findReviewsByServiceKeysetSQL = reviewListColumns + `
WHERE r.service_id = $1
  AND ($2::int IS NULL OR r.rating >= $2)
  AND ($3::int IS NULL OR r.rating <= $3)
  AND (r.created_at, r.id) < ($4, $5)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $6
`

const findReviewsByUserFirstPageSQL = reviewListColumns + `
WHERE r.user_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2
`

const findReviewsByUserKeysetSQL = reviewListColumns + `
WHERE r.user_id = $1
  AND (r.created_at, r.id) < ($2, $3)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4
`

const getServiceRatingStatsSQL = `
SELECT service_id, total_reviews, average_rating,
       rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count,
       updated_at
FROM service_rating_stats
WHERE service_id = $1
`

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

func (s *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	return s.findOne(ctx, findReviewByIDSQL, id)
}

func (s *ReviewReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*queries.ReviewView, error) {
	return s.findOne(ctx, findReviewByBookingIDSQL, bookingID)
}

func (s *ReviewReadStore) findOne(ctx context.Context, sql string, arg any) (*queries.ReviewView, error) {
	var view queries.ReviewView
	err := s.db.QueryRow(ctx, sql, arg).Scan(
		&view.ID,
		&view.UserID,
		&view.UserName,
		&view.ServiceID,
		&view.ServiceTitle,
		&view.BookingID,
		&view.Rating,
		&view.Comment,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review", err)
	}
	return &view, nil
}

func (s *ReviewReadStore) FindByServiceFirstPage(ctx context.Context, serviceID uuid.UUID, limit int32, minRating, maxRating *int) ([]*queries.ReviewListItem, error) {
	rows, err := s.db.Query(ctx, findReviewsByServiceFirstPageSQL, serviceID, minRating, maxRating, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return scanReviewListItems(rows)
}

func (s *ReviewReadStore) FindByServiceKeyset(ctx context.Context, serviceID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32, minRating, maxRating *int) ([]*queries.ReviewListItem, error) {
	rows, err := s.db.Query(ctx, findReviewsByServiceKeysetSQL, serviceID, minRating, maxRating, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return scanReviewListItems(rows)
}

func (s *ReviewReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	rows, err := s.db.Query(ctx, findReviewsByUserFirstPageSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return scanReviewListItems(rows)
}

func (s *ReviewReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	rows, err := s.db.Query(ctx, findReviewsByUserKeysetSQL, userID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return scanReviewListItems(rows)
}

// GetServiceRatingStats returns a zero-value row for services that have
// no reviews yet; the stats row only exists after the first write.
func (s *ReviewReadStore) GetServiceRatingStats(ctx context.Context, serviceID uuid.UUID) (*queries.ServiceRatingStats, error) {
	var stats queries.ServiceRatingStats
	err := s.db.QueryRow(ctx, getServiceRatingStatsSQL, serviceID).Scan(
		&stats.ServiceID,
		&stats.TotalReviews,
		&stats.AverageRating,
		&stats.Rating1Count,
		&stats.Rating2Count,
		&stats.Rating3Count,
		&stats.Rating4Count,
		&stats.Rating5Count,
		&stats.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return &queries.ServiceRatingStats{ServiceID: serviceID}, nil
		}
		return nil, infra.WrapRepoErr("failed to get service rating stats", err)
	}
	return &stats, nil
}

func scanReviewListItems(rows pgx.Rows) ([]*queries.ReviewListItem, error) {
	defer rows.Close()

	var items []*queries.ReviewListItem
	for rows.Next() {
		var item queries.ReviewListItem
		if err := rows.Scan(
			&item.ID,
			&item.UserName,
			&item.Rating,
			&item.Comment,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read review rows", err)
	}
	return items, nil
}
