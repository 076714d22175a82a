package repository

import (
	"context"
	"time"

	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"

	"github.com/google/uuid"
)

const tryInsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING
`

const updateIdempotencyKeyCompletedSQL = `
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $3, result_booking_id = $4, updated_at = now()
WHERE key = $1 AND user_id = $2
`

// A stale processing row from a crashed request may be reclaimed once
// its expiry has passed.
const claimExpiredIdempotencyKeySQL = `
UPDATE idempotency_keys
SET request_hash = $3, status = 'processing', response_body_hash = NULL,
    result_booking_id = NULL, expires_at = $4, updated_at = now()
WHERE key = $1 AND user_id = $2 AND expires_at < now()
`

const deleteExpiredIdempotencyKeysSQL = `
DELETE FROM idempotency_keys
WHERE expires_at < now() AND status = 'completed'
`

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, tryInsertIdempotencyKeySQL, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, bookingID uuid.UUID) error {
	tag, err := tx.Exec(ctx, updateIdempotencyKeyCompletedSQL, key, userID, resultHash, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *IdempotencyRepository) ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, claimExpiredIdempotencyKeySQL, key, userID, requestHash, expiresAt)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx db.DBTX) (int64, error) {
	tag, err := tx.Exec(ctx, deleteExpiredIdempotencyKeysSQL)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
