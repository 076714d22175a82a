package readstore

import (
	"context"

	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"
	"bookit-api/internal/pkg/pgconv"
	"bookit-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getIdempotencyKeySQL = `
SELECT key, user_id, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

func (s *IdempotencyReadStore) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var record shared.IdempotencyRecord
	var resultBookingID pgtype.UUID
	err := s.db.QueryRow(ctx, getIdempotencyKeySQL, key, userID).Scan(
		&record.Key,
		&record.UserID,
		&record.Status,
		&record.RequestHash,
		&resultBookingID,
		&record.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	record.ResultBookingID = pgconv.UUIDPtrFromPgtype(resultBookingID)
	return &record, nil
}
