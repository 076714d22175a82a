package repository

import (
	"context"
	"time"

	"bookit-api/internal/infra"
	"bookit-api/internal/infra/db"
)

// Jobs are outbox rows committed with the booking write; a delivery
// worker drains them out of band.
const createNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, 'pending')
`

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := tx.Exec(ctx, createNotificationJobSQL, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
