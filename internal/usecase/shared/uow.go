package shared

import (
	"context"
	"time"

	"bookit-api/internal/domain/booking"
	"bookit-api/internal/domain/review"
	"bookit-api/internal/domain/service"
	"bookit-api/internal/domain/user"
	"bookit-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Users() UserRepository
	Services() ServiceRepository
	Bookings() BookingRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	ReviewByID(ctx context.Context, id uuid.UUID) (*ReviewSnapshot, error)
	ReviewByBookingID(ctx context.Context, bookingID uuid.UUID) (*ReviewSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateProfile(ctx context.Context, tx db.DBTX, id uuid.UUID, name, email string) error
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type ServiceRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *service.Service) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, s *service.Service) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateSlot(ctx context.Context, tx db.DBTX, id uuid.UUID, slot booking.TimeSlot) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	HasConflict(ctx context.Context, tx db.DBTX, serviceID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (bool, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, reviewID uuid.UUID, rating int, comment string) error
	Delete(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) error
}

type RatingStatsRepository interface {
	RecalcServiceRatingStats(ctx context.Context, tx db.DBTX, serviceID uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key; false means another request holds it.
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, bookingID uuid.UUID) error
	ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
