package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"bookit-api/internal/domain/booking"
	"bookit-api/internal/domain/user"
	reqdto "bookit-api/internal/handler/dto/request"
	"bookit-api/internal/infra"
	"bookit-api/internal/pkg/clock"
	"bookit-api/internal/pkg/errs"
	"bookit-api/internal/usecase/queries"
	"bookit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFoundWrite    = errs.New("booking not found")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	Reschedule(ctx context.Context, actor user.Actor, bookingID uuid.UUID, req reqdto.RescheduleBookingRequest) error
	ChangeStatus(ctx context.Context, actor user.Actor, bookingID uuid.UUID, status string) error
	DeleteBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, bookingQueries queries.BookingQueries, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

func (b *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := b.calculateRequestHash(req)
	expiresAt := b.clock.Now().Add(24 * time.Hour)

	replayed, err := b.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	bookingView, err := b.createNewBooking(ctx, req, userID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: bookingView, IsReplayed: false}, nil
}

// handleIdempotency claims the key or replays the stored result. A nil,
// nil return means the key is newly claimed and the caller proceeds.
func (b *bookingUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	var record *shared.IdempotencyRecord
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, txErr := tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, userID, "POST /bookings", requestHash, expiresAt)
		if txErr != nil {
			return errs.Mark(txErr, ErrIdempotencyCheckFailed)
		}
		if inserted {
			return nil
		}
		existing, txErr := tx.Reads().IdempotencyByKey(ctx, idempotencyKey, userID)
		if txErr != nil {
			return errs.Mark(txErr, ErrIdempotencyCheckFailed)
		}
		record = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	if record == nil {
		// Freshly claimed key, caller proceeds with the create
		return nil, nil
	}

	switch record.Status {
	case "completed":
		if record.ResultBookingID != nil {
			// Use system-level access for idempotency replay
			return b.bookingQueries.GetByIDSystem(ctx, *record.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		if record.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (b *bookingUseCaseImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	var bookingID uuid.UUID
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svcSnap, txErr := tx.Reads().ServiceByID(ctx, req.ServiceID)
		if txErr != nil {
			if infra.IsKind(txErr, infra.KindNotFound) {
				return ErrServiceNotFoundWrite
			}
			return txErr
		}

		spec := booking.ServiceSpec{
			ID:              svcSnap.ID,
			DurationMinutes: svcSnap.DurationMinutes,
			IsActive:        svcSnap.IsActive,
		}
		entity, txErr := booking.NewBooking(userID, spec, req.StartTime, b.clock.Now())
		if txErr != nil {
			return errs.Mark(txErr, ErrDomainValidation)
		}

		conflict, txErr := tx.Bookings().HasConflict(ctx, tx.DB(), entity.ServiceID(), entity.Slot(), nil)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		if conflict {
			return ErrBookingConflict
		}

		id, txErr := tx.Bookings().Create(ctx, tx.DB(), entity)
		if txErr != nil {
			// The exclusion constraint is the authority under concurrency;
			// the pre-check above only gives the friendly fast path.
			if infra.IsKind(txErr, infra.KindConflict) {
				return ErrBookingConflict
			}
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		bookingID = id

		if txErr = b.createNotificationJob(ctx, tx, id, "booking_created"); txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}

		resultHash := b.calculateIDHash(id)
		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, resultHash, id)
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: full view comes from the read store
	bookingView, err := b.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return bookingView, nil
}

func (b *bookingUseCaseImpl) Reschedule(ctx context.Context, actor user.Actor, bookingID uuid.UUID, req reqdto.RescheduleBookingRequest) error {
	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := b.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		svcSnap, err := tx.Reads().ServiceByID(ctx, entity.ServiceID())
		if err != nil {
			return err
		}
		duration := time.Duration(svcSnap.DurationMinutes) * time.Minute

		if err = entity.Reschedule(actor, req.StartTime, b.clock.Now(), duration); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		id := entity.ID()
		conflict, err := tx.Bookings().HasConflict(ctx, tx.DB(), entity.ServiceID(), entity.Slot(), &id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if conflict {
			return ErrBookingConflict
		}

		if err = tx.Bookings().UpdateSlot(ctx, tx.DB(), id, entity.Slot()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return err
		}
		return b.createNotificationJob(ctx, tx, id, "booking_rescheduled")
	})
}

func (b *bookingUseCaseImpl) ChangeStatus(ctx context.Context, actor user.Actor, bookingID uuid.UUID, status string) error {
	target, err := booking.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, txErr := b.loadBooking(ctx, tx, bookingID)
		if txErr != nil {
			return txErr
		}

		if txErr = entity.ChangeStatus(actor, target, b.clock.Now()); txErr != nil {
			return txErr
		}

		if txErr = tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, entity.Status()); txErr != nil {
			// Reactivating a terminal booking re-enters the overlap
			// constraint; a taken slot surfaces here, not at load time.
			if infra.IsKind(txErr, infra.KindConflict) {
				return ErrBookingConflict
			}
			return txErr
		}
		return b.createNotificationJob(ctx, tx, bookingID, "booking_status_changed")
	})
}

func (b *bookingUseCaseImpl) DeleteBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) error {
	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := b.loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if err = entity.CanDelete(actor, b.clock.Now()); err != nil {
			return err
		}
		return tx.Bookings().Delete(ctx, tx.DB(), bookingID)
	})
}

func (b *bookingUseCaseImpl) loadBooking(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (*booking.Booking, error) {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFoundWrite
		}
		return nil, err
	}

	slot, err := booking.NewTimeSlot(snap.StartTime, snap.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	status, err := booking.NewStatus(snap.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return booking.ReconstructBooking(snap.ID, snap.UserID, snap.ServiceID, slot, status, time.Time{}, time.Time{}), nil
}

func (b *bookingUseCaseImpl) createNotificationJob(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, b.clock.Now())
}

func (b *bookingUseCaseImpl) calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (b *bookingUseCaseImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
