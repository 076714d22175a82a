package commands

import (
	"context"

	"bookit-api/internal/domain/booking"
	domreview "bookit-api/internal/domain/review"
	"bookit-api/internal/domain/user"
	reqdto "bookit-api/internal/handler/dto/request"
	"bookit-api/internal/infra"
	"bookit-api/internal/pkg/clock"
	"bookit-api/internal/pkg/errs"
	"bookit-api/internal/pkg/patch"
	"bookit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReviewNotOwned      = errs.New("review not owned by user")
	ErrDuplicateReview     = errs.New("duplicate review for booking")
	ErrReviewNotFoundWrite = errs.New("review not found")
)

type CreateReviewResult struct {
	ReviewID uuid.UUID
}

type ReviewCommands interface {
	CreateReview(ctx context.Context, actor user.Actor, req reqdto.CreateReviewRequest) (*CreateReviewResult, error)
	UpdateReview(ctx context.Context, actor user.Actor, reviewID uuid.UUID, req reqdto.UpdateReviewRequest) error
	DeleteReview(ctx context.Context, actor user.Actor, reviewID uuid.UUID) error
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewUseCase(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, clock: clk}
}

func (uc *reviewUseCaseImpl) CreateReview(ctx context.Context, actor user.Actor, req reqdto.CreateReviewRequest) (*CreateReviewResult, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookingSnap, derr := tx.Reads().BookingByID(ctx, req.BookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFoundWrite
			}
			return derr
		}

		status, derr := booking.NewStatus(bookingSnap.Status)
		if derr != nil {
			return derr
		}
		if derr = domreview.CheckEligibility(actor, bookingSnap.UserID, status); derr != nil {
			return derr
		}

		// Advisory pre-check; the unique index on booking_id decides under
		// concurrency.
		if existing, derr := tx.Reads().ReviewByBookingID(ctx, req.BookingID); derr == nil && existing != nil {
			return ErrDuplicateReview
		} else if derr != nil && !infra.IsKind(derr, infra.KindNotFound) {
			return derr
		}

		rev, derr := domreview.NewReview(uuid.Nil, req.BookingID, actor.ID, bookingSnap.ServiceID, req.Rating, req.Comment, uc.clock.Now())
		if derr != nil {
			return derr
		}

		id, derr := tx.Reviews().Create(ctx, tx.DB(), rev)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrDuplicateReview
			}
			return derr
		}
		createdID = id
		return tx.RatingStats().RecalcServiceRatingStats(ctx, tx.DB(), bookingSnap.ServiceID)
	})
	if err != nil {
		return nil, err
	}
	return &CreateReviewResult{ReviewID: createdID}, nil
}

func (uc *reviewUseCaseImpl) UpdateReview(ctx context.Context, actor user.Actor, reviewID uuid.UUID, req reqdto.UpdateReviewRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReviewByID(ctx, reviewID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrReviewNotFoundWrite
			}
			return derr
		}
		if !actor.Owns(snap.UserID) {
			return ErrReviewNotOwned
		}

		rating := patch.Coalesce(req.Rating, snap.Rating)
		comment := patch.Coalesce(req.Comment, snap.Comment)
		if _, derr = domreview.NewReview(snap.ID, snap.BookingID, snap.UserID, snap.ServiceID, rating, comment, uc.clock.Now()); derr != nil {
			return derr
		}

		if derr = tx.Reviews().Update(ctx, tx.DB(), reviewID, rating, comment); derr != nil {
			return derr
		}
		return tx.RatingStats().RecalcServiceRatingStats(ctx, tx.DB(), snap.ServiceID)
	})
}

func (uc *reviewUseCaseImpl) DeleteReview(ctx context.Context, actor user.Actor, reviewID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReviewByID(ctx, reviewID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrReviewNotFoundWrite
			}
			return derr
		}
		if !actor.IsAdmin() && !actor.Owns(snap.UserID) {
			return ErrReviewNotOwned
		}
		if derr = tx.Reviews().Delete(ctx, tx.DB(), reviewID); derr != nil {
			return derr
		}
		return tx.RatingStats().RecalcServiceRatingStats(ctx, tx.DB(), snap.ServiceID)
	})
}
