package api

import (
	"errors"

	"bookit-api/internal/domain/booking"
	"bookit-api/internal/domain/review"
	"bookit-api/internal/domain/service"
	"bookit-api/internal/domain/user"
)

// Domain validation failures all map to 400; the list keeps the
// per-handler switches from growing a case per value object.
var validationErrors = []error{
	user.ErrInvalidEmail,
	user.ErrInvalidRole,
	user.ErrPasswordTooWeak,
	user.ErrEmptyName,
	user.ErrNameTooLong,
	service.ErrEmptyTitle,
	service.ErrTitleTooLong,
	service.ErrDescriptionTooLong,
	service.ErrNegativePrice,
	service.ErrInvalidDuration,
	booking.ErrInvalidTimeSlot,
	booking.ErrInvalidStatus,
	review.ErrInvalidRating,
	review.ErrEmptyComment,
	review.ErrCommentTooLong,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
