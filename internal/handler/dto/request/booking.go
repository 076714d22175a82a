package request

import (
	"time"

	"github.com/google/uuid"
)

// End time is never accepted from the client; it is derived from the
// service duration on the write side.
type CreateBookingRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
}

type RescheduleBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}
