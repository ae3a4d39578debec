package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Recurrence string    `json:"recurrence,omitempty" binding:"omitempty,oneof=daily weekly monthly"`
}
