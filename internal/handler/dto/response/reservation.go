package response

import (
	"time"

	"labreserve/internal/domain/reservation"
	"labreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName,omitempty"`
	OwnerID      uuid.UUID `json:"ownerId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	Recurrence   string    `json:"recurrence,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:           rm.ID,
		ResourceID:   rm.ResourceID,
		ResourceName: rm.ResourceName,
		OwnerID:      rm.OwnerID,
		StartTime:    rm.StartTime,
		EndTime:      rm.EndTime,
		Status:       rm.Status,
		Recurrence:   rm.Recurrence,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromReservationEntity(res *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:         res.ID(),
		ResourceID: res.ResourceID(),
		OwnerID:    res.OwnerID(),
		StartTime:  res.Slot().Start(),
		EndTime:    res.Slot().End(),
		Status:     res.Status().String(),
		Recurrence: res.Recurrence().String(),
		CreatedAt:  res.CreatedAt(),
		UpdatedAt:  res.UpdatedAt(),
	}
}
