//go:build unit || e2e

package builder

import (
	"time"

	domreservation "labreserve/internal/domain/reservation"
	reqdto "labreserve/internal/handler/dto/request"
	"labreserve/internal/usecase/commands"
	"labreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ResourceID   uuid.UUID
	ResourceName string
	OwnerID      uuid.UUID
	StartTime    time.Time
	EndTime      time.Time
	Recurrence   string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ResourceID:   uuid.New(),
		ResourceName: "ws-01",
		OwnerID:      uuid.New(),
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		Recurrence:   "",
		Status:       "pending",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	slot, err := domreservation.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	return domreservation.NewReservation(
		b.ResourceID, b.OwnerID, slot, domreservation.Recurrence(b.Recurrence),
	)
}

func (b *ReservationBuilder) BuildCreateInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		ResourceID: b.ResourceID,
		OwnerID:    b.OwnerID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Recurrence: b.Recurrence,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID: b.ResourceID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Recurrence: b.Recurrence,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:           uuid.New(),
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		OwnerID:      b.OwnerID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status,
		Recurrence:   b.Recurrence,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
