package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot   = errors.New("invalid time slot")
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrInvalidRecurrence = errors.New("invalid recurrence pattern")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSlotNotElapsed    = errors.New("slot has not elapsed yet")
)

// Reservation is a time-bounded claim on a resource. Status moves one way
// through pending -> confirmed -> completed, with cancellation allowed from
// the two active states; cancelled and completed are terminal.
type Reservation struct {
	id         uuid.UUID
	resourceID uuid.UUID
	ownerID    uuid.UUID
	slot       TimeSlot
	status     Status
	recurrence Recurrence
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(
	resourceID uuid.UUID,
	ownerID uuid.UUID,
	slot TimeSlot,
	recurrence Recurrence,
) (*Reservation, error) {
	if !recurrence.IsValid() {
		return nil, ErrInvalidRecurrence
	}

	return &Reservation{
		id:         uuid.New(),
		resourceID: resourceID,
		ownerID:    ownerID,
		slot:       slot,
		status:     StatusPending,
		recurrence: recurrence,
	}, nil
}

func ReconstructReservation(
	id, resourceID, ownerID uuid.UUID,
	slot TimeSlot,
	status Status,
	recurrence Recurrence,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		resourceID: resourceID,
		ownerID:    ownerID,
		slot:       slot,
		status:     status,
		recurrence: recurrence,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Confirm is legal only from pending.
func (r *Reservation) Confirm() error {
	if r.status != StatusPending {
		return ErrInvalidTransition
	}
	r.status = StatusConfirmed
	return nil
}

// Cancel is legal from pending or confirmed.
func (r *Reservation) Cancel() error {
	if !r.status.IsActive() {
		return ErrInvalidTransition
	}
	r.status = StatusCancelled
	return nil
}

// Complete is legal only from confirmed, once the slot end has elapsed.
func (r *Reservation) Complete(now time.Time) error {
	if r.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	if !r.slot.HasEnded(now) {
		return ErrSlotNotElapsed
	}
	r.status = StatusCompleted
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) IsOwnedBy(actorID uuid.UUID) bool {
	return r.ownerID == actorID
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) ResourceID() uuid.UUID { return r.resourceID }
func (r *Reservation) OwnerID() uuid.UUID    { return r.ownerID }
func (r *Reservation) Slot() TimeSlot        { return r.slot }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) Recurrence() Recurrence { return r.recurrence }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
