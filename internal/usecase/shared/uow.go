package shared

import (
	"context"

	"labreserve/internal/domain/reservation"
	"labreserve/internal/domain/resource"

	"github.com/google/uuid"
)

// UnitOfWork runs a function inside a single database transaction. Every
// lifecycle transition (check+insert on create, status moves plus resource
// reconciliation) commits or rolls back as one atomic unit; retryable
// serialization failures are retried a bounded number of times.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Resources() ResourceRepository
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	// FindByIDForUpdate locks the row so concurrent transitions on the same
	// reservation serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error
	// HasOverlap queries active reservations on the resource with half-open
	// interval semantics. excludeID lets a reschedule skip its own record.
	HasOverlap(ctx context.Context, resourceID uuid.UUID, slot reservation.TimeSlot, excludeID *uuid.UUID) (bool, error)
	CountConfirmed(ctx context.Context, resourceID uuid.UUID, excludeID *uuid.UUID) (int64, error)
}

type ResourceRepository interface {
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status resource.Status) error
}
