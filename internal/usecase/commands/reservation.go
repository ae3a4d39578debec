package commands

import (
	"context"
	"log/slog"
	"time"

	"labreserve/internal/domain/reservation"
	"labreserve/internal/infra"
	"labreserve/internal/pkg/clock"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	ResourceID uuid.UUID
	OwnerID    uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Recurrence string
}

type ReservationCommands interface {
	Create(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error)
	Confirm(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID, isAdmin bool) (*reservation.Reservation, error)
	Complete(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// CompleteExpired sweeps confirmed reservations whose slot has elapsed.
	// Individual failures are logged and skipped; the sweep keeps going.
	CompleteExpired(ctx context.Context) (int, error)
}

type reservationCommands struct {
	uow       shared.UnitOfWork
	expired   ExpiredReservationReader
	clk       clock.Clock
	publisher EventPublisher
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	expired ExpiredReservationReader,
	clk clock.Clock,
	publisher EventPublisher,
) ReservationCommands {
	return &reservationCommands{
		uow:       uow,
		expired:   expired,
		clk:       clk,
		publisher: publisher,
	}
}

func (c *reservationCommands) Create(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(input.StartTime, input.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	recurrence := reservation.Recurrence(input.Recurrence)
	if !recurrence.IsValid() {
		return nil, errs.Mark(reservation.ErrInvalidRecurrence, errs.ErrInvalidRecurrence)
	}

	var created *reservation.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rsc, err := tx.Resources().FindByIDForUpdate(ctx, input.ResourceID)
		if err != nil {
			return markResourceErr(err)
		}
		if !rsc.Status().AcceptsReservations() {
			return errs.Mark(errs.New("resource is under maintenance"), errs.ErrResourceStatusNotAllowed)
		}

		overlap, err := tx.Reservations().HasOverlap(ctx, input.ResourceID, slot, nil)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if overlap {
			return errs.Mark(errs.New("slot overlaps an active reservation"), errs.ErrReservationConflict)
		}

		res, err := reservation.NewReservation(input.ResourceID, input.OwnerID, slot, recurrence)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidRecurrence)
		}

		// The exclusion constraint is the last line of defense when two
		// transactions race past the overlap check.
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return markReservationErr(err)
		}

		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, reservationEvent(EventReservationCreated, created, c.clk.Now()))
	return created, nil
}

func (c *reservationCommands) Confirm(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		confirmed       *reservation.Reservation
		resourceChanged bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return markReservationErr(err)
		}
		if err := res.Confirm(); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, id, res.Status()); err != nil {
			return markReservationErr(err)
		}

		rsc, err := tx.Resources().FindByIDForUpdate(ctx, res.ResourceID())
		if err != nil {
			return markResourceErr(err)
		}
		if rsc.MarkReserved() {
			if err := tx.Resources().UpdateStatus(ctx, rsc.ID(), rsc.Status()); err != nil {
				return markResourceErr(err)
			}
			resourceChanged = true
		}

		confirmed = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	events := []Event{reservationEvent(EventReservationConfirmed, confirmed, c.clk.Now())}
	if resourceChanged {
		events = append(events, resourceStatusEvent(confirmed.ResourceID(), "reserved", c.clk.Now()))
	}
	c.publish(ctx, events...)
	return confirmed, nil
}

func (c *reservationCommands) Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID, isAdmin bool) (*reservation.Reservation, error) {
	var (
		cancelled      *reservation.Reservation
		resourceStatus string
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return markReservationErr(err)
		}
		if !isAdmin && !res.IsOwnedBy(actorID) {
			return errs.Mark(errs.New("reservation belongs to another user"), errs.ErrNotOwner)
		}

		wasConfirmed := res.Status() == reservation.StatusConfirmed
		if err := res.Cancel(); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, id, res.Status()); err != nil {
			return markReservationErr(err)
		}

		if wasConfirmed {
			status, err := c.releaseResource(ctx, tx, res)
			if err != nil {
				return err
			}
			resourceStatus = status
		}

		cancelled = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	events := []Event{reservationEvent(EventReservationCancelled, cancelled, c.clk.Now())}
	if resourceStatus != "" {
		events = append(events, resourceStatusEvent(cancelled.ResourceID(), resourceStatus, c.clk.Now()))
	}
	c.publish(ctx, events...)
	return cancelled, nil
}

func (c *reservationCommands) Complete(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		completed      *reservation.Reservation
		resourceStatus string
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return markReservationErr(err)
		}
		if err := res.Complete(c.clk.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, id, res.Status()); err != nil {
			return markReservationErr(err)
		}

		status, err := c.releaseResource(ctx, tx, res)
		if err != nil {
			return err
		}
		resourceStatus = status

		completed = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	events := []Event{reservationEvent(EventReservationCompleted, completed, c.clk.Now())}
	if resourceStatus != "" {
		events = append(events, resourceStatusEvent(completed.ResourceID(), resourceStatus, c.clk.Now()))
	}
	c.publish(ctx, events...)
	return completed, nil
}

func (c *reservationCommands) CompleteExpired(ctx context.Context) (int, error) {
	ids, err := c.expired.FindExpiredConfirmedIDs(ctx, c.clk.Now())
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	completed := 0
	for _, id := range ids {
		if _, err := c.Complete(ctx, id); err != nil {
			// Another transition may have won the race; move on.
			slog.WarnContext(ctx, "failed to auto-complete reservation",
				"reservation_id", id, "error", err)
			continue
		}
		completed++
	}
	return completed, nil
}

// releaseResource re-derives the resource status after a reservation left the
// confirmed state, inside the same transaction as the status move.
func (c *reservationCommands) releaseResource(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (string, error) {
	id := res.ID()
	remaining, err := tx.Reservations().CountConfirmed(ctx, res.ResourceID(), &id)
	if err != nil {
		return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	rsc, err := tx.Resources().FindByIDForUpdate(ctx, res.ResourceID())
	if err != nil {
		return "", markResourceErr(err)
	}
	if !rsc.Release(remaining > 0) {
		return "", nil
	}
	if err := tx.Resources().UpdateStatus(ctx, rsc.ID(), rsc.Status()); err != nil {
		return "", markResourceErr(err)
	}
	return string(rsc.Status()), nil
}

func (c *reservationCommands) publish(ctx context.Context, events ...Event) {
	for _, ev := range events {
		if err := c.publisher.Publish(ctx, ev); err != nil {
			slog.WarnContext(ctx, "failed to publish event", "event_type", ev.Type, "error", err)
		}
	}
}

func markReservationErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrReservationNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrReservationConflict)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrResourceNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func markResourceErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrResourceNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func reservationEvent(eventType string, res *reservation.Reservation, at time.Time) Event {
	return Event{
		Type:       eventType,
		Key:        res.ResourceID().String(),
		OccurredAt: at,
		Payload: map[string]any{
			"reservation_id": res.ID().String(),
			"resource_id":    res.ResourceID().String(),
			"owner_id":       res.OwnerID().String(),
			"start_time":     res.Slot().Start().Format(time.RFC3339),
			"end_time":       res.Slot().End().Format(time.RFC3339),
			"status":         string(res.Status()),
		},
	}
}

func resourceStatusEvent(resourceID uuid.UUID, status string, at time.Time) Event {
	return Event{
		Type:       EventResourceStatusChanged,
		Key:        resourceID.String(),
		OccurredAt: at,
		Payload: map[string]any{
			"resource_id": resourceID.String(),
			"status":      status,
		},
	}
}
