package commands

import (
	"context"
	"log/slog"

	"labreserve/internal/domain/resource"
	"labreserve/internal/pkg/clock"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type ResourceCommands interface {
	// UpdateStatus handles admin-side status changes (available/maintenance).
	// The reserved status is derived from reservations and cannot be set here.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*resource.Resource, error)
}

type resourceCommands struct {
	uow       shared.UnitOfWork
	clk       clock.Clock
	publisher EventPublisher
}

func NewResourceCommands(uow shared.UnitOfWork, clk clock.Clock, publisher EventPublisher) ResourceCommands {
	return &resourceCommands{uow: uow, clk: clk, publisher: publisher}
}

func (c *resourceCommands) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*resource.Resource, error) {
	var (
		updated *resource.Resource
		changed bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rsc, err := tx.Resources().FindByIDForUpdate(ctx, id)
		if err != nil {
			return markResourceErr(err)
		}

		if rsc.Status() != resource.Status(status) {
			if err := rsc.SetStatusByAdmin(resource.Status(status)); err != nil {
				return errs.Mark(err, errs.ErrResourceStatusNotAllowed)
			}
			if err := tx.Resources().UpdateStatus(ctx, id, rsc.Status()); err != nil {
				return markResourceErr(err)
			}
			changed = true
		}

		updated = rsc
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		ev := resourceStatusEvent(id, string(updated.Status()), c.clk.Now())
		if err := c.publisher.Publish(ctx, ev); err != nil {
			slog.WarnContext(ctx, "failed to publish event", "event_type", ev.Type, "error", err)
		}
	}
	return updated, nil
}
