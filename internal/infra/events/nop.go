package events

import (
	"context"
	"log/slog"

	"labreserve/internal/usecase/commands"
)

// NopPublisher drops events. Used when no brokers are configured, and in
// tests that do not assert on the event stream.
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (NopPublisher) Publish(ctx context.Context, event commands.Event) error {
	slog.DebugContext(ctx, "event publishing disabled, dropping event", "event_type", event.Type)
	return nil
}
