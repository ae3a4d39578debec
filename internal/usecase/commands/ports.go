package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published on committed state changes.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationCompleted = "reservation.completed"
	EventResourceStatusChanged = "resource.status_changed"
)

// Event is a state-change fact for external consumers (notification
// delivery, dashboards). Key groups events of one resource onto the same
// partition.
type Event struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// EventPublisher is fire-and-forget: publish failures are logged and
// swallowed, never surfaced to the caller and never rolled into the
// transaction outcome.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// ExpiredReservationReader feeds the completion sweep.
type ExpiredReservationReader interface {
	FindExpiredConfirmedIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}
