package bootstrap

import (
	"context"
	"log/slog"

	"labreserve/internal/infra/events"
	"labreserve/internal/pkg/config"
	"labreserve/internal/usecase/commands"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher wires the Kafka publisher when brokers are configured
// and falls back to a no-op publisher otherwise.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) commands.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Brokers[0] == "" {
		slog.Info("no Kafka brokers configured, event publishing disabled")
		return events.NewNopPublisher()
	}

	publisher := events.NewKafkaPublisher(cfg.Kafka)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	slog.Info("Kafka event publisher initialized",
		"brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return publisher
}
