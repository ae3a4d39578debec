package events

import (
	"context"
	"encoding/json"
	"time"

	"labreserve/internal/pkg/config"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher streams lifecycle events to a Kafka topic. Events are keyed
// by resource id so consumers see one resource's events in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			WriteTimeout: 5 * time.Second,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event commands.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event")
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to write event message")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
