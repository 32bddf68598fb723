package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/credit-risk-service/internal/domain/event"
	"github.com/bibbank/credit-risk-service/pkg/events"
	pkgkafka "github.com/bibbank/credit-risk-service/pkg/kafka"
)

// Producer is satisfied by *pkgkafka.Producer.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka.
type EventPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher targeting the given producer and topic.
func NewEventPublisher(producer Producer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish wraps each event in an envelope and sends them in one batch, keyed
// by aggregate ID so an assessment's events stay on one partition.
func (p *EventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := events.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"tenant_id", evt.TenantID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
				"tenant_id":  evt.TenantID(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
