package kafka_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-risk-service/internal/domain/event"
	"github.com/bibbank/credit-risk-service/internal/domain/valueobject"
	"github.com/bibbank/credit-risk-service/internal/infrastructure/kafka"
	"github.com/bibbank/credit-risk-service/pkg/events"
	pkgkafka "github.com/bibbank/credit-risk-service/pkg/kafka"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, topic string, messages ...pkgkafka.Message) error
	topic       string
	messages    []pkgkafka.Message
	calls       int
}

func (m *mockProducer) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	m.calls++
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, messages...)
	}
	m.topic = topic
	m.messages = append(m.messages, messages...)
	return nil
}

func sampleEvent() event.CreditAssessmentEvaluated {
	return event.NewCreditAssessmentEvaluated(
		"assessment-1", "tenant-001", "applicant-001",
		680, valueobject.RiskLevelMedium, true,
		decimal.RequireFromString("0.10"), decimal.NewFromInt(9000),
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	)
}

func newPublisher(p kafka.Producer) *kafka.EventPublisher {
	return kafka.NewEventPublisher(p, "risk-events", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEventPublisher_Publish(t *testing.T) {
	t.Run("keys by aggregate and sets headers", func(t *testing.T) {
		producer := &mockProducer{}
		evt := sampleEvent()

		err := newPublisher(producer).Publish(context.Background(), evt)

		require.NoError(t, err)
		assert.Equal(t, "risk-events", producer.topic)
		require.Len(t, producer.messages, 1)

		msg := producer.messages[0]
		assert.Equal(t, []byte("assessment-1"), msg.Key)
		assert.Equal(t, map[string]string{
			"event_type": event.TypeCreditAssessmentEvaluated,
			"event_id":   evt.EventID(),
			"tenant_id":  "tenant-001",
		}, msg.Headers)

		var env events.Envelope
		require.NoError(t, json.Unmarshal(msg.Value, &env))
		assert.Equal(t, evt.EventID(), env.EventID)
		assert.Equal(t, "assessment-1", env.AggregateID)

		var data struct {
			ApplicantID       string `json:"applicant_id"`
			RiskLevel         string `json:"risk_level"`
			MaxApprovedAmount string `json:"max_approved_amount"`
			Score             int    `json:"score"`
			Approved          bool   `json:"approved"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "applicant-001", data.ApplicantID)
		assert.Equal(t, "MEDIUM", data.RiskLevel)
		assert.Equal(t, "9000", data.MaxApprovedAmount)
		assert.Equal(t, 680, data.Score)
		assert.True(t, data.Approved)
	})

	t.Run("skips the producer when there is nothing to send", func(t *testing.T) {
		producer := &mockProducer{}

		require.NoError(t, newPublisher(producer).Publish(context.Background()))
		assert.Zero(t, producer.calls)
	})

	t.Run("wraps producer errors", func(t *testing.T) {
		producer := &mockProducer{
			publishFunc: func(_ context.Context, _ string, _ ...pkgkafka.Message) error {
				return fmt.Errorf("broker unavailable")
			},
		}

		err := newPublisher(producer).Publish(context.Background(), sampleEvent())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "risk-events")
		assert.Contains(t, err.Error(), "broker unavailable")
	})
}
