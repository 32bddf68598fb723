package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	TenantID() string
	OccurredAt() time.Time
}

// BaseEvent provides a default implementation of DomainEvent.
// Concrete events embed it and add their own exported payload fields.
type BaseEvent struct {
	id            string
	eventType     string
	aggregateID   string
	aggregateType string
	tenantID      string
	occurredAt    time.Time
}

// NewBaseEvent creates a new BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType, tenantID string) BaseEvent {
	return NewBaseEventAt(eventType, aggregateID, aggregateType, tenantID, time.Now())
}

// NewBaseEventAt is NewBaseEvent with an explicit occurrence time.
func NewBaseEventAt(eventType, aggregateID, aggregateType, tenantID string, at time.Time) BaseEvent {
	return BaseEvent{
		id:            uuid.New().String(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		tenantID:      tenantID,
		occurredAt:    at.UTC(),
	}
}

// EventID returns the unique identifier for this event.
func (e BaseEvent) EventID() string { return e.id }

// EventType returns the type name of this event.
func (e BaseEvent) EventType() string { return e.eventType }

// AggregateID returns the identifier of the aggregate that produced this event.
func (e BaseEvent) AggregateID() string { return e.aggregateID }

// AggregateType returns the type name of the aggregate that produced this event.
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// TenantID returns the tenant that owns the aggregate.
func (e BaseEvent) TenantID() string { return e.tenantID }

// OccurredAt returns the time at which this event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// Envelope is the wire representation of a domain event. The event metadata
// lives in the envelope and the concrete event's exported fields in Data.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	TenantID      string          `json:"tenant_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Data          json.RawMessage `json:"data"`
}

// Marshal serialises a domain event into its JSON envelope.
func Marshal(event DomainEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s data: %w", event.EventType(), err)
	}

	env := Envelope{
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		TenantID:      event.TenantID(),
		OccurredAt:    event.OccurredAt(),
		Data:          data,
	}

	out, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s envelope: %w", event.EventType(), err)
	}
	return out, nil
}
