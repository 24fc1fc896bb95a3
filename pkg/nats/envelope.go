package nats

import (
	"time"

	"contract-workflow-be/pkg/events"
)

const (
	StreamName    = "WORKFLOW"
	SubjectPrefix = "workflow."
)

// envelope is the wire form of an event.
type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurredAt"`
	Data       map[string]interface{} `json:"data"`
}

func toEnvelope(e events.Event) envelope {
	return envelope{
		Type:       e.EventType(),
		OccurredAt: e.Timestamp(),
		Data:       e.Payload(),
	}
}

func (e envelope) event() events.BaseEvent {
	return events.BaseEvent{
		Type:       e.Type,
		Data:       e.Data,
		OccurredAt: e.OccurredAt,
	}
}

// Subject is the subject an event type is published on.
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}
