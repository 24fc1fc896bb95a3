package events

import "time"

const (
	WorkflowCompleted = "WORKFLOW_COMPLETED"
	WorkflowFailed    = "WORKFLOW_FAILED"
	DocumentEnqueued  = "DOCUMENT_ENQUEUED"
)

// Event is anything published on the event bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
