package nats

import (
	"encoding/json"
	"testing"
	"time"

	"contract-workflow-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeCarriesTypeAndTime(t *testing.T) {
	at := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	evt := events.BaseEvent{
		Type:       events.WorkflowCompleted,
		Data:       map[string]interface{}{"action": "generate", "attempts": float64(1)},
		OccurredAt: at,
	}

	raw, err := json.Marshal(toEnvelope(evt))
	require.NoError(t, err)

	var decoded envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, evt, decoded.event())
	assert.Equal(t, "workflow.WORKFLOW_COMPLETED", Subject(evt.EventType()))
}
