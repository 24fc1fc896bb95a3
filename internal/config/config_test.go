package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.True(t, cfg.Workflow.IncludeSimilarContracts)
	assert.True(t, cfg.Workflow.ValidateResults)
	assert.Equal(t, 3, cfg.Workflow.MaxRetries)
	assert.Equal(t, 5, cfg.Retrieval.Limit)
	assert.Equal(t, 0.7, cfg.Retrieval.MinScore)
	assert.Equal(t, 1000, cfg.Splitter.ChunkSize)
	assert.Equal(t, 200, cfg.Splitter.ChunkOverlap)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKFLOW_MAX_RETRIES", "0")
	t.Setenv("WORKFLOW_VALIDATE_RESULTS", "false")
	t.Setenv("WORKFLOW_STEP_TIMEOUT", "15s")
	t.Setenv("RETRIEVAL_MIN_SCORE", "0.85")

	cfg := Load()

	assert.Equal(t, 0, cfg.Workflow.MaxRetries)
	assert.False(t, cfg.Workflow.ValidateResults)
	assert.Equal(t, 15*time.Second, cfg.Workflow.StepTimeout)
	assert.Equal(t, 0.85, cfg.Retrieval.MinScore)
}

func TestGetEnvHelpers_FallbackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_BOOL", "maybe")
	t.Setenv("SOME_DURATION", "soon")

	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	assert.True(t, getEnvAsBool("SOME_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
