package pipeline

import (
	"context"
	"errors"
	"testing"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/pkg/ai/transform"
	"contract-workflow-be/pkg/llm"
	"contract-workflow-be/pkg/llm/llmtest"
	"contract-workflow-be/pkg/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFeedbackStore struct {
	events *[]string
	stored []dto.FeedbackData
	err    error
}

func (s *recordingFeedbackStore) Store(ctx context.Context, feedback *dto.FeedbackData) (bool, error) {
	*s.events = append(*s.events, "store")
	if s.err != nil {
		return false, s.err
	}
	s.stored = append(s.stored, *feedback)
	return true, nil
}

type recordingProvider struct {
	*llmtest.Scripted
	events *[]string
}

func (p recordingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	*p.events = append(*p.events, "analyze")
	return p.Scripted.Generate(ctx, prompt, options...)
}

func sampleFeedback() dto.FeedbackData {
	return dto.FeedbackData{
		ContractId:            "c1",
		Rating:                5,
		Aspects:               dto.FeedbackAspects{Clarity: 5, Completeness: 5, Accuracy: 5, LegalCompliance: 5},
		Comments:              "great",
		SuggestedImprovements: []string{},
		Timestamp:             fixedNow,
	}
}

func TestFeedbackProcessor_StoresBeforeAnalysis(t *testing.T) {
	var events []string
	store := &recordingFeedbackStore{events: &events}
	provider := recordingProvider{Scripted: llmtest.Always(feedbackAnalysisJSON), events: &events}
	p := NewFeedbackProcessor(store, transform.New(provider, 0), nopLogger())
	steps := &stepLog{}

	res, err := p.Process(context.Background(), sampleFeedback(), steps)

	require.NoError(t, err)
	assert.Equal(t, []string{"store", "analyze"}, events)
	assert.Equal(t, []string{StepFeedbackStorage, StepFeedbackAnalysis}, steps.steps)
	assert.Equal(t, "c1", res.Feedback.ContractId)
	assert.Equal(t, "Well received", res.FeedbackAnalysis.OverallAssessment)
}

func TestFeedbackProcessor_AnalysisFailureKeepsStoredFeedback(t *testing.T) {
	var events []string
	store := &recordingFeedbackStore{events: &events}
	provider := recordingProvider{Scripted: llmtest.Failing(errors.New("model overloaded")), events: &events}
	p := NewFeedbackProcessor(store, transform.New(provider, 0), nopLogger())

	res, err := p.Process(context.Background(), sampleFeedback(), nil)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, transform.ErrUpstream)
	require.Len(t, store.stored, 1)
	assert.Equal(t, "c1", store.stored[0].ContractId)
	assert.Equal(t, []string{"store", "analyze"}, events)
}

func TestFeedbackProcessor_InvalidFeedbackIsNotStored(t *testing.T) {
	var events []string
	store := &recordingFeedbackStore{events: &events}
	p := NewFeedbackProcessor(store, transform.New(llmtest.Always(feedbackAnalysisJSON), 0), nopLogger())

	fb := sampleFeedback()
	fb.Rating = 9

	_, err := p.Process(context.Background(), fb, nil)

	assert.ErrorIs(t, err, schema.ErrValidation)
	assert.Empty(t, events)
}
