package pipeline

import (
	"context"
	"fmt"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/pkg/ai/prompt"
	"contract-workflow-be/pkg/schema"
)

type FeedbackProcessor struct {
	store     FeedbackStore
	transform Transform
	logger    logger.ILogger
}

func NewFeedbackProcessor(store FeedbackStore, transform Transform, log logger.ILogger) *FeedbackProcessor {
	return &FeedbackProcessor{
		store:     store,
		transform: transform,
		logger:    log,
	}
}

// Process stores the feedback and then asks the model for improvement areas.
// Stored feedback stays stored when the analysis fails.
func (p *FeedbackProcessor) Process(ctx context.Context, feedback dto.FeedbackData, steps StepRecorder) (*dto.WorkflowResults, error) {
	if err := schema.Validate("FeedbackData", &feedback); err != nil {
		return nil, err
	}

	record(steps, StepFeedbackStorage)
	created, err := p.store.Store(ctx, &feedback)
	if err != nil {
		return nil, fmt.Errorf("feedback storage: %w", err)
	}
	if !created {
		p.logger.Debug("FEEDBACK_PROCESSOR", "Feedback already stored", map[string]interface{}{
			"contract_id": feedback.ContractId,
		})
	}

	record(steps, StepFeedbackAnalysis)
	var analysis dto.FeedbackAnalysis
	if err := p.transform.Into(ctx, "FeedbackAnalysis", prompt.AnalyzeFeedback(feedback), &analysis); err != nil {
		return nil, fmt.Errorf("feedback analysis: %w", err)
	}

	return &dto.WorkflowResults{
		Feedback:         &feedback,
		FeedbackAnalysis: &analysis,
	}, nil
}
