package service

import (
	"context"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/pkg/events"
	"contract-workflow-be/pkg/workflow"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IWorkflowService interface {
	Execute(ctx context.Context, input dto.WorkflowInput) dto.WorkflowState
	Enqueue(ctx context.Context, req *dto.ProcessDocumentMessage) (*dto.EnqueueDocumentResponse, error)
}

type workflowService struct {
	deps      workflow.Dependencies
	config    workflow.Config
	publisher IPublisherService
	events    EventPublisher
	logger    logger.ILogger
}

// NewWorkflowService wires the orchestrator to the transports. events may be
// nil, in which case lifecycle events are not published.
func NewWorkflowService(
	deps workflow.Dependencies,
	config workflow.Config,
	publisher IPublisherService,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IWorkflowService {
	return &workflowService{
		deps:      deps,
		config:    config,
		publisher: publisher,
		events:    eventPublisher,
		logger:    log,
	}
}

func (s *workflowService) Execute(ctx context.Context, input dto.WorkflowInput) dto.WorkflowState {
	state := workflow.ExecuteWorkflow(ctx, s.deps, s.config, input)

	s.logger.Info("WORKFLOW_SERVICE", "Workflow finished", map[string]interface{}{
		"action":     string(input.Action),
		"status":     string(state.Status),
		"attempts":   state.Attempts,
		"elapsed_ms": workflow.Elapsed(state).Milliseconds(),
	})

	s.publishOutcome(ctx, input.Action, state)
	return state
}

// Enqueue schedules a process workflow for the document consumer.
func (s *workflowService) Enqueue(ctx context.Context, req *dto.ProcessDocumentMessage) (*dto.EnqueueDocumentResponse, error) {
	probe := dto.WorkflowInput{
		Action:  dto.ActionProcess,
		Data:    &dto.ProcessData{Document: &req.Document},
		Options: req.Options,
	}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	messageId, err := s.publisher.PublishProcessDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BaseEvent{
		Type: events.DocumentEnqueued,
		Data: map[string]interface{}{
			"message_id": messageId,
			"uri":        req.Document.URI,
		},
		OccurredAt: time.Now(),
	})

	return &dto.EnqueueDocumentResponse{MessageId: messageId}, nil
}

func (s *workflowService) publishOutcome(ctx context.Context, action dto.WorkflowAction, state dto.WorkflowState) {
	data := map[string]interface{}{
		"action":   string(action),
		"status":   string(state.Status),
		"attempts": state.Attempts,
		"step":     state.CurrentStep,
	}

	eventType := events.WorkflowCompleted
	if state.Status == dto.StatusFailed {
		eventType = events.WorkflowFailed
		data["error"] = state.Error
	}

	occurredAt := time.Now()
	if state.EndTime != nil {
		occurredAt = *state.EndTime
	}

	s.publishEvent(ctx, events.BaseEvent{Type: eventType, Data: data, OccurredAt: occurredAt})
}

// publishEvent never fails the caller; a lost event is only logged.
func (s *workflowService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if s.events == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.events.Publish(pubCtx, evt); err != nil {
		s.logger.Warn("WORKFLOW_SERVICE", "Failed to publish event", map[string]interface{}{
			"type":  evt.Type,
			"error": err.Error(),
		})
	}
}
