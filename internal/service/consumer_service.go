package service

import (
	"context"
	"encoding/json"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	// Consume handles queued documents until ctx is done.
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	workflows  IWorkflowService
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	workflows IWorkflowService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		workflows:  workflows,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			cs.processMessage(ctx, msg)
		}
	}
}

// processMessage acks every message. The workflow already retried, so a
// redelivery would only repeat the same failure.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.ProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Dropping malformed message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Info("CONSUMER", "Processing queued document", map[string]interface{}{
		"message_id": msg.UUID,
		"uri":        payload.Document.URI,
	})

	state := cs.workflows.Execute(ctx, dto.WorkflowInput{
		Action:  dto.ActionProcess,
		Data:    &dto.ProcessData{Document: &payload.Document},
		Options: payload.Options,
	})

	if state.Status == dto.StatusFailed {
		cs.logger.Error("CONSUMER", "Queued document failed", map[string]interface{}{
			"message_id": msg.UUID,
			"uri":        payload.Document.URI,
			"error":      state.Error,
		})
		return
	}

	details := map[string]interface{}{
		"message_id": msg.UUID,
		"chunks":     len(state.Results.Chunks),
	}
	if state.Results.Metadata != nil {
		details["title"] = state.Results.Metadata.Title
	}
	cs.logger.Info("CONSUMER", "Queued document processed", details)
}
