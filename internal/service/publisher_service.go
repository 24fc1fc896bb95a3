package service

import (
	"context"
	"encoding/json"
	"fmt"

	"contract-workflow-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishProcessDocument(ctx context.Context, req *dto.ProcessDocumentMessage) (string, error)
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

// PublishProcessDocument queues req and returns the message id.
func (ps *publisherService) PublishProcessDocument(ctx context.Context, req *dto.ProcessDocumentMessage) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal process document message: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		return "", fmt.Errorf("publish to %s: %w", ps.topicName, err)
	}
	return msg.UUID, nil
}
