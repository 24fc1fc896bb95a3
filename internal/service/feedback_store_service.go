package service

import (
	"context"
	"fmt"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/mapper"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/internal/repository/specification"
	"contract-workflow-be/internal/repository/unitofwork"
)

type IFeedbackStoreService interface {
	// Store persists feedback once. Re-submitting the same contract id and
	// timestamp is a no-op and reports false.
	Store(ctx context.Context, feedback *dto.FeedbackData) (bool, error)
	// List returns a contract's feedback, newest first.
	List(ctx context.Context, contractId string) ([]dto.FeedbackData, error)
}

type feedbackStoreService struct {
	uowFactory  unitofwork.RepositoryFactory
	mapper      *mapper.ContractFeedbackMapper
	logger      logger.ILogger
	callTimeout time.Duration
}

func NewFeedbackStoreService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger, callTimeout time.Duration) IFeedbackStoreService {
	return &feedbackStoreService{
		uowFactory:  uowFactory,
		mapper:      mapper.NewContractFeedbackMapper(),
		logger:      log,
		callTimeout: callTimeout,
	}
}

func (s *feedbackStoreService) Store(ctx context.Context, feedback *dto.FeedbackData) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	record := s.mapper.FromDTO(feedback)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	created, err := uow.ContractFeedbackRepository().CreateIfAbsent(ctx, record)
	if err != nil {
		return false, fmt.Errorf("store feedback for %s: %w", feedback.ContractId, err)
	}

	s.logger.Info("FEEDBACK_STORE", "Feedback stored", map[string]interface{}{
		"feedback_id": record.Id.String(),
		"contract_id": feedback.ContractId,
		"created":     created,
	})
	return created, nil
}

func (s *feedbackStoreService) List(ctx context.Context, contractId string) ([]dto.FeedbackData, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.ContractFeedbackRepository().FindAll(ctx,
		specification.ByContractId{ContractId: contractId},
		specification.NewestSubmittedFirst{},
	)
	if err != nil {
		return nil, fmt.Errorf("list feedback for %s: %w", contractId, err)
	}

	res := make([]dto.FeedbackData, len(records))
	for i, record := range records {
		res[i] = s.mapper.ToDTO(record)
	}
	return res, nil
}

func (s *feedbackStoreService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout > 0 {
		return context.WithTimeout(ctx, s.callTimeout)
	}
	return context.WithCancel(ctx)
}
