package service

import (
	"context"
	"fmt"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/internal/repository/specification"
	"contract-workflow-be/internal/repository/unitofwork"
	"contract-workflow-be/pkg/embedding"
)

type IDocumentStoreService interface {
	Store(ctx context.Context, documentId, content string, metadata map[string]interface{}) (*dto.StoreResult, error)
	Update(ctx context.Context, documentId, content string, metadata map[string]interface{}) (*dto.StoreResult, error)
	Archive(ctx context.Context, documentId string) error
	Delete(ctx context.Context, documentId string) error
}

type documentStoreService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
	callTimeout       time.Duration
}

func NewDocumentStoreService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
	callTimeout time.Duration,
) IDocumentStoreService {
	return &documentStoreService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
		callTimeout:       callTimeout,
	}
}

// Store embeds content and inserts it under the caller-supplied id.
func (s *documentStoreService) Store(ctx context.Context, documentId, content string, metadata map[string]interface{}) (*dto.StoreResult, error) {
	vector, err := s.embed(ctx, content)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(callCtx)
	doc := &entity.ContractDocument{
		Id:        documentId,
		Content:   content,
		Metadata:  copyMetadata(metadata),
		Embedding: vector,
		CreatedAt: time.Now(),
	}
	if err := uow.ContractDocumentRepository().Create(callCtx, doc); err != nil {
		return nil, fmt.Errorf("store document %s: %w", documentId, err)
	}

	s.logger.Info("DOCUMENT_STORE", "Document stored", map[string]interface{}{
		"document_id": documentId,
		"length":      len(content),
	})

	return &dto.StoreResult{Success: true, DocumentId: documentId}, nil
}

// Update replaces a document by deleting and re-inserting it inside one
// transaction, so a failure leaves the previous version in place.
func (s *documentStoreService) Update(ctx context.Context, documentId, content string, metadata map[string]interface{}) (*dto.StoreResult, error) {
	vector, err := s.embed(ctx, content)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(callCtx)
	if err := uow.Begin(callCtx); err != nil {
		return nil, fmt.Errorf("begin update of %s: %w", documentId, err)
	}
	defer uow.Rollback()

	repo := uow.ContractDocumentRepository()

	existing, err := repo.FindOne(callCtx, specification.ByDocumentId{Id: documentId})
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", documentId, err)
	}

	if err := repo.Delete(callCtx, documentId); err != nil {
		return nil, fmt.Errorf("delete document %s: %w", documentId, err)
	}

	doc := &entity.ContractDocument{
		Id:        documentId,
		Content:   content,
		Metadata:  copyMetadata(metadata),
		Embedding: vector,
		CreatedAt: time.Now(),
	}
	if existing != nil {
		doc.CreatedAt = existing.CreatedAt
		if _, ok := doc.Metadata["createdAt"]; !ok {
			if createdAt, ok := existing.Metadata["createdAt"]; ok {
				doc.Metadata["createdAt"] = createdAt
			}
		}
	}
	doc.Metadata["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	if err := repo.Create(callCtx, doc); err != nil {
		return nil, fmt.Errorf("re-insert document %s: %w", documentId, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit update of %s: %w", documentId, err)
	}

	s.logger.Info("DOCUMENT_STORE", "Document replaced", map[string]interface{}{
		"document_id": documentId,
	})

	return &dto.StoreResult{Success: true, DocumentId: documentId}, nil
}

// Archive flags the document so searches skip it. The row is kept.
func (s *documentStoreService) Archive(ctx context.Context, documentId string) error {
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(callCtx)
	if err := uow.ContractDocumentRepository().Archive(callCtx, documentId); err != nil {
		return fmt.Errorf("archive document %s: %w", documentId, err)
	}

	s.logger.Info("DOCUMENT_STORE", "Document archived", map[string]interface{}{
		"document_id": documentId,
	})
	return nil
}

func (s *documentStoreService) Delete(ctx context.Context, documentId string) error {
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(callCtx)
	if err := uow.ContractDocumentRepository().Delete(callCtx, documentId); err != nil {
		return fmt.Errorf("delete document %s: %w", documentId, err)
	}

	s.logger.Info("DOCUMENT_STORE", "Document deleted", map[string]interface{}{
		"document_id": documentId,
	})
	return nil
}

func (s *documentStoreService) embed(ctx context.Context, content string) ([]float32, error) {
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.embeddingProvider.Generate(callCtx, content, embedding.TaskRetrievalDocument)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	return res.Embedding.Values, nil
}

func (s *documentStoreService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout > 0 {
		return context.WithTimeout(ctx, s.callTimeout)
	}
	return context.WithCancel(ctx)
}

func copyMetadata(metadata map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(metadata)+1)
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
