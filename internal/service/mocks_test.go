package service

import (
	"context"

	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/repository/contract"
	"contract-workflow-be/internal/repository/specification"
	"contract-workflow-be/internal/repository/unitofwork"
	"contract-workflow-be/pkg/embedding"

	"github.com/stretchr/testify/mock"
)

type mockFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *mockFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type mockUnitOfWork struct {
	mock.Mock
	docs     contract.ContractDocumentRepository
	feedback contract.ContractFeedbackRepository
}

func (m *mockUnitOfWork) Begin(ctx context.Context) error { return m.Called().Error(0) }
func (m *mockUnitOfWork) Commit() error                   { return m.Called().Error(0) }
func (m *mockUnitOfWork) Rollback() error                 { return m.Called().Error(0) }

func (m *mockUnitOfWork) ContractDocumentRepository() contract.ContractDocumentRepository {
	return m.docs
}

func (m *mockUnitOfWork) ContractFeedbackRepository() contract.ContractFeedbackRepository {
	return m.feedback
}

type mockDocumentRepository struct {
	mock.Mock
}

func (m *mockDocumentRepository) Create(ctx context.Context, doc *entity.ContractDocument) error {
	return m.Called(doc).Error(0)
}

func (m *mockDocumentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockDocumentRepository) Archive(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContractDocument, error) {
	args := m.Called(specs)
	doc, _ := args.Get(0).(*entity.ContractDocument)
	return doc, args.Error(1)
}

func (m *mockDocumentRepository) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int, specs ...specification.Specification) ([]*contract.ScoredContractDocument, error) {
	args := m.Called(vector, limit, specs)
	res, _ := args.Get(0).([]*contract.ScoredContractDocument)
	return res, args.Error(1)
}

type mockFeedbackRepository struct {
	mock.Mock
}

func (m *mockFeedbackRepository) CreateIfAbsent(ctx context.Context, feedback *entity.ContractFeedback) (bool, error) {
	args := m.Called(feedback)
	return args.Bool(0), args.Error(1)
}

func (m *mockFeedbackRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContractFeedback, error) {
	args := m.Called(specs)
	res, _ := args.Get(0).([]*entity.ContractFeedback)
	return res, args.Error(1)
}

type stubEmbedder struct {
	err   error
	calls int
}

func (s *stubEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.6, 0.8}}}, nil
}
