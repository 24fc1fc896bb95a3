package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/internal/repository/contract"
	"contract-workflow-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDocumentStore(repo *mockDocumentRepository, uow *mockUnitOfWork, embedder *stubEmbedder) IDocumentStoreService {
	uow.docs = repo
	return NewDocumentStoreService(&mockFactory{uow: uow}, embedder, logger.NewNopLogger(), time.Second)
}

func TestDocumentStore_Store(t *testing.T) {
	repo := &mockDocumentRepository{}
	uow := &mockUnitOfWork{}
	svc := newDocumentStore(repo, uow, &stubEmbedder{})

	metadata := map[string]interface{}{"title": "Lease", "type": "lease"}
	repo.On("Create", mock.MatchedBy(func(doc *entity.ContractDocument) bool {
		return doc.Id == "lease" && doc.Content == "body" && doc.Metadata["type"] == "lease" && len(doc.Embedding) == 2
	})).Return(nil).Once()

	res, err := svc.Store(context.Background(), "lease", "body", metadata)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "lease", res.DocumentId)
	repo.AssertExpectations(t)
	uow.AssertNotCalled(t, "Begin")
}

func TestDocumentStore_StoreEmbeddingFailure(t *testing.T) {
	repo := &mockDocumentRepository{}
	svc := newDocumentStore(repo, &mockUnitOfWork{}, &stubEmbedder{err: errors.New("quota")})

	_, err := svc.Store(context.Background(), "lease", "body", nil)

	assert.ErrorContains(t, err, "embedding generation failed")
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestDocumentStore_UpdateIsTransactional(t *testing.T) {
	repo := &mockDocumentRepository{}
	uow := &mockUnitOfWork{}
	svc := newDocumentStore(repo, uow, &stubEmbedder{})

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var order []string

	uow.On("Begin").Run(func(mock.Arguments) { order = append(order, "begin") }).Return(nil)
	repo.On("FindOne", []specification.Specification{specification.ByDocumentId{Id: "lease"}}).
		Return(&entity.ContractDocument{Id: "lease", CreatedAt: created, Metadata: map[string]interface{}{"createdAt": "2024-03-01T00:00:00Z"}}, nil)
	repo.On("Delete", "lease").Run(func(mock.Arguments) { order = append(order, "delete") }).Return(nil)
	repo.On("Create", mock.MatchedBy(func(doc *entity.ContractDocument) bool {
		return doc.CreatedAt.Equal(created) && doc.Metadata["createdAt"] == "2024-03-01T00:00:00Z" && doc.Metadata["updatedAt"] != nil
	})).Run(func(mock.Arguments) { order = append(order, "create") }).Return(nil)
	uow.On("Commit").Run(func(mock.Arguments) { order = append(order, "commit") }).Return(nil)
	uow.On("Rollback").Return(errors.New("no transaction to rollback"))

	res, err := svc.Update(context.Background(), "lease", "new body", map[string]interface{}{"type": "lease"})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"begin", "delete", "create", "commit"}, order)
	repo.AssertExpectations(t)
}

func TestDocumentStore_UpdateRollsBackWhenInsertFails(t *testing.T) {
	repo := &mockDocumentRepository{}
	uow := &mockUnitOfWork{}
	svc := newDocumentStore(repo, uow, &stubEmbedder{})

	uow.On("Begin").Return(nil)
	repo.On("FindOne", mock.Anything).Return(nil, nil)
	repo.On("Delete", "lease").Return(nil)
	repo.On("Create", mock.Anything).Return(errors.New("connection reset"))
	uow.On("Rollback").Return(nil).Once()

	_, err := svc.Update(context.Background(), "lease", "new body", nil)

	assert.ErrorContains(t, err, "re-insert document lease")
	uow.AssertCalled(t, "Rollback")
	uow.AssertNotCalled(t, "Commit")
}

func TestDocumentStore_UpdateMissingDocument(t *testing.T) {
	repo := &mockDocumentRepository{}
	uow := &mockUnitOfWork{}
	svc := newDocumentStore(repo, uow, &stubEmbedder{})

	uow.On("Begin").Return(nil)
	uow.On("Rollback").Return(nil)
	repo.On("FindOne", mock.Anything).Return(nil, nil)
	repo.On("Delete", "missing").Return(contract.ErrDocumentNotFound)

	_, err := svc.Update(context.Background(), "missing", "body", nil)

	assert.ErrorIs(t, err, contract.ErrDocumentNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestDocumentStore_ArchiveAndDelete(t *testing.T) {
	repo := &mockDocumentRepository{}
	svc := newDocumentStore(repo, &mockUnitOfWork{}, &stubEmbedder{})

	repo.On("Archive", "lease").Return(nil).Once()
	repo.On("Delete", "gone").Return(contract.ErrDocumentNotFound).Once()

	assert.NoError(t, svc.Archive(context.Background(), "lease"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "gone"), contract.ErrDocumentNotFound)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}
