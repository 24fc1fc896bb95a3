package unitofwork

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGormUnitOfWork_WithoutTransaction(t *testing.T) {
	uow := NewRepositoryFactory(nil).NewUnitOfWork(context.Background())

	assert.ErrorIs(t, uow.Commit(), ErrNoTransaction)
	assert.NoError(t, uow.Rollback())
	assert.NotNil(t, uow.ContractDocumentRepository())
	assert.NotNil(t, uow.ContractFeedbackRepository())
}
