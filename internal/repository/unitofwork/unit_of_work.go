package unitofwork

import (
	"context"
	"errors"

	"contract-workflow-be/internal/repository/contract"
)

var (
	ErrTransactionActive = errors.New("transaction already started")
	ErrNoTransaction     = errors.New("no active transaction")
)

// UnitOfWork hands out repositories that share one optional transaction.
// Outside Begin/Commit every repository call runs on its own.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	// Rollback is a no-op once the transaction has been committed.
	Rollback() error

	ContractDocumentRepository() contract.ContractDocumentRepository
	ContractFeedbackRepository() contract.ContractFeedbackRepository
}

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
