package contract

import (
	"context"

	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/repository/specification"
)

type ContractFeedbackRepository interface {
	// CreateIfAbsent inserts feedback unless its id is already stored and
	// reports whether a row was written.
	CreateIfAbsent(ctx context.Context, feedback *entity.ContractFeedback) (bool, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContractFeedback, error)
}
