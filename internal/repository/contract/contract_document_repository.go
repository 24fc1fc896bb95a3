package contract

import (
	"context"
	"errors"

	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/repository/specification"
)

var (
	ErrDocumentNotFound = errors.New("contract document not found")
	ErrDocumentExists   = errors.New("contract document already exists")
)

// ScoredContractDocument wraps a document with its cosine similarity to the query.
type ScoredContractDocument struct {
	Document   *entity.ContractDocument
	Similarity float64
}

type ContractDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ContractDocument) error
	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContractDocument, error)
	// SearchSimilarWithScore returns the limit nearest documents that satisfy every spec, nearest first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*ScoredContractDocument, error)
}
