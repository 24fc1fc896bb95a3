// Package pipeline holds the sequential steps behind each workflow action.
// Pipelines do no retrying of their own; every error is returned to the
// caller unchanged apart from wrapping.
package pipeline

import (
	"context"
	"encoding/json"

	"contract-workflow-be/internal/dto"
)

const (
	StepSimilarContractRetrieval = "similar_contract_retrieval"
	StepContractGeneration       = "contract_generation"
	StepContractValidation       = "contract_validation"
	StepContractAnalysis         = "contract_analysis"

	StepDocumentLoading    = "document_loading"
	StepDocumentChunking   = "document_chunking"
	StepMetadataExtraction = "metadata_extraction"
	StepDocumentStorage    = "document_storage"
	StepDocumentAnalysis   = "document_analysis"

	StepClauseExtraction = "clause_extraction"
	StepClauseComparison = "clause_comparison"
	StepRuleValidation   = "rule_validation"

	StepFeedbackStorage  = "feedback_storage"
	StepFeedbackAnalysis = "feedback_analysis"
)

// StepRecorder observes the step labels a pipeline passes through.
type StepRecorder interface {
	Step(name string)
}

type StepFunc func(name string)

func (f StepFunc) Step(name string) { f(name) }

func record(steps StepRecorder, name string) {
	if steps != nil {
		steps.Step(name)
	}
}

// Options are the resolved workflow options a pipeline runs with.
type Options struct {
	IncludeSimilarContracts bool
	ValidateResults         bool
}

type Retriever interface {
	Search(ctx context.Context, query string, filters dto.SearchFilters, options dto.SearchOptions) ([]dto.SimilarityMatch, error)
}

// Transform is the generative call. Into decodes and validates a JSON object
// against the named shape; Raw only checks that the answer is well-formed JSON.
type Transform interface {
	Into(ctx context.Context, schemaName, prompt string, out interface{}) error
	Raw(ctx context.Context, prompt string) (json.RawMessage, error)
}

type DocumentStore interface {
	Store(ctx context.Context, documentId, content string, metadata map[string]interface{}) (*dto.StoreResult, error)
	Update(ctx context.Context, documentId, content string, metadata map[string]interface{}) (*dto.StoreResult, error)
}

type FeedbackStore interface {
	Store(ctx context.Context, feedback *dto.FeedbackData) (bool, error)
}
