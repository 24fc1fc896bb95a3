package workflow

import (
	"errors"

	"contract-workflow-be/internal/repository/contract"
	"contract-workflow-be/pkg/ai/transform"
	"contract-workflow-be/pkg/loader"
	"contract-workflow-be/pkg/rag/search"
	"contract-workflow-be/pkg/schema"
)

// Error kinds a workflow run can end with. Input errors raised by a pipeline
// (ErrValidation, ErrUnsupportedDocument) and ErrPipelineUnavailable skip the
// retry loop.
var (
	ErrValidation          = schema.ErrValidation
	ErrOutputValidation    = transform.ErrOutputValidation
	ErrUpstream            = transform.ErrUpstream
	ErrMalformedMatch      = search.ErrMalformedMatch
	ErrDocumentNotFound    = contract.ErrDocumentNotFound
	ErrUnsupportedDocument = loader.ErrUnsupportedDocument

	ErrPipelineUnavailable = errors.New("pipeline not configured")
)

func isPermanent(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnsupportedDocument) ||
		errors.Is(err, ErrPipelineUnavailable)
}
