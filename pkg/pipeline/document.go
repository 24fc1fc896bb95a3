package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/internal/repository/contract"
	"contract-workflow-be/pkg/ai/prompt"
	"contract-workflow-be/pkg/loader"
	"contract-workflow-be/pkg/utils"

	"github.com/google/uuid"
)

// unknownValue stands in for a contract type or jurisdiction the document does not state.
const unknownValue = "unknown"

type DocumentProcessor struct {
	loader    loader.Loader
	splitter  *utils.TextSplitter
	transform Transform
	store     DocumentStore
	analyzer  *Analyzer
	logger    logger.ILogger
	now       func() time.Time
	newID     func() string
}

func NewDocumentProcessor(
	documentLoader loader.Loader,
	splitter *utils.TextSplitter,
	transform Transform,
	store DocumentStore,
	analyzer *Analyzer,
	log logger.ILogger,
) *DocumentProcessor {
	if splitter == nil {
		splitter = utils.NewTextSplitter(1000, 200)
	}
	return &DocumentProcessor{
		loader:    documentLoader,
		splitter:  splitter,
		transform: transform,
		store:     store,
		analyzer:  analyzer,
		logger:    log,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Process loads a document, chunks its primary text, extracts metadata from
// the first chunk and stores the full primary text under a slug of its title.
// A document whose slug is already stored is replaced.
func (p *DocumentProcessor) Process(ctx context.Context, handle dto.DocumentHandle, opts Options, steps StepRecorder) (*dto.WorkflowResults, error) {
	record(steps, StepDocumentLoading)
	segments, err := p.loader.Load(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("document loading: %w", err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("document loading: %w: no text in %s", loader.ErrUnsupportedDocument, handle.URI)
	}
	body := segments[0]

	record(steps, StepDocumentChunking)
	chunks := p.splitter.Split(body)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document chunking: %w: %s produced no chunks", loader.ErrUnsupportedDocument, handle.URI)
	}

	record(steps, StepMetadataExtraction)
	var metadata dto.ContractMetadata
	if err := p.transform.Into(ctx, "ContractMetadata", prompt.ExtractMetadata(chunks[0]), &metadata); err != nil {
		return nil, fmt.Errorf("metadata extraction: %w", err)
	}

	record(steps, StepDocumentStorage)
	documentId, err := p.save(ctx, body, metadata)
	if err != nil {
		return nil, err
	}

	results := &dto.WorkflowResults{
		Metadata: &metadata,
		Chunks:   chunks,
	}

	if opts.ValidateResults {
		record(steps, StepDocumentAnalysis)
		if p.analyzer == nil {
			return nil, fmt.Errorf("document analysis: no analyzer configured")
		}
		contractType := metadata.Type
		if contractType == "" {
			contractType = unknownValue
		}
		analysis, err := p.analyzer.Analyze(ctx, AnalysisRequest{
			ContractText:  chunks[0],
			Jurisdiction:  unknownValue,
			ContractType:  contractType,
			ValidateRules: true,
		}, steps)
		if err != nil {
			return nil, err
		}
		results.Analysis = analysis
	}

	p.logger.Info("DOCUMENT_PROCESSOR", "Document processed", map[string]interface{}{
		"document_id": documentId,
		"uri":         handle.URI,
		"chunks":      len(chunks),
	})

	return results, nil
}

func (p *DocumentProcessor) save(ctx context.Context, body string, metadata dto.ContractMetadata) (string, error) {
	documentId := utils.Slugify(metadata.Title)
	if documentId == "" {
		documentId = "document-" + p.newID()
	}

	now := p.now().UTC().Format(time.RFC3339)
	stored := map[string]interface{}{
		"id":        documentId,
		"title":     metadata.Title,
		"type":      metadata.Type,
		"createdAt": now,
		"updatedAt": now,
	}
	if metadata.PropertyDetails.PropertyType != "" {
		stored["propertyType"] = metadata.PropertyDetails.PropertyType
	}

	_, err := p.store.Store(ctx, documentId, body, stored)
	if errors.Is(err, contract.ErrDocumentExists) {
		p.logger.Info("DOCUMENT_PROCESSOR", "Document already stored, replacing", map[string]interface{}{
			"document_id": documentId,
		})
		delete(stored, "createdAt")
		_, err = p.store.Update(ctx, documentId, body, stored)
	}
	if err != nil {
		return "", fmt.Errorf("document storage: %w", err)
	}
	return documentId, nil
}
