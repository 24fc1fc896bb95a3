package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/pkg/ai/prompt"
	"contract-workflow-be/pkg/ai/transform"
	"contract-workflow-be/pkg/schema"
)

const similarContractLimit = 3

type Generator struct {
	retriever Retriever
	transform Transform
	analyzer  *Analyzer
	logger    logger.ILogger
	now       func() time.Time
}

func NewGenerator(retriever Retriever, transform Transform, analyzer *Analyzer, log logger.ILogger) *Generator {
	return &Generator{
		retriever: retriever,
		transform: transform,
		analyzer:  analyzer,
		logger:    log,
		now:       time.Now,
	}
}

// Generate drafts a contract for input. With ValidateResults set the draft's
// sections also go through rules-only clause analysis.
func (g *Generator) Generate(ctx context.Context, input dto.ContractInput, opts Options, steps StepRecorder) (*dto.WorkflowResults, error) {
	similar := prompt.NoSimilarContracts
	if opts.IncludeSimilarContracts {
		record(steps, StepSimilarContractRetrieval)
		matches, err := g.retrieveSimilar(ctx, input.PropertyDetails)
		if err != nil {
			return nil, err
		}
		similar = prompt.FormatSimilarContracts(matches)
	}

	record(steps, StepContractGeneration)
	var contract dto.ContractOutput
	if err := g.transform.Into(ctx, "ContractOutput", prompt.GenerateContract(input, similar), &contract); err != nil {
		return nil, fmt.Errorf("contract generation: %w", err)
	}

	record(steps, StepContractValidation)
	if err := FinalizeContract(&contract, g.now()); err != nil {
		return nil, err
	}

	results := &dto.WorkflowResults{Contract: &contract}

	if opts.ValidateResults {
		record(steps, StepContractAnalysis)
		if g.analyzer == nil {
			return nil, fmt.Errorf("contract analysis: no analyzer configured")
		}
		analysis, err := g.analyzer.Analyze(ctx, AnalysisRequest{
			ContractText:  SectionText(contract.Sections),
			Jurisdiction:  input.Jurisdiction,
			ContractType:  contract.Metadata.Type,
			ValidateRules: true,
		}, steps)
		if err != nil {
			return nil, err
		}
		results.Analysis = analysis
	}

	g.logger.Info("GENERATOR", "Contract generated", map[string]interface{}{
		"title":        contract.Title,
		"sections":     len(contract.Sections),
		"jurisdiction": contract.Metadata.Jurisdiction,
	})

	return results, nil
}

func (g *Generator) retrieveSimilar(ctx context.Context, property dto.PropertyDetails) ([]dto.SimilarityMatch, error) {
	if g.retriever == nil {
		return nil, fmt.Errorf("similar contract retrieval: no retriever configured")
	}

	query := fmt.Sprintf("%s property at %s", property.PropertyType, property.Address)
	matches, err := g.retriever.Search(ctx, query, dto.SearchFilters{}, dto.SearchOptions{Limit: similarContractLimit})
	if err != nil {
		return nil, fmt.Errorf("similar contract retrieval: %w", err)
	}
	if len(matches) > similarContractLimit {
		matches = matches[:similarContractLimit]
	}
	return matches, nil
}

// FinalizeContract re-validates a generated contract and stamps
// metadata.lastUpdated with now. Nothing else is modified, so finalizing an
// already final contract only advances the timestamp.
func FinalizeContract(contract *dto.ContractOutput, now time.Time) error {
	if err := schema.Validate("ContractOutput", contract); err != nil {
		return fmt.Errorf("%w: %v", transform.ErrOutputValidation, err)
	}
	contract.Metadata.LastUpdated = now.UTC().Format(time.RFC3339Nano)
	return nil
}

// SectionText joins sections as title/content blocks for clause extraction.
func SectionText(sections []dto.ContractSection) string {
	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		blocks = append(blocks, s.Title+"\n"+s.Content)
	}
	return strings.Join(blocks, "\n\n")
}
