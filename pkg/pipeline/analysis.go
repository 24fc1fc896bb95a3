package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/pkg/ai/prompt"
)

const (
	comparisonLimit    = 3
	comparisonMinScore = 0.8
)

var emptyComparison = json.RawMessage("[]")

type AnalysisRequest struct {
	ContractText       string
	Jurisdiction       string
	ContractType       string
	CompareWithSimilar bool
	ValidateRules      bool
}

// Analyzer extracts typed clauses from contract text and optionally compares
// them with stored contracts and checks them against the local rules.
type Analyzer struct {
	retriever Retriever
	transform Transform
	logger    logger.ILogger
}

// NewAnalyzer builds an analyzer. retriever may be nil when comparison is never requested.
func NewAnalyzer(retriever Retriever, transform Transform, log logger.ILogger) *Analyzer {
	return &Analyzer{
		retriever: retriever,
		transform: transform,
		logger:    log,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, req AnalysisRequest, steps StepRecorder) (*dto.AnalysisResult, error) {
	record(steps, StepClauseExtraction)

	var result dto.AnalysisResult
	if err := a.transform.Into(ctx, "AnalysisResult",
		prompt.ExtractClauses(req.ContractText, req.Jurisdiction, req.ContractType), &result); err != nil {
		return nil, fmt.Errorf("clause extraction: %w", err)
	}

	result.ComparisonResults = emptyComparison
	result.ValidationResults = []dto.ValidationRuleResult{}
	if result.MissingRequiredClauses == nil {
		result.MissingRequiredClauses = []string{}
	}

	if req.CompareWithSimilar {
		record(steps, StepClauseComparison)
		comparison, err := a.compare(ctx, req.ContractText, result.Clauses)
		if err != nil {
			return nil, err
		}
		if comparison != nil {
			result.ComparisonResults = comparison
		}
	}

	if req.ValidateRules {
		record(steps, StepRuleValidation)
		result.ValidationResults = EvaluateRules(result.Clauses)
	}

	a.logger.Debug("ANALYZER", "Contract analyzed", map[string]interface{}{
		"clauses":    len(result.Clauses),
		"compared":   req.CompareWithSimilar,
		"validated":  req.ValidateRules,
		"risk_level": result.RiskAssessment.OverallRisk,
	})

	return &result, nil
}

// compare returns nil when no reference contract scores high enough.
func (a *Analyzer) compare(ctx context.Context, contractText string, clauses []dto.Clause) (json.RawMessage, error) {
	if a.retriever == nil {
		return nil, errors.New("clause comparison: no retriever configured")
	}

	minScore := comparisonMinScore
	matches, err := a.retriever.Search(ctx, contractText, dto.SearchFilters{}, dto.SearchOptions{
		Limit:    comparisonLimit,
		MinScore: &minScore,
	})
	if err != nil {
		return nil, fmt.Errorf("reference retrieval: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	comparison, err := a.transform.Raw(ctx, prompt.CompareClauses(clauses, matches))
	if err != nil {
		return nil, fmt.Errorf("clause comparison: %w", err)
	}
	return comparison, nil
}
