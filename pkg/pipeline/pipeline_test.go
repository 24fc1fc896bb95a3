package pipeline

import (
	"context"
	"sync"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/pkg/ai/transform"
	"contract-workflow-be/pkg/llm/llmtest"
)

const (
	contractJSON = `{"title":"Residential Purchase Agreement","sections":[{"title":"Purchase Price","content":"The buyer shall pay $395,000.","isRequired":true},{"title":"Contingencies","content":"Subject to financing.","isRequired":true}],"metadata":{"type":"purchase_agreement","jurisdiction":"CA","lastUpdated":"1999-01-01T00:00:00Z","version":"1.0"},"summary":"Offer for 1 Main St."}`

	analysisJSON = `{"clauses":[{"type":"purchase_price","content":"The buyer shall pay $395,000.","isRequired":true,"riskLevel":"low"},{"type":"contingencies","content":"Subject to financing.","isRequired":true,"riskLevel":"high"}],"missingRequiredClauses":["closing_date"],"riskAssessment":{"overallRisk":"medium","riskFactors":["single contingency"]},"comparisonResults":[],"validationResults":[]}`

	metadataJSON = `{"title":"Residential Purchase Agreement","type":"purchase_agreement","parties":[{"name":"A Buyer","role":"buyer"}],"propertyDetails":{"address":"1 Main St","propertyType":"residential"},"dates":{},"keyTerms":["financing"]}`

	feedbackAnalysisJSON = `{"improvementAreas":[{"area":"clarity","priority":"low","impact":"minor"}],"suggestions":[{"description":"Shorten recitals","implementation":"Merge the first two sections","priority":"low"}],"overallAssessment":"Well received"}`
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func caInput() dto.ContractInput {
	return dto.ContractInput{
		PropertyDetails: dto.PropertyDetails{PropertyType: "residential", Address: "1 Main St", Price: "$400,000"},
		BuyerInfo:       dto.BuyerInfo{Name: "A Buyer", Email: "a@example.com"},
		OfferTerms: dto.OfferTerms{
			OfferPrice:    "$395,000",
			EarnestMoney:  "$5,000",
			ClosingDate:   "2025-01-01",
			Contingencies: []string{"financing"},
		},
		Jurisdiction: "CA",
	}
}

func scriptedTransform(replies ...string) (*transform.Transformer, *llmtest.Scripted) {
	script := make([]llmtest.Reply, 0, len(replies))
	for _, r := range replies {
		script = append(script, llmtest.Reply{Text: r})
	}
	provider := llmtest.NewScripted(script...)
	return transform.New(provider, 0), provider
}

type stepLog struct {
	mu    sync.Mutex
	steps []string
}

func (l *stepLog) Step(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, name)
}

type searchCall struct {
	Query   string
	Filters dto.SearchFilters
	Options dto.SearchOptions
}

type stubRetriever struct {
	matches []dto.SimilarityMatch
	err     error
	calls   []searchCall
}

func (r *stubRetriever) Search(ctx context.Context, query string, filters dto.SearchFilters, options dto.SearchOptions) ([]dto.SimilarityMatch, error) {
	r.calls = append(r.calls, searchCall{Query: query, Filters: filters, Options: options})
	if r.err != nil {
		return nil, r.err
	}
	return r.matches, nil
}

func reference(text string, score float64) dto.SimilarityMatch {
	return dto.SimilarityMatch{
		Document: dto.SimilarDocument{Id: "ref", Text: text, Metadata: map[string]interface{}{"type": "purchase_agreement"}},
		Score:    score,
		Rank:     1,
	}
}

func nopLogger() logger.ILogger {
	return logger.NewNopLogger()
}
