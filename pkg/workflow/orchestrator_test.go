package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/pkg/ai/transform"
	"contract-workflow-be/pkg/llm/llmtest"
	"contract-workflow-be/pkg/pipeline"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// started from init by opencensus, pulled in through the genai auth stack
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

const (
	contractJSON = `{"title":"Residential Purchase Agreement","sections":[{"title":"Purchase Price","content":"The buyer shall pay $395,000.","isRequired":true}],"metadata":{"type":"purchase_agreement","jurisdiction":"CA","lastUpdated":"1999-01-01T00:00:00Z","version":"1.0"},"summary":"Offer for 1 Main St."}`

	analysisJSON = `{"clauses":[{"type":"purchase_price","content":"The buyer shall pay $395,000.","isRequired":true,"riskLevel":"low"}],"missingRequiredClauses":["closing_date","contingencies"],"riskAssessment":{"overallRisk":"medium","riskFactors":[]},"comparisonResults":[],"validationResults":[]}`
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NewBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return cfg
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func caContractInput() *dto.ContractInput {
	return &dto.ContractInput{
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

func generateInput(options dto.WorkflowOptions) dto.WorkflowInput {
	return dto.WorkflowInput{
		Action:  dto.ActionGenerate,
		Data:    &dto.GenerateData{ContractInput: caContractInput()},
		Options: options,
	}
}

// fakeGenerator fails the first failures calls and then succeeds.
type fakeGenerator struct {
	failures int
	err      error
	calls    int
	onCall   func(call int)
	opts     []pipeline.Options
}

func (g *fakeGenerator) Generate(ctx context.Context, input dto.ContractInput, opts pipeline.Options, steps pipeline.StepRecorder) (*dto.WorkflowResults, error) {
	g.calls++
	g.opts = append(g.opts, opts)
	if g.onCall != nil {
		g.onCall(g.calls)
	}
	steps.Step(pipeline.StepContractGeneration)
	if g.calls <= g.failures {
		return nil, g.err
	}
	return &dto.WorkflowResults{Contract: &dto.ContractOutput{Title: fmt.Sprintf("attempt %d", g.calls)}}, nil
}

type fakeAnalyzer struct {
	requests []pipeline.AnalysisRequest
}

func (a *fakeAnalyzer) Analyze(ctx context.Context, req pipeline.AnalysisRequest, steps pipeline.StepRecorder) (*dto.AnalysisResult, error) {
	a.requests = append(a.requests, req)
	return &dto.AnalysisResult{ComparisonResults: []byte("[]")}, nil
}

type emptyRetriever struct{ queries []string }

func (r *emptyRetriever) Search(ctx context.Context, query string, filters dto.SearchFilters, options dto.SearchOptions) ([]dto.SimilarityMatch, error) {
	r.queries = append(r.queries, query)
	return nil, nil
}

func TestExecute_InvalidInputFailsWithoutRetry(t *testing.T) {
	gen := &fakeGenerator{}
	input := generateInput(dto.WorkflowOptions{})
	input.Data.(*dto.GenerateData).ContractInput.BuyerInfo.Email = "not-an-email"

	state := ExecuteWorkflow(context.Background(), Dependencies{Generator: gen}, testConfig(), input)

	assert.Equal(t, dto.StatusFailed, state.Status)
	assert.Contains(t, state.Error, "email must be a valid email address")
	assert.NotContains(t, state.Error, "Workflow failed after")
	assert.Zero(t, gen.calls)
	assert.Zero(t, state.Attempts)
	require.NotNil(t, state.EndTime)
}

func TestExecute_RetryBound(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries *int
		wantCalls  int
		wantMax    int
	}{
		{name: "default", maxRetries: nil, wantCalls: 4, wantMax: 3},
		{name: "zero", maxRetries: intPtr(0), wantCalls: 1, wantMax: 0},
		{name: "one", maxRetries: intPtr(1), wantCalls: 2, wantMax: 1},
		{name: "five", maxRetries: intPtr(5), wantCalls: 6, wantMax: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{failures: 100, err: errors.New("quota exceeded")}

			state := ExecuteWorkflow(context.Background(), Dependencies{Generator: gen}, testConfig(),
				generateInput(dto.WorkflowOptions{MaxRetries: tt.maxRetries}))

			assert.Equal(t, dto.StatusFailed, state.Status)
			assert.Equal(t, tt.wantCalls, gen.calls)
			assert.Equal(t, tt.wantCalls, state.Attempts)
			assert.Equal(t, fmt.Sprintf("Workflow failed after %d attempts: quota exceeded", tt.wantMax), state.Error)
			assert.Equal(t, pipeline.StepContractGeneration, state.CurrentStep)
			assert.Nil(t, state.Results.Contract)
			require.NotNil(t, state.EndTime)
		})
	}
}

func TestExecute_RecoversOnRetry(t *testing.T) {
	gen := &fakeGenerator{failures: 2, err: fmt.Errorf("%w: timeout", transform.ErrUpstream)}

	state := ExecuteWorkflow(context.Background(), Dependencies{Generator: gen}, testConfig(), generateInput(dto.WorkflowOptions{}))

	assert.Equal(t, dto.StatusCompleted, state.Status)
	assert.Equal(t, 3, state.Attempts)
	require.NotNil(t, state.Results.Contract)
	assert.Equal(t, "attempt 3", state.Results.Contract.Title)
	assert.Empty(t, state.Error)
}

func TestExecute_MergesOptionsOverDefaults(t *testing.T) {
	gen := &fakeGenerator{}

	ExecuteWorkflow(context.Background(), Dependencies{Generator: gen}, testConfig(),
		generateInput(dto.WorkflowOptions{IncludeSimilarContracts: boolPtr(false)}))

	require.Len(t, gen.opts, 1)
	assert.Equal(t, pipeline.Options{IncludeSimilarContracts: false, ValidateResults: true}, gen.opts[0])
}

func TestExecute_AnalyzeFlagsFollowOptions(t *testing.T) {
	tests := []struct {
		name    string
		data    dto.AnalyzeData
		options dto.WorkflowOptions
		compare bool
		rules   bool
	}{
		{name: "defaults", compare: true, rules: true},
		{name: "options off", options: dto.WorkflowOptions{IncludeSimilarContracts: boolPtr(false), ValidateResults: boolPtr(false)}},
		{name: "explicit flags win", data: dto.AnalyzeData{CompareWithSimilar: boolPtr(false), ValidateRules: boolPtr(true)},
			options: dto.WorkflowOptions{ValidateResults: boolPtr(false)}, rules: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{}
			data := tt.data
			data.ContractText = "contract body"
			data.Jurisdiction = "NY"

			state := ExecuteWorkflow(context.Background(), Dependencies{Analyzer: analyzer}, testConfig(),
				dto.WorkflowInput{Action: dto.ActionAnalyze, Data: &data, Options: tt.options})

			require.Equal(t, dto.StatusCompleted, state.Status, state.Error)
			require.Len(t, analyzer.requests, 1)
			assert.Equal(t, pipeline.AnalysisRequest{
				ContractText:       "contract body",
				Jurisdiction:       "NY",
				CompareWithSimilar: tt.compare,
				ValidateRules:      tt.rules,
			}, analyzer.requests[0])
			assert.NotNil(t, state.Results.Analysis)
		})
	}
}

func TestExecute_CancelledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gen := &fakeGenerator{failures: 100, err: context.Canceled, onCall: func(int) { cancel() }}

	state := ExecuteWorkflow(ctx, Dependencies{Generator: gen}, testConfig(), generateInput(dto.WorkflowOptions{}))

	assert.Equal(t, dto.StatusFailed, state.Status)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "Workflow aborted after 1 attempt(s): context canceled", state.Error)
}

func TestExecute_MissingPipelineIsNotRetried(t *testing.T) {
	state := ExecuteWorkflow(context.Background(), Dependencies{}, testConfig(), generateInput(dto.WorkflowOptions{}))

	assert.Equal(t, dto.StatusFailed, state.Status)
	assert.Equal(t, 1, state.Attempts)
	assert.Equal(t, "Workflow failed: pipeline not configured: generate", state.Error)
}

type failingDocuments struct {
	err   error
	calls int
}

func (d *failingDocuments) Process(ctx context.Context, handle dto.DocumentHandle, opts pipeline.Options, steps pipeline.StepRecorder) (*dto.WorkflowResults, error) {
	d.calls++
	steps.Step(pipeline.StepDocumentLoading)
	return nil, fmt.Errorf("document loading: %w", d.err)
}

func TestExecute_PipelineInputErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unsupported document", err: fmt.Errorf("%w: content type application/pdf", ErrUnsupportedDocument)},
		{name: "validation", err: fmt.Errorf("%w: query is empty", ErrValidation)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := &failingDocuments{err: tt.err}
			input := dto.WorkflowInput{
				Action: dto.ActionProcess,
				Data:   &dto.ProcessData{Document: &dto.DocumentHandle{URI: "contract.pdf", ContentType: "application/pdf"}},
			}

			state := ExecuteWorkflow(context.Background(), Dependencies{Documents: docs}, testConfig(), input)

			assert.Equal(t, dto.StatusFailed, state.Status)
			assert.Equal(t, 1, docs.calls)
			assert.Equal(t, 1, state.Attempts)
			assert.Equal(t, "Workflow failed: document loading: "+tt.err.Error(), state.Error)
			assert.NotContains(t, state.Error, "attempts")
		})
	}
}

func TestExecuteWorkflow_FreshCounterPerCall(t *testing.T) {
	gen := &fakeGenerator{failures: 1, err: errors.New("flaky")}
	deps := Dependencies{Generator: gen}

	first := ExecuteWorkflow(context.Background(), deps, testConfig(), generateInput(dto.WorkflowOptions{}))
	second := ExecuteWorkflow(context.Background(), deps, testConfig(), generateInput(dto.WorkflowOptions{}))

	assert.Equal(t, 2, first.Attempts)
	assert.Equal(t, 1, second.Attempts)
}

func TestExecute_GenerateScenario(t *testing.T) {
	provider := llmtest.NewScripted(llmtest.Reply{Text: contractJSON}, llmtest.Reply{Text: analysisJSON})
	tf := transform.New(provider, time.Second)
	retriever := &emptyRetriever{}
	log := logger.NewNopLogger()
	deps := Dependencies{
		Generator: pipeline.NewGenerator(retriever, tf, pipeline.NewAnalyzer(retriever, tf, log), log),
		Logger:    log,
	}

	before := time.Now()
	state := ExecuteWorkflow(context.Background(), deps, testConfig(), generateInput(dto.WorkflowOptions{}))

	require.Equal(t, dto.StatusCompleted, state.Status, state.Error)
	require.NotNil(t, state.EndTime)
	assert.Equal(t, []string{"residential property at 1 Main St"}, retriever.queries)

	want := &dto.ContractOutput{
		Title: "Residential Purchase Agreement",
		Sections: []dto.ContractSection{
			{Title: "Purchase Price", Content: "The buyer shall pay $395,000.", IsRequired: true},
		},
		Metadata: dto.ContractOutputMetadata{Type: "purchase_agreement", Jurisdiction: "CA", Version: "1.0"},
		Summary:  "Offer for 1 Main St.",
	}
	if diff := cmp.Diff(want, state.Results.Contract, cmpopts.IgnoreFields(dto.ContractOutputMetadata{}, "LastUpdated")); diff != "" {
		t.Errorf("contract mismatch (-want +got):\n%s", diff)
	}

	lastUpdated, err := time.Parse(time.RFC3339Nano, state.Results.Contract.Metadata.LastUpdated)
	require.NoError(t, err)
	assert.False(t, lastUpdated.Before(before.UTC().Truncate(time.Nanosecond)))

	require.NotNil(t, state.Results.Analysis)
	wantRules := []dto.ValidationRuleResult{
		{Rule: pipeline.RuleRequiredClauses, Passed: false, Details: "Missing required clauses: closing_date, contingencies"},
		{Rule: pipeline.RuleHighRiskReview, Passed: true, Details: "No high-risk clauses found"},
	}
	if diff := cmp.Diff(wantRules, state.Results.Analysis.ValidationResults); diff != "" {
		t.Errorf("validation results mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_GenerateRetriesMalformedOutput(t *testing.T) {
	provider := llmtest.NewScripted(llmtest.Reply{Text: "Sorry, I cannot help with that."}, llmtest.Reply{Text: contractJSON})
	tf := transform.New(provider, 0)
	log := logger.NewNopLogger()
	deps := Dependencies{Generator: pipeline.NewGenerator(nil, tf, nil, log), Logger: log}

	state := ExecuteWorkflow(context.Background(), deps, testConfig(), generateInput(dto.WorkflowOptions{
		IncludeSimilarContracts: boolPtr(false),
		ValidateResults:         boolPtr(false),
	}))

	require.Equal(t, dto.StatusCompleted, state.Status, state.Error)
	assert.Equal(t, 2, state.Attempts)
	assert.Equal(t, 2, provider.Calls())
}
