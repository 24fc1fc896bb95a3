// Package workflow runs one workflow action end to end: input validation,
// dispatch to the matching pipeline and whole-workflow retry.
package workflow

import (
	"context"
	"fmt"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/pkg/pipeline"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "contract-workflow-be/pkg/workflow"

type ContractGenerator interface {
	Generate(ctx context.Context, input dto.ContractInput, opts pipeline.Options, steps pipeline.StepRecorder) (*dto.WorkflowResults, error)
}

type DocumentProcessor interface {
	Process(ctx context.Context, handle dto.DocumentHandle, opts pipeline.Options, steps pipeline.StepRecorder) (*dto.WorkflowResults, error)
}

type ContractAnalyzer interface {
	Analyze(ctx context.Context, req pipeline.AnalysisRequest, steps pipeline.StepRecorder) (*dto.AnalysisResult, error)
}

type FeedbackProcessor interface {
	Process(ctx context.Context, feedback dto.FeedbackData, steps pipeline.StepRecorder) (*dto.WorkflowResults, error)
}

// Dependencies are the pipelines an orchestrator dispatches to. A nil
// pipeline fails its action without retrying.
type Dependencies struct {
	Generator ContractGenerator
	Documents DocumentProcessor
	Analyzer  ContractAnalyzer
	Feedback  FeedbackProcessor
	Logger    logger.ILogger
}

// Orchestrator owns the state of one run at a time. It is not safe for
// concurrent use; ExecuteWorkflow gives every call its own instance.
type Orchestrator struct {
	deps     Dependencies
	config   Config
	tracer   trace.Tracer
	attempts int
}

func New(deps Dependencies, config Config) *Orchestrator {
	defaults := DefaultConfig()
	if config.NewBackOff == nil {
		config.NewBackOff = defaults.NewBackOff
	}
	if config.Now == nil {
		config.Now = defaults.Now
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}

	return &Orchestrator{
		deps:   deps,
		config: config,
		tracer: otel.Tracer(tracerName),
	}
}

// ExecuteWorkflow runs input on a fresh orchestrator.
func ExecuteWorkflow(ctx context.Context, deps Dependencies, config Config, input dto.WorkflowInput) dto.WorkflowState {
	return New(deps, config).Execute(ctx, input)
}

// Attempts reports how many times the last Execute dispatched its pipeline.
func (o *Orchestrator) Attempts() int {
	return o.attempts
}

// Execute validates input and runs its pipeline, re-running the whole
// pipeline from the original input on failure up to maxRetries more times.
// The returned state is always completed or failed.
func (o *Orchestrator) Execute(ctx context.Context, input dto.WorkflowInput) dto.WorkflowState {
	o.attempts = 0
	state := dto.WorkflowState{
		Status:    dto.StatusPending,
		StartTime: o.config.Now(),
	}

	ctx, span := o.tracer.Start(ctx, "workflow.execute",
		trace.WithAttributes(attribute.String("workflow.action", string(input.Action))))
	defer span.End()

	if err := input.Validate(); err != nil {
		o.deps.Logger.Warn("WORKFLOW", "Rejected workflow input", map[string]interface{}{
			"action": string(input.Action),
			"error":  err.Error(),
		})
		return o.finish(span, &state, err, err.Error())
	}

	opts := o.config.resolve(input.Options)
	state.Status = dto.StatusProcessing
	state.CurrentStep = string(input.Action)

	steps := pipeline.StepFunc(func(name string) {
		state.CurrentStep = name
		span.AddEvent(name, trace.WithAttributes(attribute.Int("workflow.attempt", o.attempts)))
		o.deps.Logger.Debug("WORKFLOW", "Step started", map[string]interface{}{
			"action":  string(input.Action),
			"step":    name,
			"attempt": o.attempts,
		})
	})

	results, err := backoff.Retry(ctx, func() (*dto.WorkflowResults, error) {
		o.attempts++
		state.Attempts = o.attempts
		state.CurrentStep = string(input.Action)
		state.Results = dto.WorkflowResults{}

		res, err := o.dispatch(ctx, input, opts.Options, steps)
		if err != nil {
			o.deps.Logger.Warn("WORKFLOW", "Attempt failed", map[string]interface{}{
				"action":  string(input.Action),
				"step":    state.CurrentStep,
				"attempt": o.attempts,
				"error":   err.Error(),
			})
			if isPermanent(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return res, nil
	},
		backoff.WithBackOff(o.config.NewBackOff()),
		backoff.WithMaxTries(uint(opts.MaxRetries)+1),
		backoff.WithMaxElapsedTime(0),
	)

	if err != nil {
		return o.finish(span, &state, err, o.failureMessage(ctx, err, opts.MaxRetries))
	}

	state.Results = *results
	o.deps.Logger.Info("WORKFLOW", "Workflow completed", map[string]interface{}{
		"action":   string(input.Action),
		"attempts": o.attempts,
	})
	return o.finish(span, &state, nil, "")
}

func (o *Orchestrator) failureMessage(ctx context.Context, err error, maxRetries int) string {
	switch {
	case ctx.Err() != nil:
		return fmt.Sprintf("Workflow aborted after %d attempt(s): %s", o.attempts, err.Error())
	case isPermanent(err):
		return fmt.Sprintf("Workflow failed: %s", err.Error())
	default:
		return fmt.Sprintf("Workflow failed after %d attempts: %s", maxRetries, err.Error())
	}
}

// finish moves state to its terminal status. A nil err means completed.
func (o *Orchestrator) finish(span trace.Span, state *dto.WorkflowState, err error, message string) dto.WorkflowState {
	end := o.config.Now()
	state.EndTime = &end

	if err != nil {
		state.Status = dto.StatusFailed
		state.Error = message
		state.Results = dto.WorkflowResults{}
		span.RecordError(err)
		span.SetStatus(codes.Error, message)
		o.deps.Logger.Error("WORKFLOW", "Workflow failed", map[string]interface{}{
			"step":     state.CurrentStep,
			"attempts": o.attempts,
			"error":    message,
		})
		return *state
	}

	state.Status = dto.StatusCompleted
	span.SetStatus(codes.Ok, "")
	return *state
}

func (o *Orchestrator) dispatch(ctx context.Context, input dto.WorkflowInput, opts pipeline.Options, steps pipeline.StepRecorder) (*dto.WorkflowResults, error) {
	switch data := input.Data.(type) {
	case *dto.GenerateData:
		if o.deps.Generator == nil {
			return nil, fmt.Errorf("%w: generate", ErrPipelineUnavailable)
		}
		return o.deps.Generator.Generate(ctx, *data.ContractInput, opts, steps)

	case *dto.ProcessData:
		if o.deps.Documents == nil {
			return nil, fmt.Errorf("%w: process", ErrPipelineUnavailable)
		}
		return o.deps.Documents.Process(ctx, *data.Document, opts, steps)

	case *dto.AnalyzeData:
		if o.deps.Analyzer == nil {
			return nil, fmt.Errorf("%w: analyze", ErrPipelineUnavailable)
		}
		analysis, err := o.deps.Analyzer.Analyze(ctx, analysisRequest(data, opts), steps)
		if err != nil {
			return nil, err
		}
		return &dto.WorkflowResults{Analysis: analysis}, nil

	case *dto.FeedbackPayload:
		if o.deps.Feedback == nil {
			return nil, fmt.Errorf("%w: feedback", ErrPipelineUnavailable)
		}
		return o.deps.Feedback.Process(ctx, *data.Feedback, steps)
	}

	return nil, backoff.Permanent(fmt.Errorf("unhandled workflow data %T", input.Data))
}

// analysisRequest applies the workflow options to flags the caller left unset.
func analysisRequest(data *dto.AnalyzeData, opts pipeline.Options) pipeline.AnalysisRequest {
	req := pipeline.AnalysisRequest{
		ContractText:       data.ContractText,
		Jurisdiction:       data.Jurisdiction,
		ContractType:       data.ContractType,
		CompareWithSimilar: opts.IncludeSimilarContracts,
		ValidateRules:      opts.ValidateResults,
	}
	if data.CompareWithSimilar != nil {
		req.CompareWithSimilar = *data.CompareWithSimilar
	}
	if data.ValidateRules != nil {
		req.ValidateRules = *data.ValidateRules
	}
	return req
}

// Elapsed is the wall time of a finished run.
func Elapsed(state dto.WorkflowState) time.Duration {
	if state.EndTime == nil {
		return 0
	}
	return state.EndTime.Sub(state.StartTime)
}
