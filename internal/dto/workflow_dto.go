package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"contract-workflow-be/pkg/schema"
)

type WorkflowAction string

const (
	ActionGenerate WorkflowAction = "generate"
	ActionProcess  WorkflowAction = "process"
	ActionAnalyze  WorkflowAction = "analyze"
	ActionFeedback WorkflowAction = "feedback"
)

func (a WorkflowAction) Valid() bool {
	switch a {
	case ActionGenerate, ActionProcess, ActionAnalyze, ActionFeedback:
		return true
	}
	return false
}

// WorkflowData is the action-specific payload of a WorkflowInput.
type WorkflowData interface {
	Action() WorkflowAction
}

type GenerateData struct {
	ContractInput *ContractInput `json:"contractInput" validate:"required"`
}

func (*GenerateData) Action() WorkflowAction { return ActionGenerate }

type DocumentHandle struct {
	URI         string `json:"uri" validate:"required"`
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

type ProcessData struct {
	Document *DocumentHandle `json:"document" validate:"required"`
}

func (*ProcessData) Action() WorkflowAction { return ActionProcess }

// AnalyzeData flags left nil follow includeSimilarContracts and validateResults.
type AnalyzeData struct {
	ContractText       string `json:"contractText" validate:"required"`
	Jurisdiction       string `json:"jurisdiction" validate:"required"`
	ContractType       string `json:"contractType,omitempty"`
	CompareWithSimilar *bool  `json:"compareWithSimilar,omitempty"`
	ValidateRules      *bool  `json:"validateRules,omitempty"`
}

func (*AnalyzeData) Action() WorkflowAction { return ActionAnalyze }

type FeedbackPayload struct {
	Feedback *FeedbackData `json:"feedback" validate:"required"`
}

func (*FeedbackPayload) Action() WorkflowAction { return ActionFeedback }

// WorkflowOptions fields left nil take the configured defaults.
type WorkflowOptions struct {
	IncludeSimilarContracts *bool `json:"includeSimilarContracts,omitempty"`
	ValidateResults         *bool `json:"validateResults,omitempty"`
	MaxRetries              *int  `json:"maxRetries,omitempty" validate:"omitempty,gte=0"`
}

type WorkflowInput struct {
	Action  WorkflowAction  `json:"action"`
	Data    WorkflowData    `json:"data" validate:"-"`
	Options WorkflowOptions `json:"options"`
}

func (in *WorkflowInput) UnmarshalJSON(b []byte) error {
	var raw struct {
		Action  WorkflowAction  `json:"action"`
		Data    json.RawMessage `json:"data"`
		Options WorkflowOptions `json:"options"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	in.Action = raw.Action
	in.Options = raw.Options
	in.Data = nil

	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return nil
	}

	var data WorkflowData
	switch raw.Action {
	case ActionGenerate:
		data = &GenerateData{}
	case ActionProcess:
		data = &ProcessData{}
	case ActionAnalyze:
		data = &AnalyzeData{}
	case ActionFeedback:
		data = &FeedbackPayload{}
	default:
		// unknown actions are reported by Validate
		return nil
	}

	if err := json.Unmarshal(raw.Data, data); err != nil {
		return schema.NewError("WorkflowInput", "data", "type",
			fmt.Sprintf("data is not a valid %s payload: %v", raw.Action, err))
	}
	in.Data = data
	return nil
}

// Validate checks that the action is known, that data carries the variant for
// that action, and that the variant satisfies its own shape.
func (in *WorkflowInput) Validate() error {
	if !in.Action.Valid() {
		return schema.NewError("WorkflowInput", "action", "oneof",
			fmt.Sprintf("action must be one of [generate process analyze feedback], got %q", in.Action))
	}
	if in.Data == nil {
		return schema.NewError("WorkflowInput", "data", "required",
			fmt.Sprintf("data is required for action %s", in.Action))
	}
	if in.Data.Action() != in.Action {
		return schema.NewError("WorkflowInput", "data", "variant",
			fmt.Sprintf("data is a %s payload but action is %s", in.Data.Action(), in.Action))
	}
	if err := schema.Validate("WorkflowOptions", in.Options); err != nil {
		return err
	}
	return schema.Validate(string(in.Action)+" data", in.Data)
}

type WorkflowStatus string

const (
	StatusPending    WorkflowStatus = "pending"
	StatusProcessing WorkflowStatus = "processing"
	StatusCompleted  WorkflowStatus = "completed"
	StatusFailed     WorkflowStatus = "failed"
)

type WorkflowResults struct {
	Contract         *ContractOutput   `json:"contract,omitempty"`
	Analysis         *AnalysisResult   `json:"analysis,omitempty"`
	Metadata         *ContractMetadata `json:"metadata,omitempty"`
	Chunks           []string          `json:"chunks,omitempty"`
	Feedback         *FeedbackData     `json:"feedback,omitempty"`
	FeedbackAnalysis *FeedbackAnalysis `json:"feedbackAnalysis,omitempty"`
}

type WorkflowState struct {
	Status      WorkflowStatus  `json:"status"`
	CurrentStep string          `json:"currentStep"`
	Results     WorkflowResults `json:"results"`
	Error       string          `json:"error,omitempty"`
	Attempts    int             `json:"attempts"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     *time.Time      `json:"endTime,omitempty"`
}
