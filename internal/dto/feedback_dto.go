package dto

import "time"

type FeedbackAspects struct {
	Clarity         int `json:"clarity" validate:"required,min=1,max=5"`
	Completeness    int `json:"completeness" validate:"required,min=1,max=5"`
	Accuracy        int `json:"accuracy" validate:"required,min=1,max=5"`
	LegalCompliance int `json:"legalCompliance" validate:"required,min=1,max=5"`
}

type FeedbackData struct {
	ContractId            string          `json:"contractId" validate:"required"`
	Rating                int             `json:"rating" validate:"required,min=1,max=5"`
	Aspects               FeedbackAspects `json:"aspects"`
	Comments              string          `json:"comments"`
	SuggestedImprovements []string        `json:"suggestedImprovements"`
	Timestamp             time.Time       `json:"timestamp" validate:"required"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type ImprovementArea struct {
	Area     string   `json:"area" validate:"required"`
	Priority Priority `json:"priority" validate:"required,oneof=high medium low"`
	Impact   string   `json:"impact" validate:"required"`
}

type ImprovementSuggestion struct {
	Description    string   `json:"description" validate:"required"`
	Implementation string   `json:"implementation" validate:"required"`
	Priority       Priority `json:"priority" validate:"required,oneof=high medium low"`
}

type FeedbackAnalysis struct {
	ImprovementAreas  []ImprovementArea       `json:"improvementAreas" validate:"dive"`
	Suggestions       []ImprovementSuggestion `json:"suggestions" validate:"dive"`
	OverallAssessment string                  `json:"overallAssessment" validate:"required"`
}
