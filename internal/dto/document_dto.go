package dto

import "time"

type StoreResult struct {
	Success    bool   `json:"success"`
	DocumentId string `json:"documentId"`
}

type UpdateDocumentRequest struct {
	Id       string
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

type SimilarDocument struct {
	Id       string                 `json:"id,omitempty"`
	Text     string                 `json:"text" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

type SimilarityMatch struct {
	Document SimilarDocument `json:"document"`
	Score    float64         `json:"score" validate:"gte=0,lte=1"`
	Rank     int             `json:"rank" validate:"gte=1"`
}

// SearchFilters narrow a similarity search. Archived documents are excluded
// unless IncludeArchived is set.
type SearchFilters struct {
	Type            string     `json:"type,omitempty"`
	Jurisdiction    string     `json:"jurisdiction,omitempty"`
	PropertyType    string     `json:"propertyType,omitempty"`
	CreatedFrom     *time.Time `json:"createdFrom,omitempty"`
	CreatedUntil    *time.Time `json:"createdUntil,omitempty"`
	IncludeArchived bool       `json:"includeArchived,omitempty"`
}

// SearchOptions left unset fall back to the retriever defaults. A MinScore of 0
// keeps every candidate.
type SearchOptions struct {
	Limit    int      `json:"limit,omitempty" validate:"omitempty,gte=1,lte=50"`
	MinScore *float64 `json:"minScore,omitempty" validate:"omitempty,gte=0,lte=1"`
}

type SearchDocumentRequest struct {
	Query   string        `json:"query" validate:"required"`
	Filters SearchFilters `json:"filters"`
	Options SearchOptions `json:"options"`
}

type SearchHistoryResponse struct {
	Queries []string `json:"queries"`
}

type ProcessDocumentMessage struct {
	Document DocumentHandle  `json:"document"`
	Options  WorkflowOptions `json:"options"`
}

type EnqueueDocumentResponse struct {
	MessageId string `json:"messageId"`
}
