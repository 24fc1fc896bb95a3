package dto

import "encoding/json"

type ClauseType string

const (
	ClausePurchasePrice   ClauseType = "purchase_price"
	ClauseClosingDate     ClauseType = "closing_date"
	ClauseContingencies   ClauseType = "contingencies"
	ClauseRepresentations ClauseType = "representations"
	ClauseWarranties      ClauseType = "warranties"
	ClauseTermination     ClauseType = "termination"
	ClauseGoverningLaw    ClauseType = "governing_law"
	ClauseOther           ClauseType = "other"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Clause struct {
	Type        ClauseType `json:"type" validate:"required,oneof=purchase_price closing_date contingencies representations warranties termination governing_law other"`
	Content     string     `json:"content" validate:"required"`
	IsRequired  bool       `json:"isRequired"`
	RiskLevel   RiskLevel  `json:"riskLevel" validate:"required,oneof=low medium high"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

type RiskAssessment struct {
	OverallRisk RiskLevel `json:"overallRisk" validate:"required,oneof=low medium high"`
	RiskFactors []string  `json:"riskFactors"`
}

type ValidationRuleResult struct {
	Rule    string `json:"rule" validate:"required"`
	Passed  bool   `json:"passed"`
	Details string `json:"details"`
}

// AnalysisResult holds clause extraction output. ComparisonResults is kept as
// raw JSON because the comparison call has no declared shape.
type AnalysisResult struct {
	Clauses                []Clause               `json:"clauses" validate:"dive"`
	MissingRequiredClauses []string               `json:"missingRequiredClauses"`
	RiskAssessment         RiskAssessment         `json:"riskAssessment"`
	ComparisonResults      json.RawMessage        `json:"comparisonResults"`
	ValidationResults      []ValidationRuleResult `json:"validationResults" validate:"dive"`
}
