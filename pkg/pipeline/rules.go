package pipeline

import (
	"fmt"
	"strings"

	"contract-workflow-be/internal/dto"
)

const (
	RuleRequiredClauses = "required_clauses"
	RuleHighRiskReview  = "high_risk_review"
)

// RequiredClauseTypes must all be present for required_clauses to pass.
var RequiredClauseTypes = []dto.ClauseType{
	dto.ClausePurchasePrice,
	dto.ClauseClosingDate,
	dto.ClauseContingencies,
}

// EvaluateRules runs the local rule set over extracted clauses. It never calls
// the language model.
func EvaluateRules(clauses []dto.Clause) []dto.ValidationRuleResult {
	return []dto.ValidationRuleResult{
		requiredClauses(clauses),
		highRiskReview(clauses),
	}
}

func requiredClauses(clauses []dto.Clause) dto.ValidationRuleResult {
	present := make(map[dto.ClauseType]bool, len(clauses))
	for _, c := range clauses {
		present[c.Type] = true
	}

	var missing []string
	for _, t := range RequiredClauseTypes {
		if !present[t] {
			missing = append(missing, string(t))
		}
	}

	if len(missing) > 0 {
		return dto.ValidationRuleResult{
			Rule:    RuleRequiredClauses,
			Passed:  false,
			Details: "Missing required clauses: " + strings.Join(missing, ", "),
		}
	}
	return dto.ValidationRuleResult{
		Rule:    RuleRequiredClauses,
		Passed:  true,
		Details: "All required clauses present",
	}
}

func highRiskReview(clauses []dto.Clause) dto.ValidationRuleResult {
	count := 0
	for _, c := range clauses {
		if c.RiskLevel == dto.RiskHigh {
			count++
		}
	}

	if count > 0 {
		return dto.ValidationRuleResult{
			Rule:    RuleHighRiskReview,
			Passed:  false,
			Details: fmt.Sprintf("%d high-risk clause(s) require review", count),
		}
	}
	return dto.ValidationRuleResult{
		Rule:    RuleHighRiskReview,
		Passed:  true,
		Details: "No high-risk clauses found",
	}
}
