package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"contract-workflow-be/internal/dto"
)

// ExtractClauses asks for an AnalysisResult with empty comparison and validation placeholders.
func ExtractClauses(text, jurisdiction, contractType string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a real estate contract reviewer.\n")
	prompt.WriteString(fmt.Sprintf("Split the contract into typed clauses and assess their risk under %s law.\n", jurisdiction))
	if contractType != "" {
		prompt.WriteString(fmt.Sprintf("The contract is a %s.\n", contractType))
	}
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<contract>\n")
	prompt.WriteString(text)
	prompt.WriteString("\n</contract>\n\n")

	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("- Clause type must be one of: purchase_price, closing_date, contingencies, representations, warranties, termination, governing_law, other\n")
	prompt.WriteString("- riskLevel and overallRisk must be one of: low, medium, high\n")
	prompt.WriteString("- missingRequiredClauses lists required clause types the contract does not contain\n")
	prompt.WriteString("- Leave comparisonResults and validationResults as empty arrays\n")
	prompt.WriteString("</guidelines>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"clauses\": [{\"type\": \"purchase_price\", \"content\": \"...\", \"isRequired\": true, \"riskLevel\": \"low\", \"suggestions\": [\"...\"]}],\n")
	prompt.WriteString("  \"missingRequiredClauses\": [],\n")
	prompt.WriteString("  \"riskAssessment\": {\"overallRisk\": \"low\", \"riskFactors\": [\"...\"]},\n")
	prompt.WriteString("  \"comparisonResults\": [],\n")
	prompt.WriteString("  \"validationResults\": []\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

// CompareClauses asks how the extracted clauses differ from reference contracts.
func CompareClauses(clauses []dto.Clause, references []dto.SimilarityMatch) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("Compare each extracted clause with the matching clauses of the reference contracts.\n")
	prompt.WriteString("Point out terms that are unusual, missing, or less protective than the references.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<extracted_clauses>\n")
	clauseJSON, _ := json.MarshalIndent(clauses, "", "  ")
	prompt.Write(clauseJSON)
	prompt.WriteString("\n</extracted_clauses>\n\n")

	prompt.WriteString("<reference_contracts>\n")
	prompt.WriteString(FormatSimilarContracts(references))
	prompt.WriteString("\n</reference_contracts>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY a valid JSON array:\n")
	prompt.WriteString("[{\"clauseType\": \"purchase_price\", \"finding\": \"...\", \"recommendation\": \"...\"}]\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
