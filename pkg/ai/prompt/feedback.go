package prompt

import (
	"fmt"
	"strings"

	"contract-workflow-be/internal/dto"
)

func AnalyzeFeedback(feedback dto.FeedbackData) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("Review user feedback about a generated real estate contract and turn it into concrete improvements for the contract generator.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<feedback>\n")
	prompt.WriteString(fmt.Sprintf("Contract: %s\n", feedback.ContractId))
	prompt.WriteString(fmt.Sprintf("Overall rating: %d/5\n", feedback.Rating))
	prompt.WriteString(fmt.Sprintf("Clarity: %d/5\n", feedback.Aspects.Clarity))
	prompt.WriteString(fmt.Sprintf("Completeness: %d/5\n", feedback.Aspects.Completeness))
	prompt.WriteString(fmt.Sprintf("Accuracy: %d/5\n", feedback.Aspects.Accuracy))
	prompt.WriteString(fmt.Sprintf("Legal compliance: %d/5\n", feedback.Aspects.LegalCompliance))
	if feedback.Comments != "" {
		prompt.WriteString(fmt.Sprintf("Comments: %s\n", feedback.Comments))
	}
	for _, s := range feedback.SuggestedImprovements {
		prompt.WriteString(fmt.Sprintf("- Suggested: %s\n", s))
	}
	prompt.WriteString("</feedback>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"improvementAreas\": [{\"area\": \"...\", \"priority\": \"high|medium|low\", \"impact\": \"...\"}],\n")
	prompt.WriteString("  \"suggestions\": [{\"description\": \"...\", \"implementation\": \"...\", \"priority\": \"high|medium|low\"}],\n")
	prompt.WriteString("  \"overallAssessment\": \"...\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
