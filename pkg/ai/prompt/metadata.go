package prompt

import "strings"

// ExtractMetadata reads identifying details from the head of a contract.
func ExtractMetadata(text string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("Extract the identifying metadata of the real estate contract excerpt below.\n")
	prompt.WriteString("Only report what the excerpt states. Leave optional fields empty when absent.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<contract_excerpt>\n")
	prompt.WriteString(text)
	prompt.WriteString("\n</contract_excerpt>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"title\": \"Contract title\",\n")
	prompt.WriteString("  \"type\": \"purchase_agreement|lease|listing_agreement|other\",\n")
	prompt.WriteString("  \"parties\": [{\"name\": \"...\", \"role\": \"buyer|seller|agent|landlord|tenant\"}],\n")
	prompt.WriteString("  \"propertyDetails\": {\"address\": \"...\", \"price\": \"...\", \"propertyType\": \"...\"},\n")
	prompt.WriteString("  \"dates\": {\"effectiveDate\": \"\", \"closingDate\": \"\", \"expirationDate\": \"\"},\n")
	prompt.WriteString("  \"keyTerms\": [\"...\"]\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
