package prompt

import (
	"fmt"
	"strings"

	"contract-workflow-be/internal/dto"
)

// GenerateContract asks for a full ContractOutput draft.
func GenerateContract(input dto.ContractInput, similarContracts string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("You are an experienced real estate attorney drafting a purchase contract.\n")
	prompt.WriteString(fmt.Sprintf("Draft a complete, legally sound contract for the jurisdiction %s using the details below.\n", input.Jurisdiction))
	prompt.WriteString("</task>\n\n")

	writePropertyDetails(&prompt, input.PropertyDetails)
	writeBuyerInfo(&prompt, input.BuyerInfo)
	writeOfferTerms(&prompt, input.OfferTerms)

	prompt.WriteString("<similar_contracts>\n")
	prompt.WriteString(similarContracts)
	prompt.WriteString("\n</similar_contracts>\n\n")

	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("- Include every clause required in the jurisdiction and mark those sections isRequired=true\n")
	prompt.WriteString("- Use the similar contracts only as style and coverage references, never copy party details from them\n")
	prompt.WriteString("- List anything the buyer should double check under warnings\n")
	prompt.WriteString("</guidelines>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"title\": \"Residential Purchase Agreement\",\n")
	prompt.WriteString("  \"sections\": [{\"title\": \"Purchase Price\", \"content\": \"...\", \"isRequired\": true}],\n")
	prompt.WriteString(fmt.Sprintf("  \"metadata\": {\"type\": \"purchase_agreement\", \"jurisdiction\": \"%s\", \"lastUpdated\": \"\", \"version\": \"1.0\"},\n", input.Jurisdiction))
	prompt.WriteString("  \"summary\": \"Plain language summary\",\n")
	prompt.WriteString("  \"warnings\": [\"...\"]\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func writePropertyDetails(prompt *strings.Builder, p dto.PropertyDetails) {
	prompt.WriteString("<property_details>\n")
	prompt.WriteString(fmt.Sprintf("Address: %s\n", p.Address))
	prompt.WriteString(fmt.Sprintf("Property type: %s\n", p.PropertyType))
	prompt.WriteString(fmt.Sprintf("Listed price: %s\n", p.Price))
	if p.Bedrooms != nil {
		prompt.WriteString(fmt.Sprintf("Bedrooms: %d\n", *p.Bedrooms))
	}
	if p.Bathrooms != nil {
		prompt.WriteString(fmt.Sprintf("Bathrooms: %g\n", *p.Bathrooms))
	}
	if p.SquareFootage != nil {
		prompt.WriteString(fmt.Sprintf("Square footage: %d\n", *p.SquareFootage))
	}
	if p.YearBuilt != nil {
		prompt.WriteString(fmt.Sprintf("Year built: %d\n", *p.YearBuilt))
	}
	if p.LotSize != "" {
		prompt.WriteString(fmt.Sprintf("Lot size: %s\n", p.LotSize))
	}
	prompt.WriteString("</property_details>\n\n")
}

func writeBuyerInfo(prompt *strings.Builder, b dto.BuyerInfo) {
	prompt.WriteString("<buyer_info>\n")
	prompt.WriteString(fmt.Sprintf("Name: %s\n", b.Name))
	prompt.WriteString(fmt.Sprintf("Email: %s\n", b.Email))
	if b.Phone != "" {
		prompt.WriteString(fmt.Sprintf("Phone: %s\n", b.Phone))
	}
	if b.CurrentAddress != "" {
		prompt.WriteString(fmt.Sprintf("Current address: %s\n", b.CurrentAddress))
	}
	prompt.WriteString("</buyer_info>\n\n")
}

func writeOfferTerms(prompt *strings.Builder, o dto.OfferTerms) {
	prompt.WriteString("<offer_terms>\n")
	prompt.WriteString(fmt.Sprintf("Offer price: %s\n", o.OfferPrice))
	prompt.WriteString(fmt.Sprintf("Earnest money: %s\n", o.EarnestMoney))
	prompt.WriteString(fmt.Sprintf("Closing date: %s\n", o.ClosingDate))
	prompt.WriteString(fmt.Sprintf("Contingencies: %s\n", strings.Join(o.Contingencies, ", ")))
	if o.AdditionalTerms != "" {
		prompt.WriteString(fmt.Sprintf("Additional terms: %s\n", o.AdditionalTerms))
	}
	prompt.WriteString("</offer_terms>\n\n")
}
