package prompt

import (
	"fmt"
	"strings"

	"contract-workflow-be/internal/dto"
)

// NoSimilarContracts replaces the reference block when retrieval finds nothing.
const NoSimilarContracts = "No similar contracts found."

// FormatSimilarContracts renders matches as numbered reference texts.
func FormatSimilarContracts(matches []dto.SimilarityMatch) string {
	if len(matches) == 0 {
		return NoSimilarContracts
	}

	var sb strings.Builder
	for i, m := range matches {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("Reference %d (similarity %.2f):\n", m.Rank, m.Score))
		sb.WriteString(m.Document.Text)
	}
	return sb.String()
}
