package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContractFeedback struct {
	Id                    uuid.UUID
	ContractId            string
	Rating                int
	Clarity               int
	Completeness          int
	Accuracy              int
	LegalCompliance       int
	Comments              string
	SuggestedImprovements []string
	SubmittedAt           time.Time
	CreatedAt             time.Time
}
