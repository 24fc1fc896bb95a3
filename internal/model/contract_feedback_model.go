package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ContractFeedback struct {
	Id                    uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	ContractId            string                      `gorm:"type:varchar(255);not null;index"`
	Rating                int                         `gorm:"not null"`
	Clarity               int                         `gorm:"not null"`
	Completeness          int                         `gorm:"not null"`
	Accuracy              int                         `gorm:"not null"`
	LegalCompliance       int                         `gorm:"not null"`
	Comments              string                      `gorm:"type:text"`
	SuggestedImprovements datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	SubmittedAt           time.Time                   `gorm:"not null"`
	CreatedAt             time.Time                   `gorm:"autoCreateTime"`
}

func (ContractFeedback) TableName() string {
	return "contract_feedback"
}
