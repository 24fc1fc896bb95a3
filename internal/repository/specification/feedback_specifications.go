package specification

import "gorm.io/gorm"

type ByContractId struct {
	ContractId string
}

func (s ByContractId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("contract_id = ?", s.ContractId)
}

// NewestSubmittedFirst orders feedback by submission time, latest first.
type NewestSubmittedFirst struct{}

func (s NewestSubmittedFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("submitted_at DESC")
}
