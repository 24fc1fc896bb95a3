package specification

import (
	"time"

	"gorm.io/gorm"
)

// NotArchived keeps documents whose metadata has no truthy archived flag.
type NotArchived struct{}

func (s NotArchived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("COALESCE((metadata->>'archived')::boolean, false) = false")
}

// ByMetadataValue matches one top-level metadata key exactly.
type ByMetadataValue struct {
	Key   string
	Value string
}

func (s ByMetadataValue) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metadata->>? = ?", s.Key, s.Value)
}

// CreatedFrom and CreatedUntil bound metadata.createdAt inclusively.
type CreatedFrom struct {
	From time.Time
}

func (s CreatedFrom) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(metadata->>'createdAt')::timestamptz >= ?", s.From)
}

type CreatedUntil struct {
	Until time.Time
}

func (s CreatedUntil) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(metadata->>'createdAt')::timestamptz <= ?", s.Until)
}

type ByDocumentId struct {
	Id string
}

func (s ByDocumentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.Id)
}
