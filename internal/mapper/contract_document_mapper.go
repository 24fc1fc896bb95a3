package mapper

import (
	"time"

	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ContractDocumentMapper struct{}

func NewContractDocumentMapper() *ContractDocumentMapper {
	return &ContractDocumentMapper{}
}

func (m *ContractDocumentMapper) ToEntity(d *model.ContractDocument) *entity.ContractDocument {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.ContractDocument{
		Id:        d.Id,
		Content:   d.Content,
		Metadata:  map[string]interface{}(d.Metadata),
		Embedding: d.EmbeddingValue.Slice(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ContractDocumentMapper) ToModel(d *entity.ContractDocument) *model.ContractDocument {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	metadata := datatypes.JSONMap(d.Metadata)
	if metadata == nil {
		metadata = datatypes.JSONMap{}
	}

	return &model.ContractDocument{
		Id:             d.Id,
		Content:        d.Content,
		Metadata:       metadata,
		EmbeddingValue: pgvector.NewVector(d.Embedding),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}
