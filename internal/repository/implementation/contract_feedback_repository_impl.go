package implementation

import (
	"context"

	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/mapper"
	"contract-workflow-be/internal/model"
	"contract-workflow-be/internal/repository/contract"
	"contract-workflow-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractFeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContractFeedbackMapper
}

func NewContractFeedbackRepository(db *gorm.DB) contract.ContractFeedbackRepository {
	return &ContractFeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewContractFeedbackMapper(),
	}
}

func (r *ContractFeedbackRepositoryImpl) CreateIfAbsent(ctx context.Context, feedback *entity.ContractFeedback) (bool, error) {
	m := r.mapper.ToModel(feedback)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		*feedback = *r.mapper.ToEntity(m)
	}
	return result.RowsAffected > 0, nil
}

func (r *ContractFeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContractFeedback, error) {
	var models []*model.ContractFeedback
	query := specification.All(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.ContractFeedback, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
