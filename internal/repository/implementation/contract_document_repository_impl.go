package implementation

import (
	"context"
	"errors"
	"time"

	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/mapper"
	"contract-workflow-be/internal/model"
	"contract-workflow-be/internal/repository/contract"
	"contract-workflow-be/internal/repository/specification"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

type ContractDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContractDocumentMapper
}

func NewContractDocumentRepository(db *gorm.DB) contract.ContractDocumentRepository {
	return &ContractDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewContractDocumentMapper(),
	}
}

func (r *ContractDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.ContractDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return contract.ErrDocumentExists
		}
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *ContractDocumentRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContractDocument{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrDocumentNotFound
	}
	return nil
}

func (r *ContractDocumentRepositoryImpl) Archive(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&model.ContractDocument{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"metadata":   gorm.Expr(`jsonb_set(COALESCE(metadata, '{}'::jsonb), '{archived}', 'true'::jsonb, true)`),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrDocumentNotFound
	}
	return nil
}

func (r *ContractDocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContractDocument, error) {
	var m model.ContractDocument
	query := specification.All(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// SearchSimilarWithScore ranks by pgvector cosine distance. No score cutoff is
// applied here; callers filter after the limit.
func (r *ContractDocumentRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*contract.ScoredContractDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	type result struct {
		model.ContractDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("contract_documents").
		Select("contract_documents.*, 1 - (embedding_value <=> ?) as similarity", queryVector)
	query = specification.All(query, specs...)

	err := query.
		Order(clause.OrderBy{Expression: clause.Expr{SQL: "embedding_value <=> ?", Vars: []interface{}{queryVector}}}).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredContractDocument, len(results))
	for i := range results {
		scored[i] = &contract.ScoredContractDocument{
			Document:   r.mapper.ToEntity(&results[i].ContractDocument),
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
