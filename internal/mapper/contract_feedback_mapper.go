package mapper

import (
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/entity"
	"contract-workflow-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// feedbackNamespace seeds deterministic feedback ids.
var feedbackNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("contract-workflow/feedback"))

type ContractFeedbackMapper struct{}

func NewContractFeedbackMapper() *ContractFeedbackMapper {
	return &ContractFeedbackMapper{}
}

// FeedbackId is stable for a contract id and submission timestamp, so a
// re-submitted feedback maps to the same row.
func FeedbackId(contractId string, submittedAt time.Time) uuid.UUID {
	return uuid.NewSHA1(feedbackNamespace, []byte(contractId+"|"+submittedAt.UTC().Format(time.RFC3339Nano)))
}

func (m *ContractFeedbackMapper) FromDTO(f *dto.FeedbackData) *entity.ContractFeedback {
	if f == nil {
		return nil
	}

	improvements := f.SuggestedImprovements
	if improvements == nil {
		improvements = []string{}
	}

	return &entity.ContractFeedback{
		Id:                    FeedbackId(f.ContractId, f.Timestamp),
		ContractId:            f.ContractId,
		Rating:                f.Rating,
		Clarity:               f.Aspects.Clarity,
		Completeness:          f.Aspects.Completeness,
		Accuracy:              f.Aspects.Accuracy,
		LegalCompliance:       f.Aspects.LegalCompliance,
		Comments:              f.Comments,
		SuggestedImprovements: improvements,
		SubmittedAt:           f.Timestamp,
	}
}

func (m *ContractFeedbackMapper) ToDTO(f *entity.ContractFeedback) dto.FeedbackData {
	return dto.FeedbackData{
		ContractId: f.ContractId,
		Rating:     f.Rating,
		Aspects: dto.FeedbackAspects{
			Clarity:         f.Clarity,
			Completeness:    f.Completeness,
			Accuracy:        f.Accuracy,
			LegalCompliance: f.LegalCompliance,
		},
		Comments:              f.Comments,
		SuggestedImprovements: f.SuggestedImprovements,
		Timestamp:             f.SubmittedAt,
	}
}

func (m *ContractFeedbackMapper) ToEntity(f *model.ContractFeedback) *entity.ContractFeedback {
	if f == nil {
		return nil
	}

	return &entity.ContractFeedback{
		Id:                    f.Id,
		ContractId:            f.ContractId,
		Rating:                f.Rating,
		Clarity:               f.Clarity,
		Completeness:          f.Completeness,
		Accuracy:              f.Accuracy,
		LegalCompliance:       f.LegalCompliance,
		Comments:              f.Comments,
		SuggestedImprovements: []string(f.SuggestedImprovements),
		SubmittedAt:           f.SubmittedAt,
		CreatedAt:             f.CreatedAt,
	}
}

func (m *ContractFeedbackMapper) ToModel(f *entity.ContractFeedback) *model.ContractFeedback {
	if f == nil {
		return nil
	}

	return &model.ContractFeedback{
		Id:                    f.Id,
		ContractId:            f.ContractId,
		Rating:                f.Rating,
		Clarity:               f.Clarity,
		Completeness:          f.Completeness,
		Accuracy:              f.Accuracy,
		LegalCompliance:       f.LegalCompliance,
		Comments:              f.Comments,
		SuggestedImprovements: datatypes.JSONSlice[string](f.SuggestedImprovements),
		SubmittedAt:           f.SubmittedAt,
		CreatedAt:             f.CreatedAt,
	}
}
