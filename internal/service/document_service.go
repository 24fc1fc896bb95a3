package service

import (
	"context"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/pkg/schema"
)

type SimilaritySearcher interface {
	Search(ctx context.Context, query string, filters dto.SearchFilters, options dto.SearchOptions) ([]dto.SimilarityMatch, error)
}

type SearchHistory interface {
	Recent(ctx context.Context, limit int) ([]string, error)
}

// IDocumentService is the REST face of the contract corpus.
type IDocumentService interface {
	Search(ctx context.Context, req *dto.SearchDocumentRequest) ([]dto.SimilarityMatch, error)
	History(ctx context.Context, limit int) (*dto.SearchHistoryResponse, error)
	Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.StoreResult, error)
	Archive(ctx context.Context, documentId string) error
	Delete(ctx context.Context, documentId string) error
}

type documentService struct {
	searcher SimilaritySearcher
	history  SearchHistory
	store    IDocumentStoreService
}

func NewDocumentService(searcher SimilaritySearcher, history SearchHistory, store IDocumentStoreService) IDocumentService {
	return &documentService{
		searcher: searcher,
		history:  history,
		store:    store,
	}
}

func (s *documentService) Search(ctx context.Context, req *dto.SearchDocumentRequest) ([]dto.SimilarityMatch, error) {
	matches, err := s.searcher.Search(ctx, req.Query, req.Filters, req.Options)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []dto.SimilarityMatch{}
	}
	return matches, nil
}

func (s *documentService) History(ctx context.Context, limit int) (*dto.SearchHistoryResponse, error) {
	if s.history == nil {
		return &dto.SearchHistoryResponse{Queries: []string{}}, nil
	}

	queries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if queries == nil {
		queries = []string{}
	}
	return &dto.SearchHistoryResponse{Queries: queries}, nil
}

func (s *documentService) Update(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.StoreResult, error) {
	if req.Id == "" {
		return nil, schema.NewError("UpdateDocumentRequest", "id", "required", "id is required")
	}
	return s.store.Update(ctx, req.Id, req.Content, req.Metadata)
}

func (s *documentService) Archive(ctx context.Context, documentId string) error {
	return s.store.Archive(ctx, documentId)
}

func (s *documentService) Delete(ctx context.Context, documentId string) error {
	return s.store.Delete(ctx, documentId)
}
