package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/internal/repository/contract"
	"contract-workflow-be/internal/repository/specification"
	"contract-workflow-be/pkg/embedding"
	"contract-workflow-be/pkg/schema"
)

// ErrMalformedMatch aborts a search when a candidate fails its shape check.
var ErrMalformedMatch = errors.New("malformed similarity match")

// DocumentSearcher is the vector query the retriever runs against.
type DocumentSearcher interface {
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, specs ...specification.Specification) ([]*contract.ScoredContractDocument, error)
}

type QueryRecorder interface {
	Record(ctx context.Context, query string)
}

// VectorCache stores query embeddings by task type and text.
type VectorCache interface {
	Get(taskType, text string) ([]float32, bool)
	Save(taskType, text string, vector []float32)
}

type Config struct {
	Limit       int
	MinScore    float64
	CallTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Limit:       5,
		MinScore:    0.7,
		CallTimeout: 30 * time.Second,
	}
}

type Retriever struct {
	searcher DocumentSearcher
	embedder embedding.EmbeddingProvider
	cache    VectorCache
	history  QueryRecorder
	logger   logger.ILogger
	config   Config
}

// NewRetriever builds a retriever. cache and history may be nil.
func NewRetriever(
	searcher DocumentSearcher,
	embedder embedding.EmbeddingProvider,
	cache VectorCache,
	history QueryRecorder,
	log logger.ILogger,
	config Config,
) *Retriever {
	defaults := DefaultConfig()
	if config.Limit <= 0 {
		config.Limit = defaults.Limit
	}
	if config.MinScore <= 0 {
		config.MinScore = defaults.MinScore
	}

	return &Retriever{
		searcher: searcher,
		embedder: embedder,
		cache:    cache,
		history:  history,
		logger:   log,
		config:   config,
	}
}

// Search returns documents near query, best first. The limit bounds the raw
// candidates, so fewer than limit matches may survive the score cutoff.
func (r *Retriever) Search(ctx context.Context, query string, filters dto.SearchFilters, options dto.SearchOptions) ([]dto.SimilarityMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, schema.NewError("SearchQuery", "query", "required", "query is required")
	}

	limit := options.Limit
	if limit <= 0 {
		limit = r.config.Limit
	}
	minScore := r.config.MinScore
	if options.MinScore != nil {
		minScore = *options.MinScore
	}

	vector, err := r.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates, err := r.runQuery(ctx, vector, limit, FilterSpecs(filters))
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	matches := make([]dto.SimilarityMatch, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || c.Document == nil {
			return nil, fmt.Errorf("%w: empty candidate", ErrMalformedMatch)
		}
		if c.Similarity < minScore {
			continue
		}
		if !filters.IncludeArchived && isArchived(c.Document.Metadata) {
			continue
		}
		matches = append(matches, dto.SimilarityMatch{
			Document: dto.SimilarDocument{
				Id:       c.Document.Id,
				Text:     c.Document.Content,
				Metadata: c.Document.Metadata,
			},
			Score: math.Min(c.Similarity, 1),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	for i := range matches {
		matches[i].Rank = i + 1
		if err := schema.Validate("SimilarityMatch", &matches[i]); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedMatch, err.Error())
		}
	}

	r.logger.Debug("SIMILARITY_SEARCH", "Search completed", map[string]interface{}{
		"query":      query,
		"candidates": len(candidates),
		"matches":    len(matches),
		"min_score":  minScore,
	})

	if r.history != nil {
		r.history.Record(ctx, query)
	}

	return matches, nil
}

func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if r.cache != nil {
		if vector, found := r.cache.Get(embedding.TaskRetrievalQuery, query); found {
			return vector, nil
		}
	}

	callCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.embedder.Generate(callCtx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	if r.cache != nil {
		r.cache.Save(embedding.TaskRetrievalQuery, query, res.Embedding.Values)
	}
	return res.Embedding.Values, nil
}

func (r *Retriever) runQuery(ctx context.Context, vector []float32, limit int, specs []specification.Specification) ([]*contract.ScoredContractDocument, error) {
	callCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.searcher.SearchSimilarWithScore(callCtx, vector, limit, specs...)
}

func (r *Retriever) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.config.CallTimeout > 0 {
		return context.WithTimeout(ctx, r.config.CallTimeout)
	}
	return context.WithCancel(ctx)
}

func isArchived(metadata map[string]interface{}) bool {
	switch v := metadata["archived"].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}
