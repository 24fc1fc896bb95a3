package bootstrap

import (
	"context"
	"fmt"

	"contract-workflow-be/internal/config"
	"contract-workflow-be/internal/controller"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/internal/repository/implementation"
	"contract-workflow-be/internal/repository/memory"
	"contract-workflow-be/internal/repository/unitofwork"
	"contract-workflow-be/internal/service"
	"contract-workflow-be/pkg/ai/transform"
	"contract-workflow-be/pkg/embedding"
	"contract-workflow-be/pkg/embedding/jina"
	"contract-workflow-be/pkg/llm"
	"contract-workflow-be/pkg/llm/factory"
	"contract-workflow-be/pkg/loader"
	pktNats "contract-workflow-be/pkg/nats"
	"contract-workflow-be/pkg/pipeline"
	"contract-workflow-be/pkg/rag/history"
	"contract-workflow-be/pkg/rag/search"
	"contract-workflow-be/pkg/utils"
	"contract-workflow-be/pkg/workflow"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WorkflowController controller.IWorkflowController
	DocumentController controller.IDocumentController
	FeedbackController controller.IFeedbackController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WorkflowService service.IWorkflowService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Model Providers
	embeddingProvider, err := newEmbeddingProvider(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	sysLogger.Info("BOOTSTRAP", "Embedding provider ready", map[string]interface{}{
		"provider": cfg.Ai.EmbeddingProvider,
		"model":    cfg.Ai.EmbeddingModel,
	})

	baseURL := cfg.Ai.LLMBaseURL
	if baseURL == "" && cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	apiKey := cfg.Ai.LLMApiKey
	if apiKey == "" && cfg.Ai.LLMProvider == "gemini" {
		apiKey = cfg.Ai.GoogleGeminiKey
	}
	llmProvider, err := factory.NewLLMProvider(ctx, cfg.Ai.LLMProvider, cfg.Ai.LLMModel, baseURL, apiKey)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	transformer := transform.New(
		llmProvider,
		cfg.Workflow.StepTimeout,
		llm.WithTemperature(cfg.Ai.Temperature),
		llm.WithMaxTokens(cfg.Ai.MaxTokens),
		llm.WithJSONResponse(),
	)

	// 4. Infrastructure
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher, lifecycle events disabled", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	// 5. Retrieval and Storage
	queryHistory := history.NewRecorder(rdb, cfg.Retrieval.HistoryKey, cfg.Retrieval.HistoryLimit, sysLogger)
	retriever := search.NewRetriever(
		implementation.NewContractDocumentRepository(db),
		embeddingProvider,
		memory.NewEmbeddingCache(cfg.Retrieval.EmbedCacheTTL),
		queryHistory,
		sysLogger,
		search.Config{
			Limit:       cfg.Retrieval.Limit,
			MinScore:    cfg.Retrieval.MinScore,
			CallTimeout: cfg.Workflow.StepTimeout,
		},
	)
	documentStore := service.NewDocumentStoreService(uowFactory, embeddingProvider, sysLogger, cfg.Workflow.StepTimeout)
	feedbackStore := service.NewFeedbackStoreService(uowFactory, sysLogger, cfg.Workflow.StepTimeout)

	// 6. Pipelines
	analyzer := pipeline.NewAnalyzer(retriever, transformer, sysLogger)
	deps := workflow.Dependencies{
		Generator: pipeline.NewGenerator(retriever, transformer, analyzer, sysLogger),
		Documents: pipeline.NewDocumentProcessor(
			loader.NewTextLoader(cfg.App.DocumentRoot),
			utils.NewTextSplitter(cfg.Splitter.ChunkSize, cfg.Splitter.ChunkOverlap),
			transformer,
			documentStore,
			analyzer,
			sysLogger,
		),
		Analyzer: analyzer,
		Feedback: pipeline.NewFeedbackProcessor(feedbackStore, transformer, sysLogger),
		Logger:   sysLogger,
	}
	workflowConfig := workflow.Config{
		Defaults: workflow.Defaults{
			IncludeSimilarContracts: cfg.Workflow.IncludeSimilarContracts,
			ValidateResults:         cfg.Workflow.ValidateResults,
			MaxRetries:              cfg.Workflow.MaxRetries,
		},
		NewBackOff: func() backoff.BackOff {
			return workflow.ExponentialBackOff(cfg.Workflow.RetryInitialInterval, cfg.Workflow.RetryMaxInterval)
		},
	}

	// 7. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	workflowService := service.NewWorkflowService(deps, workflowConfig, publisherService, eventPublisher, sysLogger)
	documentService := service.NewDocumentService(retriever, queryHistory, documentStore)

	c.WorkflowService = workflowService
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.IngestTopic, workflowService, sysLogger)

	// 8. Controllers
	c.WorkflowController = controller.NewWorkflowController(workflowService)
	c.DocumentController = controller.NewDocumentController(documentService)
	c.FeedbackController = controller.NewFeedbackController(feedbackStore)

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newEmbeddingProvider(ctx context.Context, cfg *config.Config) (embedding.EmbeddingProvider, error) {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel), nil
	case "jina":
		return jina.NewJinaProvider(cfg.Ai.EmbeddingApiKey), nil
	case "gemini":
		key := cfg.Ai.EmbeddingApiKey
		if key == "" {
			key = cfg.Ai.GoogleGeminiKey
		}
		provider, err := embedding.NewGeminiProvider(ctx, key, cfg.Ai.EmbeddingModel)
		if err != nil {
			return nil, fmt.Errorf("init gemini embedding: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}
}
