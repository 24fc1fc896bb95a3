package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Workflow  WorkflowConfig
	Retrieval RetrievalConfig
	Splitter  SplitterConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IngestTopic        string
	DocumentRoot       string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "ollama", "gemini", "huggingface"
	LLMModel          string
	LLMBaseURL        string
	LLMApiKey         string
	Temperature       float64
	MaxTokens         int
	EmbeddingProvider string // "ollama", "gemini", "jina"
	EmbeddingModel    string
	EmbeddingApiKey   string
	OllamaBaseURL     string
	GoogleGeminiKey   string
}

type WorkflowConfig struct {
	IncludeSimilarContracts bool
	ValidateResults         bool
	MaxRetries              int
	StepTimeout             time.Duration
	RetryInitialInterval    time.Duration
	RetryMaxInterval        time.Duration
}

type RetrievalConfig struct {
	Limit         int
	MinScore      float64
	EmbedCacheTTL time.Duration
	HistoryKey    string
	HistoryLimit  int
}

type SplitterConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IngestTopic:        getEnv("INGEST_DOCUMENT_TOPIC_NAME", "PROCESS_CONTRACT_DOCUMENT"),
			DocumentRoot:       getEnv("DOCUMENT_ROOT", "./documents"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMApiKey:         getEnv("LLM_API_KEY", ""),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 4096),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingApiKey:   getEnv("EMBEDDING_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GoogleGeminiKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Workflow: WorkflowConfig{
			IncludeSimilarContracts: getEnvAsBool("WORKFLOW_INCLUDE_SIMILAR_CONTRACTS", true),
			ValidateResults:         getEnvAsBool("WORKFLOW_VALIDATE_RESULTS", true),
			MaxRetries:              getEnvAsInt("WORKFLOW_MAX_RETRIES", 3),
			StepTimeout:             getEnvAsDuration("WORKFLOW_STEP_TIMEOUT", 2*time.Minute),
			RetryInitialInterval:    getEnvAsDuration("WORKFLOW_RETRY_INITIAL_INTERVAL", 500*time.Millisecond),
			RetryMaxInterval:        getEnvAsDuration("WORKFLOW_RETRY_MAX_INTERVAL", 10*time.Second),
		},
		Retrieval: RetrievalConfig{
			Limit:         getEnvAsInt("RETRIEVAL_LIMIT", 5),
			MinScore:      getEnvAsFloat("RETRIEVAL_MIN_SCORE", 0.7),
			EmbedCacheTTL: getEnvAsDuration("RETRIEVAL_EMBED_CACHE_TTL", 10*time.Minute),
			HistoryKey:    getEnv("SEARCH_HISTORY_KEY", "contract:search:history"),
			HistoryLimit:  getEnvAsInt("SEARCH_HISTORY_LIMIT", 100),
		},
		Splitter: SplitterConfig{
			ChunkSize:    getEnvAsInt("SPLITTER_CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("SPLITTER_CHUNK_OVERLAP", 200),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
