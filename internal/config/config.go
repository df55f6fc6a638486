package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is read once at startup; everything downstream receives values, not env.
type Config struct {
	Port string

	// Corpus and index artifacts. Index and docstore are rebuilt together,
	// never independently.
	CorpusPath   string
	IndexPath    string
	DocStorePath string

	// Similarity index backend: "flat" (file-backed, default) or "pgvector".
	VectorBackend string
	PostgresURI   string

	EmbeddingEndpoint string
	EmbeddingModel    string
	EmbeddingBatch    int

	// Generation provider: "ollama" (default) or "vertex".
	LLMProvider    string
	OllamaAddr     string
	DefaultModel   string
	VertexProject  string
	VertexLocation string

	TopK         int
	ContextLimit int
	MemorySize   int

	RedisAddr      string
	AnswerCacheTTL time.Duration

	AuthJWTSecret string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		CorpusPath:        getenv("CORPUS_PATH", "data.json"),
		IndexPath:         getenv("INDEX_PATH", "vector.index"),
		DocStorePath:      getenv("DOC_STORE_PATH", "data_store.json"),
		VectorBackend:     getenv("VECTOR_BACKEND", "flat"),
		PostgresURI:       os.Getenv("POSTGRES_URI"),
		EmbeddingEndpoint: os.Getenv("EMBEDDING_ENDPOINT"),
		EmbeddingModel:    getenv("EMBEDDING_MODEL", "all-MiniLM-L6-v2"),
		EmbeddingBatch:    getenvInt("EMBEDDING_BATCH", 32),
		LLMProvider:       getenv("LLM_PROVIDER", "ollama"),
		OllamaAddr:        getenv("OLLAMA_ADDR", "http://127.0.0.1:11434"),
		DefaultModel:      getenv("DEFAULT_MODEL", "llama3:8b"),
		VertexProject:     os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:    getenv("VERTEX_LOCATION", "us-central1"),
		TopK:              getenvInt("SEARCH_TOP_K", 10),
		ContextLimit:      getenvInt("CONTEXT_LIMIT", 5),
		MemorySize:        getenvInt("MEMORY_SIZE", 5),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		AnswerCacheTTL:    getenvDuration("ANSWER_CACHE_TTL", 10*time.Minute),
		AuthJWTSecret:     os.Getenv("AUTH_JWT_SECRET"),
	}

	if cfg.EmbeddingEndpoint == "" {
		return nil, errors.New("EMBEDDING_ENDPOINT environment variable is not set")
	}
	if cfg.VectorBackend == "pgvector" && cfg.PostgresURI == "" {
		return nil, errors.New("VECTOR_BACKEND=pgvector requires POSTGRES_URI")
	}
	if cfg.LLMProvider == "vertex" && cfg.VertexProject == "" {
		return nil, errors.New("LLM_PROVIDER=vertex requires VERTEX_PROJECT_ID")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
