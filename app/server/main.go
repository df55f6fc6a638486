package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/occulog/occulog/internal/api/handlers"
	"github.com/occulog/occulog/internal/api/routes"
	"github.com/occulog/occulog/internal/cache"
	"github.com/occulog/occulog/internal/config"
	"github.com/occulog/occulog/internal/corpus"
	"github.com/occulog/occulog/internal/logger"
	"github.com/occulog/occulog/internal/providers/embedding"
	"github.com/occulog/occulog/internal/providers/llm"
	"github.com/occulog/occulog/internal/retrieval"
	"github.com/occulog/occulog/internal/vector"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	l := logger.New()
	ctx := context.Background()

	// Corpus is loaded once and read-only afterwards.
	records, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		log.Fatalf("corpus load error: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("corpus %s is empty", cfg.CorpusPath)
	}
	l.WithField("records", len(records)).Info("corpus loaded")

	embedder := embedding.NewClient(cfg.EmbeddingEndpoint, cfg.EmbeddingModel, cfg.EmbeddingBatch)

	var backend vector.Backend
	switch cfg.VectorBackend {
	case "pgvector":
		db, err := config.NewPostgres(cfg.PostgresURI)
		if err != nil {
			log.Fatalf("PostgreSQL init error: %v", err)
		}
		backend = &vector.PGBackend{DB: db}
	default:
		backend = &vector.FlatBackend{
			IndexPath:    cfg.IndexPath,
			DocStorePath: cfg.DocStorePath,
		}
	}

	// Build-if-absent and load are separate, explicit steps. Integrity
	// failures here halt startup; nothing else does.
	indexer := vector.NewIndexer(backend, embedder, l)
	if err := indexer.EnsureIndex(ctx, records); err != nil {
		log.Fatalf("index build error: %v", err)
	}
	index, docs, err := indexer.Load(ctx)
	if err != nil {
		log.Fatalf("index load error: %v", err)
	}
	l.WithField("vectors", index.Size()).Info("similarity index ready")

	searcher := vector.NewSearcher(index, docs, embedder)

	var provider llm.Provider
	switch cfg.LLMProvider {
	case "vertex":
		provider, err = llm.NewVertexGemini(ctx, cfg.VertexProject, cfg.VertexLocation, cfg.DefaultModel)
		if err != nil {
			log.Fatalf("Vertex init error: %v", err)
		}
	default:
		provider = llm.NewOllama(cfg.OllamaAddr, cfg.DefaultModel)
	}
	defer provider.Close()

	var answers cache.Cache
	if cfg.RedisAddr != "" {
		rdb, err := config.NewRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		answers = cache.NewRedisCache(rdb)
		l.Info("answer cache enabled")
	}

	engine := retrieval.NewEngine(records, searcher, provider, l, retrieval.Options{
		TopK:         cfg.TopK,
		ContextLimit: cfg.ContextLimit,
		MemorySize:   cfg.MemorySize,
		Cache:        answers,
		CacheTTL:     cfg.AnswerCacheTTL,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		Query:      handlers.NewQueryHandler(engine),
		Health:     handlers.NewHealthHandler(len(records), index.Size()),
		WS:         handlers.NewWSHandler(engine),
		Logger:     l,
		AuthSecret: cfg.AuthJWTSecret,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
