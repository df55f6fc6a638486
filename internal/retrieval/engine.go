package retrieval

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/occulog/occulog/internal/cache"
	"github.com/occulog/occulog/internal/models"
	"github.com/occulog/occulog/internal/providers/llm"
	"github.com/occulog/occulog/internal/query"
	"github.com/occulog/occulog/internal/vector"
)

// ErrorAnswerPrefix starts every degraded answer produced when something
// inside a query fails. The serving loop itself never sees the failure.
const ErrorAnswerPrefix = "Error processing query: "

// Result is the outcome of one answered question. Critique and
// RewrittenQuery are only set in assist mode.
type Result struct {
	Answer         string `json:"answer"`
	Critique       string `json:"critique,omitempty"`
	RewrittenQuery string `json:"rewritten_query,omitempty"`
}

// Options tune the engine; zero values fall back to defaults.
type Options struct {
	TopK         int
	ContextLimit int
	MemorySize   int
	Resolver     query.DateResolver
	Cache        cache.Cache
	CacheTTL     time.Duration
}

// Engine owns the corpus and the similarity-index handle and decides, per
// query, between exact structured filtering and semantic fallback. It is
// constructed explicitly and injected into the request layer; there is no
// package-level state.
type Engine struct {
	corpus   []models.Record
	searcher *vector.Searcher
	provider llm.Provider
	memory   *models.ConversationMemory
	log      *logrus.Logger

	resolve      query.DateResolver
	topK         int
	contextLimit int
	answers      cache.Cache
	cacheTTL     time.Duration
}

func NewEngine(corpus []models.Record, searcher *vector.Searcher, provider llm.Provider, log *logrus.Logger, opts Options) *Engine {
	if opts.TopK <= 0 {
		opts.TopK = vector.DefaultTopK
	}
	if opts.ContextLimit <= 0 {
		opts.ContextLimit = 5
	}
	if opts.Resolver == nil {
		opts.Resolver = query.ResolveDate
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Engine{
		corpus:       corpus,
		searcher:     searcher,
		provider:     provider,
		memory:       models.NewConversationMemory(opts.MemorySize),
		log:          log,
		resolve:      opts.Resolver,
		topK:         opts.TopK,
		contextLimit: opts.ContextLimit,
		answers:      opts.Cache,
		cacheTTL:     opts.CacheTTL,
	}
}

// Retrieve runs the hybrid retrieval path for a normalized query: exact
// structured match first, semantic fallback otherwise. A structured match
// always wins; semantic search does not run at all in that case. A
// non-empty filter set that matches nothing still falls through to
// semantic search.
func (e *Engine) Retrieve(ctx context.Context, normalized string) ([]string, error) {
	filters := query.ExtractFilters(normalized)
	if !filters.Empty() {
		matched := Evaluate(e.corpus, filters)
		if len(matched) > 0 {
			e.log.WithFields(logrus.Fields{
				"filters": filters.Keys(),
				"matched": len(matched),
			}).Debug("structured filter hit")

			entries := make([]string, 0, len(matched))
			for _, r := range matched {
				entries = append(entries, r.ProjectedText())
			}
			return entries, nil
		}
	}
	return e.searcher.Search(ctx, normalized, e.topK)
}

// Answer handles one question in plain mode: normalize, retrieve, bound
// the context, generate. Every failure inside degrades to an error answer
// string; Answer never panics the serving loop and never returns an error.
func (e *Engine) Answer(ctx context.Context, question, model string) Result {
	normalized := query.Normalize(question, e.resolve)

	if e.answers != nil {
		key := cache.AnswerKey(model, normalized)
		if cached, hit, err := e.answers.Get(ctx, key); err == nil && hit {
			return Result{Answer: cached}
		}
	}

	entries, err := e.Retrieve(ctx, normalized)
	if err != nil {
		return e.degrade("retrieve", err)
	}
	if len(entries) == 0 {
		return Result{Answer: NoInfoAnswer}
	}

	prompt := BuildPrompt(e.bound(entries), normalized, nil)
	answer, err := e.provider.Generate(ctx, prompt, model)
	if err != nil {
		return e.degrade("generate", err)
	}

	if e.answers != nil {
		key := cache.AnswerKey(model, normalized)
		if err := e.answers.Set(ctx, key, answer, e.cacheTTL); err != nil {
			e.log.WithError(err).Warn("answer cache write failed")
		}
	}
	return Result{Answer: answer}
}

// AnswerAssist handles one question in assist mode: the query is rewritten
// for clarity before retrieval, the conversation-memory window rides along
// in the prompt, and the answer is self-critiqued afterwards.
func (e *Engine) AnswerAssist(ctx context.Context, question, model string) Result {
	normalized := query.Normalize(question, e.resolve)

	rewritten, err := e.provider.Generate(ctx, `Rewrite this for better clarity: "`+normalized+`"`, model)
	if err != nil || rewritten == "" {
		// rewrite is best-effort; retrieval proceeds on the normalized query
		if err != nil {
			e.log.WithError(err).Warn("query rewrite failed")
		}
		rewritten = normalized
	}

	entries, err := e.Retrieve(ctx, rewritten)
	if err != nil {
		return e.degrade("retrieve", err)
	}
	if len(entries) == 0 {
		return Result{Answer: NoInfoAnswer, RewrittenQuery: rewritten}
	}

	prompt := BuildPrompt(e.bound(entries), rewritten, e.memory.Window())
	answer, err := e.provider.Generate(ctx, prompt, model)
	if err != nil {
		return e.degrade("generate", err)
	}

	e.memory.Append(question, answer)

	critique, err := e.provider.Generate(ctx, "Critique the following answer:\n"+answer, model)
	if err != nil {
		e.log.WithError(err).Warn("self-critique failed")
		critique = ""
	}

	return Result{Answer: answer, Critique: critique, RewrittenQuery: rewritten}
}

// Stream runs retrieval and streams the generated answer in chunks. The
// no-information sentinel and degraded errors arrive as a single chunk.
func (e *Engine) Stream(ctx context.Context, question, model string) (<-chan string, <-chan error) {
	normalized := query.Normalize(question, e.resolve)

	entries, err := e.Retrieve(ctx, normalized)
	if err != nil {
		return oneChunk(e.degrade("retrieve", err).Answer)
	}
	if len(entries) == 0 {
		return oneChunk(NoInfoAnswer)
	}

	prompt := BuildPrompt(e.bound(entries), normalized, nil)
	return e.provider.StreamAnswer(ctx, prompt, model)
}

// bound caps the context handed to generation, keeping prompt size under
// control even when a structured filter matches many records.
func (e *Engine) bound(entries []string) []string {
	if len(entries) > e.contextLimit {
		return entries[:e.contextLimit]
	}
	return entries
}

func (e *Engine) degrade(stage string, err error) Result {
	e.log.WithError(err).WithField("stage", stage).Error("query degraded to error answer")
	return Result{Answer: ErrorAnswerPrefix + err.Error()}
}

func oneChunk(text string) (<-chan string, <-chan error) {
	out := make(chan string, 1)
	errs := make(chan error, 1)
	out <- text
	close(out)
	close(errs)
	return out, errs
}
