package vector

import (
	"context"

	"github.com/occulog/occulog/internal/providers/embedding"
	"github.com/occulog/occulog/internal/utils"
)

// DefaultTopK bounds semantic results when the caller does not say.
const DefaultTopK = 10

// Searcher embeds a query and retrieves its nearest documents. The query
// goes through the same embedding provider as the index build; that shared
// path is what keeps build and query vectors comparable.
type Searcher struct {
	index    Index
	docs     []string
	embedder embedding.Provider
}

func NewSearcher(index Index, docs []string, embedder embedding.Provider) *Searcher {
	return &Searcher{index: index, docs: docs, embedder: embedder}
}

func (s *Searcher) CorpusSize() int { return len(s.docs) }

// Search returns up to min(topK, corpus size) documents by descending
// similarity. Duplicate positions from the index are dropped while
// preserving first-seen rank order, so near-duplicate content is never
// double-counted.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]string, error) {
	const op = "Searcher.Search"

	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > len(s.docs) {
		topK = len(s.docs)
	}
	if topK == 0 {
		return nil, nil
	}

	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to embed query", err)
	}
	if len(vecs) == 0 {
		return nil, utils.E(utils.CodeUnavailable, op, "embedding provider returned no vector", nil)
	}

	hits, err := s.index.Search(ctx, vecs[0], topK)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "index search failed", err)
	}

	seen := make(map[int]struct{}, len(hits))
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.Position < 0 || h.Position >= len(s.docs) {
			continue
		}
		if _, dup := seen[h.Position]; dup {
			continue
		}
		seen[h.Position] = struct{}{}
		out = append(out, s.docs[h.Position])
	}
	return out, nil
}
