package vector

import "context"

// Hit is one ranked search result: a position into the parallel document
// sequence plus its similarity score.
type Hit struct {
	Position int
	Score    float32
}

// Index is a nearest-neighbor index over unit-normalized vectors in
// inner-product space. Implementations are read-only after load; no
// locking is required around Search.
type Index interface {
	Search(ctx context.Context, query []float32, k int) ([]Hit, error)
	Size() int
}

// Backend owns the persistence lifecycle of an index and its parallel
// document sequence. The two artifacts are always written together and
// never updated independently; there is no append path, only full rebuild.
type Backend interface {
	Exists(ctx context.Context) (bool, error)
	Build(ctx context.Context, vectors [][]float32, docs []string) error
	Load(ctx context.Context) (Index, []string, error)
}
