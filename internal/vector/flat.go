package vector

import (
	"context"
	"fmt"
	"sort"
)

// FlatIndex is an exact inner-product index: every query scores every
// stored vector. Exact search is deterministic, which keeps repeated
// queries over an unchanged corpus stable.
type FlatIndex struct {
	dim     int
	vectors [][]float32
}

func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{dim: dim}
}

func (ix *FlatIndex) Dim() int  { return ix.dim }
func (ix *FlatIndex) Size() int { return len(ix.vectors) }

func (ix *FlatIndex) Add(vectors ...[]float32) error {
	for _, v := range vectors {
		if len(v) != ix.dim {
			return fmt.Errorf("vector dimension %d does not match index dimension %d", len(v), ix.dim)
		}
		ix.vectors = append(ix.vectors, v)
	}
	return nil
}

func (ix *FlatIndex) Search(_ context.Context, query []float32, k int) ([]Hit, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(query), ix.dim)
	}
	if k <= 0 {
		return nil, nil
	}
	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	hits := make([]Hit, 0, len(ix.vectors))
	for pos, v := range ix.vectors {
		hits = append(hits, Hit{Position: pos, Score: dot(query, v)})
	}
	// stable on position so equal scores keep corpus order
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits[:k], nil
}

func dot(a, b []float32) float32 {
	var s float32
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
