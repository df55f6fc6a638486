package vector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatIndexRanksByInnerProduct(t *testing.T) {
	ix := NewFlatIndex(2)
	require.NoError(t, ix.Add(
		[]float32{1, 0},
		[]float32{0, 1},
		[]float32{0.7071, 0.7071},
	))

	hits, err := ix.Search(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 0, hits[0].Position)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, 1, hits[2].Position)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestFlatIndexClampsK(t *testing.T) {
	ix := NewFlatIndex(2)
	require.NoError(t, ix.Add([]float32{1, 0}, []float32{0, 1}))

	hits, err := ix.Search(context.Background(), []float32{1, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestFlatIndexDimensionMismatch(t *testing.T) {
	ix := NewFlatIndex(3)

	assert.Error(t, ix.Add([]float32{1, 0}))

	_, err := ix.Search(context.Background(), []float32{1, 0}, 1)
	assert.Error(t, err)
}

func TestFlatIndexEqualScoresKeepCorpusOrder(t *testing.T) {
	ix := NewFlatIndex(2)
	require.NoError(t, ix.Add(
		[]float32{0, 1},
		[]float32{0, 1},
		[]float32{0, 1},
	))

	hits, err := ix.Search(context.Background(), []float32{0, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, []int{hits[0].Position, hits[1].Position, hits[2].Position})
}
