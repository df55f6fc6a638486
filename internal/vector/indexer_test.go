package vector

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/occulog/occulog/internal/models"
	"github.com/occulog/occulog/internal/providers/embedding"
	"github.com/occulog/occulog/internal/utils"
)

type hashEmbedder struct {
	dim   int
	calls int
}

func (f *hashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		h := fnv.New64a()
		_, _ = h.Write([]byte(text))
		rng := rand.New(rand.NewSource(int64(h.Sum64())))
		v := make([]float32, f.dim)
		for i := range v {
			v[i] = rng.Float32()*2 - 1
		}
		out = append(out, embedding.NormalizeL2(v))
	}
	return out, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func indexRecords() []models.Record {
	return []models.Record{
		{RecordDate: "2025-06-14", LocationCode: "LOC-IN-KALWA", DayOfWeek: "Saturday"},
		{RecordDate: "2025-06-15", LocationCode: "LOC-IN-PUNE", DayOfWeek: "Sunday"},
		{RecordDate: "2025-06-16", LocationCode: "LOC-IN-MUMBAI", DayOfWeek: "Monday"},
	}
}

func tempBackend(t *testing.T) *FlatBackend {
	t.Helper()
	dir := t.TempDir()
	return &FlatBackend{
		IndexPath:    filepath.Join(dir, "vector.index"),
		DocStorePath: filepath.Join(dir, "data_store.json"),
	}
}

func TestEnsureIndexBuildsOnceAndLoadRoundTrips(t *testing.T) {
	b := tempBackend(t)
	emb := &hashEmbedder{dim: 16}
	ix := NewIndexer(b, emb, quietLogger())
	ctx := context.Background()

	require.NoError(t, ix.EnsureIndex(ctx, indexRecords()))
	assert.Equal(t, 1, emb.calls)

	// second call finds the persisted index and does nothing
	require.NoError(t, ix.EnsureIndex(ctx, indexRecords()))
	assert.Equal(t, 1, emb.calls)

	index, docs, err := ix.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, index.Size())
	require.Len(t, docs, 3)
	assert.Equal(t, indexRecords()[0].ProjectedText(), docs[0])
}

func TestEnsureIndexEmptyCorpus(t *testing.T) {
	ix := NewIndexer(tempBackend(t), &hashEmbedder{dim: 16}, quietLogger())

	err := ix.EnsureIndex(context.Background(), nil)
	assert.True(t, utils.IsCode(err, utils.CodeIntegrity))
}

func TestLoadFailsFastOnLengthMismatch(t *testing.T) {
	b := tempBackend(t)
	ix := NewIndexer(b, &hashEmbedder{dim: 16}, quietLogger())
	ctx := context.Background()

	require.NoError(t, ix.EnsureIndex(ctx, indexRecords()))

	// corrupt the docstore so it no longer parallels the index
	var docs []string
	raw, err := os.ReadFile(b.DocStorePath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &docs))
	docs = append(docs, "orphan entry")
	raw, err = json.Marshal(docs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(b.DocStorePath, raw, 0o644))

	_, _, err = ix.Load(ctx)
	assert.True(t, utils.IsCode(err, utils.CodeIntegrity), "misaligned artifacts must refuse to serve")
}

func TestRebuildIsDeterministic(t *testing.T) {
	emb := &hashEmbedder{dim: 16}
	ctx := context.Background()

	load := func() (Index, []string) {
		b := tempBackend(t)
		ix := NewIndexer(b, emb, quietLogger())
		require.NoError(t, ix.EnsureIndex(ctx, indexRecords()))
		index, docs, err := ix.Load(ctx)
		require.NoError(t, err)
		return index, docs
	}

	firstIndex, firstDocs := load()
	secondIndex, secondDocs := load()
	assert.Equal(t, firstDocs, secondDocs)

	qv, err := emb.Embed(ctx, []string{"kalwa occupancy"})
	require.NoError(t, err)

	firstHits, err := firstIndex.Search(ctx, qv[0], 3)
	require.NoError(t, err)
	secondHits, err := secondIndex.Search(ctx, qv[0], 3)
	require.NoError(t, err)
	assert.Equal(t, firstHits, secondHits)
}

func TestFlatBackendExists(t *testing.T) {
	b := tempBackend(t)
	ctx := context.Background()

	exists, err := b.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	emb := &hashEmbedder{dim: 4}
	vecs, err := emb.Embed(ctx, []string{"only doc"})
	require.NoError(t, err)
	require.NoError(t, b.Build(ctx, vecs, []string{"only doc"}))

	exists, err = b.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}
