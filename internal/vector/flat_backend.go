package vector

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"os"

	"github.com/occulog/occulog/internal/utils"
)

// FlatBackend persists a FlatIndex and its docstore as two files on local
// disk, mirroring the vector.index / data_store.json layout of the
// original exports.
type FlatBackend struct {
	IndexPath    string
	DocStorePath string
}

// flatFile is the gob envelope for a FlatIndex.
type flatFile struct {
	Dim     int
	Vectors [][]float32
}

func (b *FlatBackend) Exists(_ context.Context) (bool, error) {
	if _, err := os.Stat(b.IndexPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *FlatBackend) Build(_ context.Context, vectors [][]float32, docs []string) error {
	const op = "FlatBackend.Build"

	if len(vectors) != len(docs) {
		return utils.E(utils.CodeIntegrity, op, "vector count does not match document count", nil)
	}
	if len(vectors) == 0 {
		return utils.E(utils.CodeInvalidArgument, op, "refusing to build an empty index", nil)
	}

	ix := NewFlatIndex(len(vectors[0]))
	if err := ix.Add(vectors...); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to add vectors", err)
	}

	f, err := os.Create(b.IndexPath)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create index file", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(flatFile{Dim: ix.dim, Vectors: ix.vectors}); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode index", err)
	}

	ds, err := os.Create(b.DocStorePath)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create docstore file", err)
	}
	defer ds.Close()
	if err := json.NewEncoder(ds).Encode(docs); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode docstore", err)
	}
	return nil
}

func (b *FlatBackend) Load(_ context.Context) (Index, []string, error) {
	const op = "FlatBackend.Load"

	f, err := os.Open(b.IndexPath)
	if err != nil {
		return nil, nil, utils.E(utils.CodeNotFound, op, "failed to open index file", err)
	}
	defer f.Close()

	var ff flatFile
	if err := gob.NewDecoder(f).Decode(&ff); err != nil {
		return nil, nil, utils.E(utils.CodeIntegrity, op, "failed to decode index file", err)
	}

	ds, err := os.Open(b.DocStorePath)
	if err != nil {
		return nil, nil, utils.E(utils.CodeNotFound, op, "failed to open docstore file", err)
	}
	defer ds.Close()

	var docs []string
	if err := json.NewDecoder(ds).Decode(&docs); err != nil {
		return nil, nil, utils.E(utils.CodeIntegrity, op, "failed to decode docstore", err)
	}

	ix := &FlatIndex{dim: ff.Dim, vectors: ff.Vectors}
	return ix, docs, nil
}
