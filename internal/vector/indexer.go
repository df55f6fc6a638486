package vector

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/occulog/occulog/internal/models"
	"github.com/occulog/occulog/internal/providers/embedding"
	"github.com/occulog/occulog/internal/utils"
)

// Indexer drives the build-or-load lifecycle: EnsureIndex is an idempotent
// build-if-absent, Load hands back a read-only handle. The two are separate
// operations so tests can substitute an in-memory backend.
type Indexer struct {
	backend  Backend
	embedder embedding.Provider
	log      *logrus.Logger
}

func NewIndexer(backend Backend, embedder embedding.Provider, log *logrus.Logger) *Indexer {
	return &Indexer{backend: backend, embedder: embedder, log: log}
}

// rowMetadataCarrier is an optional backend capability: storing the source
// record next to each indexed document.
type rowMetadataCarrier interface {
	SetRowMetadata(meta []datatypes.JSON)
}

// EnsureIndex builds and persists the index from the full corpus when no
// persisted index exists. There is no incremental path; a changed corpus
// needs the artifacts removed and a full rebuild.
func (ix *Indexer) EnsureIndex(ctx context.Context, records []models.Record) error {
	const op = "Indexer.EnsureIndex"

	exists, err := ix.backend.Exists(ctx)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to probe persisted index", err)
	}
	if exists {
		return nil
	}
	if len(records) == 0 {
		return utils.E(utils.CodeIntegrity, op, "corpus is empty, nothing to index", nil)
	}

	ix.log.WithField("records", len(records)).Info("building similarity index")

	docs := make([]string, 0, len(records))
	for _, r := range records {
		docs = append(docs, r.ProjectedText())
	}

	vectors, err := ix.embedder.Embed(ctx, docs)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to embed corpus", err)
	}

	if carrier, ok := ix.backend.(rowMetadataCarrier); ok {
		meta := make([]datatypes.JSON, 0, len(records))
		for _, r := range records {
			raw, merr := json.Marshal(r)
			if merr != nil {
				raw = nil
			}
			meta = append(meta, datatypes.JSON(raw))
		}
		carrier.SetRowMetadata(meta)
	}

	if err := ix.backend.Build(ctx, vectors, docs); err != nil {
		return err
	}

	ix.log.WithField("vectors", len(vectors)).Info("similarity index built")
	return nil
}

// Load reads the persisted index and its parallel document sequence and
// fails fast when their lengths diverge; serving misaligned results is
// worse than refusing to start.
func (ix *Indexer) Load(ctx context.Context) (Index, []string, error) {
	const op = "Indexer.Load"

	index, docs, err := ix.backend.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if index.Size() != len(docs) {
		return nil, nil, utils.E(utils.CodeIntegrity, op,
			"index size does not match document sequence length", nil)
	}
	return index, docs, nil
}
