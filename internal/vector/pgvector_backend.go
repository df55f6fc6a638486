package vector

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/occulog/occulog/internal/utils"
)

// LogDocument is one indexed projected sentence stored as a pgvector row.
// position mirrors the corpus position, so the table doubles as the
// parallel document sequence.
type LogDocument struct {
	Position  int             `gorm:"column:position;primaryKey" json:"position"`
	Text      string          `gorm:"column:text;type:text" json:"text"`
	Embedding pgvector.Vector `gorm:"column:embedding" json:"-"`
	Metadata  datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
}

func (LogDocument) TableName() string { return "log_documents" }

// PGBackend keeps the similarity index in Postgres with the pgvector
// extension. Inner product over unit vectors matches the flat backend's
// scoring, so the two backends rank identically for the same embeddings.
type PGBackend struct {
	DB *gorm.DB

	// meta rows are optional; when set by the indexer they are stored
	// alongside each document.
	meta []datatypes.JSON
}

// SetRowMetadata attaches per-document metadata for the next Build.
func (b *PGBackend) SetRowMetadata(meta []datatypes.JSON) { b.meta = meta }

func (b *PGBackend) Exists(ctx context.Context) (bool, error) {
	if !b.DB.Migrator().HasTable(&LogDocument{}) {
		return false, nil
	}
	var n int64
	if err := b.DB.WithContext(ctx).Model(&LogDocument{}).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *PGBackend) Build(ctx context.Context, vectors [][]float32, docs []string) error {
	const op = "PGBackend.Build"

	if len(vectors) != len(docs) {
		return utils.E(utils.CodeIntegrity, op, "vector count does not match document count", nil)
	}
	if len(vectors) == 0 {
		return utils.E(utils.CodeInvalidArgument, op, "refusing to build an empty index", nil)
	}

	db := b.DB.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return utils.E(utils.CodeUnavailable, op, "pgvector extension unavailable", err)
	}
	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS log_documents (position integer PRIMARY KEY, text text NOT NULL, embedding vector(%d) NOT NULL, metadata jsonb)",
		len(vectors[0]),
	)
	if err := db.Exec(ddl).Error; err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create index table", err)
	}
	if err := db.Exec("TRUNCATE log_documents").Error; err != nil {
		return utils.E(utils.CodeInternal, op, "failed to reset index table", err)
	}

	rows := make([]LogDocument, 0, len(docs))
	for i, doc := range docs {
		row := LogDocument{
			Position:  i,
			Text:      doc,
			Embedding: pgvector.NewVector(vectors[i]),
		}
		if i < len(b.meta) {
			row.Metadata = b.meta[i]
		}
		rows = append(rows, row)
	}
	if err := db.CreateInBatches(rows, 200).Error; err != nil {
		return utils.E(utils.CodeInternal, op, "failed to insert index rows", err)
	}
	return nil
}

func (b *PGBackend) Load(ctx context.Context) (Index, []string, error) {
	const op = "PGBackend.Load"

	var docs []string
	err := b.DB.WithContext(ctx).
		Model(&LogDocument{}).
		Order("position ASC").
		Pluck("text", &docs).Error
	if err != nil {
		return nil, nil, utils.E(utils.CodeUnavailable, op, "failed to load document sequence", err)
	}
	if len(docs) == 0 {
		return nil, nil, utils.E(utils.CodeNotFound, op, "index table is empty", nil)
	}
	return &pgIndex{db: b.DB, size: len(docs)}, docs, nil
}

type pgIndex struct {
	db   *gorm.DB
	size int
}

func (ix *pgIndex) Size() int { return ix.size }

func (ix *pgIndex) Search(ctx context.Context, query []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	if k > ix.size {
		k = ix.size
	}

	q := pgvector.NewVector(query)
	var rows []struct {
		Position int
		Score    float32
	}
	// <#> is negative inner product; flip the sign so higher means closer
	err := ix.db.WithContext(ctx).Raw(
		"SELECT position, (embedding <#> ?) * -1 AS score FROM log_documents ORDER BY embedding <#> ? LIMIT ?",
		q, q, k,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, Hit{Position: r.Position, Score: r.Score})
	}
	return hits, nil
}
