package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"scanner-rag/internal/config"
)

// Document is one stored chunk row. Insert-only; a full re-ingestion drops
// and recreates the table instead of updating by key.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`
	ID            int64             `bun:"id,pk,autoincrement"`
	Content       string            `bun:"content,notnull"`
	Embedding     string            `bun:"embedding,notnull,type:vector(384)"`
	Source        string            `bun:"source,notnull"`
	PageNum       int               `bun:"page_num,nullzero"`
	Metadata      map[string]string `bun:"metadata,type:jsonb"`
	Similarity    float32           `bun:"similarity,scanonly"`
}

func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := cfg.URL + "?sslmode=disable"
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(cfg.Key))), nil
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func InitDB(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Document)(nil)).IfNotExists().Exec(ctx)
	return err
}

func DropDocuments(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDropTable().Model((*Document)(nil)).IfExists().Exec(ctx)
	return err
}

func StoreDocument(ctx context.Context, db *bun.DB, doc *Document) error {
	_, err := db.NewInsert().Model(doc).Exec(ctx)
	return err
}

// SearchDocuments returns the limit nearest rows by cosine distance, best
// match first. Similarity is 1 - distance so larger is closer.
func SearchDocuments(ctx context.Context, db *bun.DB, queryEmbedding []float32, limit int) ([]Document, error) {
	vec := VectorLiteral(queryEmbedding)
	var docs []Document
	err := db.NewSelect().
		Model(&docs).
		Column("content", "source", "page_num", "metadata").
		ColumnExpr("1 - (embedding <=> ?) AS similarity", vec).
		OrderExpr("embedding <=> ?", vec).
		Limit(limit).
		Scan(ctx)
	return docs, err
}

// VectorLiteral renders an embedding in pgvector's input format.
func VectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
