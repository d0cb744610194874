package index

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"bookflow/internal/config"
	"bookflow/internal/embedding"
)

const vectorSize = 768

type chapterRow struct {
	bun.BaseModel `bun:"table:chapters,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement"`
	ChapterID     string    `bun:"chapter_id,notnull,unique"`
	Title         string    `bun:"title,notnull"`
	Content       string    `bun:"content,notnull"`
	Score         int       `bun:"score,notnull"`
	Embedding     []float32 `bun:"embedding,notnull,type:vector(768)"`
}

// PostgresStore keeps chapter documents in a pgvector table, for deployments
// that already run Postgres instead of the embedded store.
type PostgresStore struct {
	db    *bun.DB
	embed embedding.Func
}

func NewPostgresStore(ctx context.Context, cfg *config.StoreConfig, embed embedding.Func) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithPassword(cfg.Password),
	))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if _, err := db.NewCreateTable().Model((*chapterRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize chapters table: %v", err)
	}

	return &PostgresStore{db: db, embed: embed}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Upsert(ctx context.Context, doc Document) error {
	vec, err := s.embed(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("failed to embed document: %v", err)
	}
	if len(vec) != vectorSize {
		return fmt.Errorf("embedding has %d dimensions, column requires %d", len(vec), vectorSize)
	}

	row := &chapterRow{
		ChapterID: doc.ChapterID,
		Title:     doc.Title,
		Content:   doc.Content,
		Score:     doc.Score,
		Embedding: vec,
	}
	_, err = s.db.NewInsert().
		Model(row).
		On("CONFLICT (chapter_id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("content = EXCLUDED.content").
		Set("score = EXCLUDED.score").
		Set("embedding = EXCLUDED.embedding").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %v", err)
	}
	return nil
}

func (s *PostgresStore) Query(ctx context.Context, text string, topK int) ([]Result, error) {
	vec, err := s.embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %v", err)
	}

	var rows []chapterRow
	err = s.db.NewSelect().
		Model(&rows).
		Column("chapter_id", "title", "content", "score").
		OrderExpr("embedding <-> ?", vec).
		Limit(topK).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, Result{
			Document: Document{
				ChapterID: row.ChapterID,
				Title:     row.Title,
				Content:   row.Content,
				Score:     row.Score,
			},
		})
	}
	return results, nil
}
