package index

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"bookflow/internal/config"
	"bookflow/internal/embedding"
)

// ChromemStore keeps chapter documents in an embedded chromem-go collection,
// persisted on disk unless constructed with an empty path.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

func NewChromemStore(cfg *config.StoreConfig, embed embedding.Func) (*ChromemStore, error) {
	var (
		db  *chromem.DB
		err error
	)
	if cfg.Path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(cfg.Path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}

	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, chromem.EmbeddingFunc(embed))
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}

	return &ChromemStore{db: db, collection: collection}, nil
}

// Upsert adds or replaces the document keyed by chapter id. chromem keys
// documents by ID, so re-adding the same id replaces the prior document.
func (s *ChromemStore) Upsert(ctx context.Context, doc Document) error {
	chromemDoc := chromem.Document{
		ID:      doc.ChapterID,
		Content: doc.Content,
		Metadata: map[string]string{
			"chapter": doc.ChapterID,
			"title":   doc.Title,
			"score":   strconv.Itoa(doc.Score),
		},
	}
	err := s.collection.AddDocuments(ctx, []chromem.Document{chromemDoc}, runtime.NumCPU())
	if err != nil {
		return fmt.Errorf("failed to add document: %v", err)
	}
	return nil
}

// Query returns up to topK documents nearest to the query text. topK is
// clamped to the collection size; an empty collection yields no results.
func (s *ChromemStore) Query(ctx context.Context, text string, topK int) ([]Result, error) {
	if count := s.collection.Count(); topK > count {
		topK = count
	}
	if topK <= 0 {
		return nil, nil
	}

	hits, err := s.collection.Query(ctx, text, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		score, _ := strconv.Atoi(hit.Metadata["score"])
		results = append(results, Result{
			Document: Document{
				ChapterID: hit.ID,
				Title:     hit.Metadata["title"],
				Content:   hit.Content,
				Score:     score,
			},
			Similarity: hit.Similarity,
		})
	}
	return results, nil
}
