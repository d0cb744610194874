// Package index stores finalized chapter text and metadata for similarity
// search. Two backends implement the same contract: an embedded chromem-go
// database (default) and a pgvector table.
package index

import "context"

// Document is one finalized chapter. Score is the human feedback score the
// chapter was accepted with.
type Document struct {
	ChapterID string
	Title     string
	Content   string
	Score     int
}

// Result is one similarity hit, most similar first.
type Result struct {
	Document
	Similarity float32
}

// Store upserts and queries chapter documents. Upsert replaces any prior
// document under the same chapter id, never duplicating.
type Store interface {
	Upsert(ctx context.Context, doc Document) error
	Query(ctx context.Context, text string, topK int) ([]Result, error)
}
