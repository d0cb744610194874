package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"bookflow/internal/config"
)

// Func embeds one text into a vector. The index stores accept this shape so
// tests can substitute a deterministic embedder.
type Func func(ctx context.Context, text string) ([]float32, error)

// NewEmbedder builds a langchaingo embedder for the configured provider.
func NewEmbedder(cfg *config.EmbeddingConfig) (*embeddings.EmbedderImpl, error) {
	var (
		embedder *embeddings.EmbedderImpl
		err      error
	)
	switch cfg.Provider {
	case "ollama":
		var llm *ollama.LLM
		llm, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
		if err == nil {
			embedder, err = embeddings.NewEmbedder(llm)
		}
	case "openai":
		var llm *openai.LLM
		llm, err = openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
		if err == nil {
			embedder, err = embeddings.NewEmbedder(llm)
		}
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %v", err)
	}
	return embedder, nil
}

// AsFunc adapts an embedder to the Func shape, embedding only the first chunk
// of oversized content.
func AsFunc(embedder *embeddings.EmbedderImpl) Func {
	return func(ctx context.Context, text string) ([]float32, error) {
		chunks := chunkContent(text, 4000)
		if len(chunks) == 0 {
			return nil, nil
		}
		return embedder.EmbedQuery(ctx, chunks[0])
	}
}

func chunkContent(content string, maxChars int) []string {
	var chunks []string
	words := strings.Split(content, " ")
	var chunk strings.Builder
	for _, word := range words {
		if chunk.Len() > 0 && chunk.Len()+len(word)+1 > maxChars {
			chunks = append(chunks, chunk.String())
			chunk.Reset()
		}
		chunk.WriteString(word + " ")
	}
	if chunk.Len() > 0 {
		chunks = append(chunks, chunk.String())
	}
	return chunks
}
