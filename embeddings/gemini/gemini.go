// Package gemini provides an embeddings.Embedder backed by Google's Gemini
// embedding models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/sevigo/slabs/embeddings"
)

var (
	ErrNoAPIKey   = errors.New("gemini: API key is required")
	ErrEmbeddings = errors.New("gemini: failed to generate embeddings")
)

// Embedder generates embeddings through the Gemini API.
type Embedder struct {
	client  *genai.Client
	options options
}

var _ embeddings.Embedder = (*Embedder)(nil)

// New creates a Gemini embedder. The API key is taken from options or the
// GEMINI_API_KEY environment variable.
func New(ctx context.Context, opts ...Option) (*Embedder, error) {
	o := applyOptions(opts...)

	if o.apiKey == "" {
		o.apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if o.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: o.apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	o.logger = o.logger.With("component", "gemini_embedder", "model", o.embeddingModel)

	return &Embedder{
		client:  client,
		options: o,
	}, nil
}

// EmbedDocuments generates embeddings for a slice of texts in input order.
func (g *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	start := time.Now()
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	res, err := g.client.Models.EmbedContent(ctx, g.options.embeddingModel, contents, nil)
	if err != nil {
		g.options.logger.ErrorContext(ctx, "Embedding request failed",
			"error", err, "count", len(texts))
		return nil, fmt.Errorf("%w: %v", ErrEmbeddings, err)
	}

	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, but got %d",
			ErrEmbeddings, len(texts), len(res.Embeddings))
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, e := range res.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("%w: embedding %d is nil or empty", ErrEmbeddings, i)
		}
		vectors[i] = e.Values
	}

	g.options.logger.DebugContext(ctx, "Embedding completed",
		"count", len(vectors), "duration", time.Since(start))
	return vectors, nil
}

// EmbedQuery generates an embedding for a single text.
func (g *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	content := genai.NewContentFromText(text, genai.RoleUser)

	res, err := g.client.Models.EmbedContent(ctx, g.options.embeddingModel, []*genai.Content{content}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddings, err)
	}

	if len(res.Embeddings) == 0 || res.Embeddings[0] == nil {
		return nil, fmt.Errorf("%w: embedding is nil or empty", ErrEmbeddings)
	}
	return res.Embeddings[0].Values, nil
}
