// Package ollama provides an embeddings.Embedder backed by a local or
// remote Ollama server, using the batched /api/embed endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/sevigo/slabs/embeddings"
)

const (
	DefaultOllamaURL = "http://127.0.0.1:11434"
	DefaultTimeout   = 10 * time.Minute
)

var (
	ErrInvalidModel        = errors.New("ollama: model name is required")
	ErrEmptyResponse       = errors.New("ollama: empty embedding response")
	ErrIncompleteEmbedding = errors.New("ollama: not all input texts were embedded")
)

// Embedder generates embeddings through an Ollama server.
type Embedder struct {
	baseURL    *url.URL
	httpClient *http.Client
	options    options
}

var _ embeddings.Embedder = (*Embedder)(nil)

// New creates an Ollama embedder. A model name is required; the server URL
// defaults to the OLLAMA_URL environment variable or the local daemon.
func New(opts ...Option) (*Embedder, error) {
	o := applyOptions(opts...)

	if o.model == "" {
		return nil, ErrInvalidModel
	}

	baseURL := o.serverURL
	if baseURL == nil {
		var err error
		baseURL, err = defaultServerURL()
		if err != nil {
			return nil, fmt.Errorf("ollama: parse OLLAMA_URL: %w", err)
		}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	o.logger = o.logger.With("component", "ollama_embedder", "model", o.model)

	return &Embedder{
		baseURL:    baseURL,
		httpClient: httpClient,
		options:    o,
	}, nil
}

// EmbedDocuments embeds all texts in a single batched request. The server
// returns embeddings in input order.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	start := time.Now()
	e.options.logger.DebugContext(ctx, "Embedding documents",
		"model", e.options.model, "count", len(texts))

	req := &api.EmbedRequest{
		Model: e.options.model,
		Input: texts,
	}

	var resp api.EmbedResponse
	if err := e.doRequest(ctx, http.MethodPost, "/api/embed", req, &resp); err != nil {
		e.options.logger.ErrorContext(ctx, "Embed request failed",
			"error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("ollama: embed request failed: %w", err)
	}

	if len(resp.Embeddings) == 0 {
		return nil, ErrEmptyResponse
	}
	if len(resp.Embeddings) != len(texts) {
		e.options.logger.ErrorContext(ctx, "Embedding count mismatch",
			"expected", len(texts), "got", len(resp.Embeddings))
		return nil, ErrIncompleteEmbedding
	}

	e.options.logger.DebugContext(ctx, "Embedding completed",
		"count", len(resp.Embeddings), "duration", time.Since(start))
	return resp.Embeddings, nil
}

// EmbedQuery embeds a single text.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, ErrEmptyResponse
	}
	return vectors[0], nil
}

func (e *Embedder) doRequest(ctx context.Context, method, path string, reqBody, respBody any) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	reqURL := e.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	return json.NewDecoder(resp.Body).Decode(respBody)
}
