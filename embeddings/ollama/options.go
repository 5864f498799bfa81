package ollama

import (
	"log/slog"
	"net/http"
	"net/url"
	"os"
)

// options holds configuration settings for the Ollama embedder.
type options struct {
	model      string
	serverURL  *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Option is a function type for configuring Ollama embedder options.
type Option func(*options)

// applyOptions creates a new options instance with defaults and applies the
// provided options.
func applyOptions(opts ...Option) options {
	o := options{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// defaultServerURL resolves the server URL from the OLLAMA_URL environment
// variable, falling back to the local daemon.
func defaultServerURL() (*url.URL, error) {
	raw := os.Getenv("OLLAMA_URL")
	if raw == "" {
		raw = DefaultOllamaURL
	}
	return url.Parse(raw)
}

// WithModel sets the embedding model, e.g. "nomic-embed-text".
func WithModel(model string) Option {
	return func(opts *options) {
		opts.model = model
	}
}

// WithServerURL overrides the Ollama server URL.
func WithServerURL(rawURL string) Option {
	return func(opts *options) {
		if parsed, err := url.Parse(rawURL); err == nil {
			opts.serverURL = parsed
		}
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = client
	}
}

// WithLogger sets the logger for the embedder.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}
