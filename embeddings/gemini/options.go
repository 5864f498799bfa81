package gemini

import "log/slog"

const defaultEmbeddingModel = "text-embedding-004"

// options holds configuration settings for the Gemini embedder.
type options struct {
	apiKey         string
	embeddingModel string
	logger         *slog.Logger
}

// Option is a function type for configuring Gemini embedder options.
type Option func(*options)

func applyOptions(opts ...Option) options {
	o := options{
		embeddingModel: defaultEmbeddingModel,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithAPIKey sets the Gemini API key.
func WithAPIKey(key string) Option {
	return func(opts *options) {
		opts.apiKey = key
	}
}

// WithEmbeddingModel overrides the embedding model.
func WithEmbeddingModel(model string) Option {
	return func(opts *options) {
		if model != "" {
			opts.embeddingModel = model
		}
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
