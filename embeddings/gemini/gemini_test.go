package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := New(context.Background())
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNew_KeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	e, err := New(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultEmbeddingModel, e.options.embeddingModel)
}

func TestApplyOptions(t *testing.T) {
	o := applyOptions(
		WithAPIKey("k"),
		WithEmbeddingModel("gemini-embedding-001"),
	)
	assert.Equal(t, "k", o.apiKey)
	assert.Equal(t, "gemini-embedding-001", o.embeddingModel)
	assert.NotNil(t, o.logger)

	// Empty model keeps the default.
	o = applyOptions(WithEmbeddingModel(""))
	assert.Equal(t, defaultEmbeddingModel, o.embeddingModel)
}
