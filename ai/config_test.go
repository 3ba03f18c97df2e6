package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.GroqModel)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Empty(t, cfg.GroqAPIKey)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	})

	t.Run("with API keys", func(t *testing.T) {
		cfg := NewConfig(
			WithGeminiAPIKey("key-a"),
			WithGroqAPIKey("key-b"),
		)

		assert.Equal(t, "key-a", cfg.GeminiAPIKey)
		assert.Equal(t, "key-b", cfg.GroqAPIKey)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithGeminiModel("gemini-1.5-pro"),
			WithGroqModel("llama-3.1-70b-versatile"),
			WithEmbeddingModel("text-embedding-005"),
		)

		assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
		assert.Equal(t, "llama-3.1-70b-versatile", cfg.GroqModel)
		assert.Equal(t, "text-embedding-005", cfg.EmbeddingModel)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid with gemini key only", func(t *testing.T) {
		cfg := NewConfig(WithGeminiAPIKey("key"))
		require.NoError(t, cfg.Validate())
	})

	t.Run("valid with groq key only", func(t *testing.T) {
		cfg := NewConfig(WithGroqAPIKey("key"))
		require.NoError(t, cfg.Validate())
	})

	t.Run("no provider keys", func(t *testing.T) {
		cfg := NewConfig()
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty gemini model", func(t *testing.T) {
		cfg := NewConfig(WithGeminiAPIKey("key"), WithGeminiModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty groq model", func(t *testing.T) {
		cfg := NewConfig(WithGeminiAPIKey("key"), WithGroqModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty embedding model", func(t *testing.T) {
		cfg := NewConfig(WithGeminiAPIKey("key"), WithEmbeddingModel(""))
		assert.Error(t, cfg.Validate())
	})
}
