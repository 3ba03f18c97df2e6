package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/grocerypick/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// chain tests use a local stub instead of ai/mock to avoid an import cycle.
type stubGenerator struct {
	name     string
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Name() string {
	return s.name
}

func (s *stubGenerator) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestChain_NoProviders(t *testing.T) {
	chain := NewChain(nil)

	text, err := chain.Generate(context.Background(), "prompt", "instruction")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrGenerationUnavailable)
	assert.Empty(t, text)
}

func TestChain_FirstProviderWins(t *testing.T) {
	primary := &stubGenerator{name: "Primary", response: "from primary"}
	fallback := &stubGenerator{name: "Fallback", response: "from fallback"}
	chain := NewChain([]Generator{primary, fallback})

	text, err := chain.Generate(context.Background(), "prompt", "instruction")
	require.NoError(t, err)
	assert.Equal(t, "from primary", text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls, "fallback must not be tried when primary succeeds")
}

func TestChain_FallsThroughOnError(t *testing.T) {
	primary := &stubGenerator{name: "Primary", err: errors.New("rate limited")}
	fallback := &stubGenerator{name: "Fallback", response: "from fallback"}
	chain := NewChain([]Generator{primary, fallback})

	text, err := chain.Generate(context.Background(), "prompt", "instruction")
	require.NoError(t, err)
	assert.Equal(t, "from fallback", text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestChain_FallsThroughOnEmptyResponse(t *testing.T) {
	primary := &stubGenerator{name: "Primary", response: "   \n\t "}
	fallback := &stubGenerator{name: "Fallback", response: "ok"}
	chain := NewChain([]Generator{primary, fallback})

	text, err := chain.Generate(context.Background(), "prompt", "instruction")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestChain_FallsThroughOnRejectSentinel(t *testing.T) {
	primary := &stubGenerator{name: "Primary", response: "sorry: " + RejectSentinel}
	fallback := &stubGenerator{name: "Fallback", response: "ok"}
	chain := NewChain([]Generator{primary, fallback})

	text, err := chain.Generate(context.Background(), "prompt", "instruction")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestChain_AllProvidersFail(t *testing.T) {
	primary := &stubGenerator{name: "Primary", err: errors.New("boom")}
	fallback := &stubGenerator{name: "Fallback", response: ""}
	chain := NewChain([]Generator{primary, fallback})

	text, err := chain.Generate(context.Background(), "prompt", "instruction")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrGenerationUnavailable)
	assert.Empty(t, text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestChain_Providers(t *testing.T) {
	chain := NewChain([]Generator{
		&stubGenerator{name: "Primary"},
		&stubGenerator{name: "Fallback"},
	})

	assert.Equal(t, []string{"Primary", "Fallback"}, chain.Providers())
}

func TestChain_LimiterCancellation(t *testing.T) {
	// A zero-rate limiter never admits a call; cancellation must unblock it.
	limiter := rate.NewLimiter(0, 0)
	gen := &stubGenerator{name: "Primary", response: "ok"}
	chain := NewChain([]Generator{gen}, WithLimiter(limiter))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := chain.Generate(ctx, "prompt", "instruction")
	require.Error(t, err)
	assert.Equal(t, 0, gen.calls)
}
