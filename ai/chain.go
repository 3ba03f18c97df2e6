package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/grocerypick/core"
	"golang.org/x/time/rate"
)

// RejectSentinel is the fixed marker a provider is instructed to return when
// it cannot comply with the required formatting or content. Output containing
// it is treated as a failed attempt.
const RejectSentinel = "!@#$%^"

// Chain is an ordered multi-provider fallback wrapper around Generators.
// Providers are tried in the order given at construction; the first usable
// response wins. The chain is built once at process start and is read-only
// afterwards, so it needs no locking.
type Chain struct {
	generators []Generator
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithLimiter sets a rate limiter applied before every provider attempt.
// Nil disables pacing.
func WithLimiter(limiter *rate.Limiter) ChainOption {
	return func(c *Chain) {
		c.limiter = limiter
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ChainOption {
	return func(c *Chain) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewChain creates a fallback chain over the given generators in priority order.
func NewChain(generators []Generator, opts ...ChainOption) *Chain {
	c := &Chain{
		generators: generators,
		logger:     slog.Default().With("component", "generator-chain"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Providers returns the names of the configured generators in priority order.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.generators))
	for i, g := range c.generators {
		names[i] = g.Name()
	}
	return names
}

// Generate tries each provider in order and returns the first usable response.
// An attempt fails if the provider errors, returns empty or whitespace-only
// text, or returns the reject sentinel. If every provider fails, or none is
// configured, the call fails with core.ErrGenerationUnavailable — callers
// never receive a silent empty string.
func (c *Chain) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	if len(c.generators) == 0 {
		return "", fmt.Errorf("%w: no providers configured", core.ErrGenerationUnavailable)
	}

	var lastErr error
	for _, g := range c.generators {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		result, err := g.Generate(ctx, prompt, instruction)
		if err != nil {
			c.logger.Warn("provider failed, falling through", "provider", g.Name(), "err", err)
			lastErr = err
			continue
		}
		if strings.TrimSpace(result) == "" {
			c.logger.Warn("provider returned empty response, falling through", "provider", g.Name())
			lastErr = fmt.Errorf("provider %s returned empty response", g.Name())
			continue
		}
		if strings.Contains(result, RejectSentinel) {
			c.logger.Warn("provider returned reject sentinel, falling through", "provider", g.Name())
			lastErr = fmt.Errorf("provider %s rejected the request", g.Name())
			continue
		}
		return result, nil
	}

	return "", fmt.Errorf("%w: %w", core.ErrGenerationUnavailable, lastErr)
}
