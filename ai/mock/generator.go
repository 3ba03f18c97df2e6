package mock

import (
	"context"
	"sync"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields and is safe for
// concurrent use so it can stand in for providers inside a batch.
type MockGenerator struct {
	// ProviderName is returned by Name. Defaults to "Mock".
	ProviderName string

	// GenerateFunc is called by Generate if set.
	// If nil, Generate returns Response.
	GenerateFunc func(ctx context.Context, prompt, instruction string) (string, error)

	// Response is the fixed response returned when GenerateFunc is nil.
	Response string

	mu        sync.Mutex
	callCount int
	prompts   []string
}

// NewMockGenerator creates a mock generator returning the fixed response.
// Note: Returns concrete type to allow test assertions and behavior injection.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{
		ProviderName: "Mock",
		Response:     response,
	}
}

// Name identifies the provider.
func (m *MockGenerator) Name() string {
	if m.ProviderName == "" {
		return "Mock"
	}
	return m.ProviderName
}

// Generate records the prompt and returns the injected behavior or fixed response.
func (m *MockGenerator) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, instruction)
	}
	return m.Response, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns a copy of the prompts passed to Generate, in call order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.prompts = nil
	m.GenerateFunc = nil
}
