package analyzer

import (
	"context"
	"fmt"
	"log"
)

// Analyzer defines a generic interface for any AI analysis backend. This
// allows swapping the local CLI binary for an OpenAI-compatible HTTP API
// without touching the orchestration code.
type Analyzer interface {
	// Analyze sends a prompt and returns the model's full response text.
	Analyze(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend in logs.
	Name() string
}

// Chain tries each configured backend in order and returns the first
// successful response.
type Chain struct {
	backends []Analyzer
}

func NewChain(backends ...Analyzer) *Chain {
	return &Chain{backends: backends}
}

func (c *Chain) Name() string { return "chain" }

// Analyze walks the backends in order. Every failure is logged and the next
// backend is tried; only when all fail does the caller see an error.
func (c *Chain) Analyze(ctx context.Context, prompt string) (string, error) {
	if len(c.backends) == 0 {
		return "", fmt.Errorf("no analysis backends configured")
	}

	var lastErr error
	for _, backend := range c.backends {
		output, err := backend.Analyze(ctx, prompt)
		if err == nil {
			return output, nil
		}
		log.Printf("[Analyzer] Backend '%s' failed: %v. Trying next...", backend.Name(), err)
		lastErr = err
	}
	return "", fmt.Errorf("all analysis backends failed: %w", lastErr)
}
