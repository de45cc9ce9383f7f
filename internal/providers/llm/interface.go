package llm

import (
	"context"
	"errors"
)

// ErrNotInitialized is returned by Generate when Initialize has not been called.
var ErrNotInitialized = errors.New("llm: provider not initialized, call Initialize first")

// Provider is a text-generation backend.
// Generate returns ("", nil) when the backend produced no usable candidate.
type Provider interface {
	Initialize(ctx context.Context, apiKey string) error
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// temperature is shared by every backend.
const temperature = 0.2
