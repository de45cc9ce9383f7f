package llm

import (
	"context"
	"fmt"
)

// MockProvider is a scripted Provider for tests.
type MockProvider struct {
	Label    string
	Response string
	Err      error

	// Prompts records every prompt passed to Generate.
	Prompts []string

	initialized bool
	apiKey      string
}

func (m *MockProvider) Initialize(ctx context.Context, apiKey string) error {
	m.apiKey = apiKey
	m.initialized = true
	return nil
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if !m.initialized {
		return "", ErrNotInitialized
	}
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) Name() string {
	if m.Label == "" {
		return "Mock (mock)"
	}
	return fmt.Sprintf("Mock (%s)", m.Label)
}

// APIKey returns the credential passed to Initialize.
func (m *MockProvider) APIKey() string { return m.apiKey }
