package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnsupportedProvider is returned by New for an unknown provider id.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// Provider identifiers accepted on the command line and in config.
const (
	Gemini    = "gemini"
	OpenAI    = "openai"
	Anthropic = "anthropic"
)

// Names lists the supported provider identifiers.
func Names() []string { return []string{Gemini, OpenAI, Anthropic} }

// Supported reports whether id names a known provider.
func Supported(id string) bool {
	for _, n := range Names() {
		if n == id {
			return true
		}
	}
	return false
}

// Options configures a backend. Zero values select backend defaults.
type Options struct {
	Model    string
	Endpoint string
	Timeout  time.Duration
	// HTTPClient replaces the client built from Timeout (HTTP backends only).
	HTTPClient *http.Client
}

// New returns an uninitialized Provider for id.
func New(id string, opts Options) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case Gemini:
		return NewGemini(opts), nil
	case OpenAI:
		return NewOpenAI(opts), nil
	case Anthropic:
		return NewAnthropic(opts), nil
	}
	return nil, fmt.Errorf("%w: %q (choose one of %s)", ErrUnsupportedProvider, id, strings.Join(Names(), ", "))
}

// DefaultModel returns the model a backend uses when none is given.
func DefaultModel(id string) string {
	switch id {
	case OpenAI:
		return DefaultOpenAIModel
	case Anthropic:
		return DefaultAnthropicModel
	default:
		return DefaultGeminiModel
	}
}
