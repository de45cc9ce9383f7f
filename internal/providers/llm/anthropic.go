package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultAnthropicModel is used when no model is configured.
	DefaultAnthropicModel = "claude-3-5-sonnet-latest"
	defaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	anthropicVersion      = "2023-06-01"
	anthropicMaxTokens    = 4096
)

// AnthropicProvider talks to the Messages API.
type AnthropicProvider struct {
	model string
	url   string
	opts  Options

	apiKey string
	client *http.Client
}

// NewAnthropic returns an uninitialized Anthropic backend. opts.Endpoint
// overrides the full Messages URL.
func NewAnthropic(opts Options) *AnthropicProvider {
	model := opts.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	url := opts.Endpoint
	if url == "" {
		url = defaultAnthropicURL
	}
	return &AnthropicProvider{model: model, url: url, opts: opts}
}

func (p *AnthropicProvider) Initialize(ctx context.Context, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("anthropic: empty API key")
	}
	p.apiKey = apiKey
	p.client = newHTTPClient(p.opts)
	return nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("%s: %w", p.Name(), ErrNotInitialized)
	}
	body := map[string]any{
		"model":       p.model,
		"max_tokens":  anthropicMaxTokens,
		"temperature": temperature,
		"messages": []map[string]any{{
			"role":    "user",
			"content": []map[string]string{{"type": "text", "text": prompt}},
		}},
	}
	var resp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}
	if err := postJSON(ctx, p.client, "anthropic", p.url, headers, body, &resp); err != nil {
		return "", Classify("Anthropic", err)
	}
	var sb strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	return sb.String(), nil
}

func (p *AnthropicProvider) Name() string { return fmt.Sprintf("Anthropic (%s)", p.model) }
