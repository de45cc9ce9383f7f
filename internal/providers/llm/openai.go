package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultOpenAIModel is used when no model is configured.
	DefaultOpenAIModel = "gpt-4.1-mini"
	defaultOpenAIBase  = "https://api.openai.com"
)

// OpenAIProvider talks to the Chat Completions API.
type OpenAIProvider struct {
	model   string
	baseURL string
	opts    Options

	apiKey string
	client *http.Client
}

// NewOpenAI returns an uninitialized OpenAI backend. opts.Endpoint overrides
// the API base URL.
func NewOpenAI(opts Options) *OpenAIProvider {
	model := opts.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	base := strings.TrimRight(opts.Endpoint, "/")
	if base == "" {
		base = defaultOpenAIBase
	}
	return &OpenAIProvider{model: model, baseURL: base, opts: opts}
}

func (p *OpenAIProvider) Initialize(ctx context.Context, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("openai: empty API key")
	}
	p.apiKey = apiKey
	p.client = newHTTPClient(p.opts)
	return nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("%s: %w", p.Name(), ErrNotInitialized)
	}
	body := map[string]any{
		"model":       p.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"temperature": temperature,
	}
	var resp struct {
		Choices []struct {
			Message struct {
				Content *string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}
	if err := postJSON(ctx, p.client, "openai", p.baseURL+"/v1/chat/completions", headers, body, &resp); err != nil {
		return "", Classify("OpenAI", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return "", nil
	}
	return *resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Name() string { return fmt.Sprintf("OpenAI (%s)", p.model) }
