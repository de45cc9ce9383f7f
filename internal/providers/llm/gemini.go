package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider wraps the Gemini Go SDK. The SDK client is created by
// Initialize and released by Close.
type GeminiProvider struct {
	modelName string
	opts      Options

	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini returns an uninitialized Gemini backend.
func NewGemini(opts Options) *GeminiProvider {
	name := opts.Model
	if name == "" {
		name = DefaultGeminiModel
	}
	return &GeminiProvider{modelName: name, opts: opts}
}

func (p *GeminiProvider) Initialize(ctx context.Context, apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("gemini: empty API key")
	}
	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if p.opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(p.opts.Endpoint))
	}
	c, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return fmt.Errorf("gemini: create client: %w", err)
	}
	m := c.GenerativeModel(p.modelName)
	m.SetTemperature(temperature)
	p.client = c
	p.model = m
	return nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.model == nil {
		return "", fmt.Errorf("%s: %w", p.Name(), ErrNotInitialized)
	}
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if isBlocked(err) {
			return "", nil
		}
		return "", Classify("Gemini", err)
	}
	return firstText(resp), nil
}

func (p *GeminiProvider) Name() string { return fmt.Sprintf("Gemini (%s)", p.modelName) }

// Close releases the SDK client.
func (p *GeminiProvider) Close() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client, p.model = nil, nil
	return err
}

// isBlocked reports whether the SDK refused the prompt or the response for
// safety reasons, which leaves nothing to write.
func isBlocked(err error) bool {
	var blocked *genai.BlockedError
	return errors.As(err, &blocked)
}

// firstText joins the text parts of the first candidate.
func firstText(r *genai.GenerateContentResponse) string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	c := r.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
