package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultHTTPTimeout applies when Options.Timeout is zero.
const defaultHTTPTimeout = 120 * time.Second

// statusError is a non-2xx reply from an HTTP backend.
type statusError struct {
	Backend string
	Status  int
	Type    string
	Message string
}

func (e *statusError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s status %d: %s (%s)", e.Backend, e.Status, e.Message, e.Type)
	}
	return fmt.Sprintf("%s status %d: %s", e.Backend, e.Status, e.Message)
}

func newHTTPClient(opts Options) *http.Client {
	if opts.HTTPClient != nil {
		return opts.HTTPClient
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// postJSON sends body to url and decodes a 2xx reply into out.
// There is no retry: a failed call is reported to the caller as is.
func postJSON(ctx context.Context, client *http.Client, backend, url string, headers map[string]string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", backend, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build %s request: %w", backend, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return readStatusError(backend, res)
}

// readStatusError decodes the {"error": {"type", "message"}} envelope shared
// by the OpenAI and Anthropic APIs, falling back to the raw body.
func readStatusError(backend string, res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	var envelope struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	se := &statusError{Backend: backend, Status: res.StatusCode}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Message != "" {
		se.Type = envelope.Error.Type
		se.Message = envelope.Error.Message
	} else {
		se.Message = string(bytes.TrimSpace(raw))
	}
	return se
}
