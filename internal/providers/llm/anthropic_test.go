package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnthropic_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "key-1", r.Header.Get("x-api-key"))
		require.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"# Hello"},{"type":"tool_use"},{"type":"text","text":"\nWorld"}]}`))
	}))
	defer srv.Close()

	p := NewAnthropic(Options{Endpoint: srv.URL})
	require.NoError(t, p.Initialize(context.Background(), "key-1"))
	out, err := p.Generate(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, "# Hello\nWorld", out)
}

func TestAnthropic_AuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	p := NewAnthropic(Options{Endpoint: srv.URL})
	require.NoError(t, p.Initialize(context.Background(), "bad"))
	_, err := p.Generate(context.Background(), "x")
	var be *BackendError
	require.True(t, errors.As(err, &be))
	require.Equal(t, KindAuth, be.Kind)
	require.Contains(t, err.Error(), "Anthropic")
}
