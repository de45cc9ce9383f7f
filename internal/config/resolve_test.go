package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JPLeopoldino/readmai-cli/internal/providers/llm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestResolve(t *testing.T) {
	const file = `
credentials:
  gemini: file-gemini
  api_key: file-shared
defaults:
  provider: openai
`
	tests := []struct {
		name      string
		in        Input
		provider  string
		model     string
		key       string
		source    KeySource
		keyEnvVar string
	}{
		{
			name:     "file default provider with shared key",
			in:       Input{},
			provider: "openai", model: llm.DefaultOpenAIModel,
			key: "file-shared", source: SourceConfig, keyEnvVar: "OPENAI_API_KEY",
		},
		{
			name:     "flag provider uses its own key",
			in:       Input{Provider: "gemini"},
			provider: "gemini", model: llm.DefaultGeminiModel,
			key: "file-gemini", source: SourceConfig, keyEnvVar: "GEMINI_API_KEY",
		},
		{
			name:     "environment beats file",
			in:       Input{Provider: "Gemini", Env: map[string]string{"GEMINI_API_KEY": "env-gemini"}},
			provider: "gemini", model: llm.DefaultGeminiModel,
			key: "env-gemini", source: SourceEnv, keyEnvVar: "GEMINI_API_KEY",
		},
		{
			name:     "google key alias for gemini",
			in:       Input{Provider: "gemini", Env: map[string]string{"GOOGLE_API_KEY": "env-google"}},
			provider: "gemini", model: llm.DefaultGeminiModel,
			key: "env-google", source: SourceEnv, keyEnvVar: "GEMINI_API_KEY",
		},
		{
			name:     "other provider env var ignored",
			in:       Input{Env: map[string]string{"GEMINI_API_KEY": "env-gemini"}},
			provider: "openai", model: llm.DefaultOpenAIModel,
			key: "file-shared", source: SourceConfig, keyEnvVar: "OPENAI_API_KEY",
		},
		{
			name:     "model flag",
			in:       Input{Provider: "anthropic", Model: "claude-x", Env: map[string]string{"ANTHROPIC_API_KEY": "a"}},
			provider: "anthropic", model: "claude-x",
			key: "a", source: SourceEnv, keyEnvVar: "ANTHROPIC_API_KEY",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			in.Path = writeConfig(t, file)
			s, err := Resolve(in)
			require.NoError(t, err)
			require.Equal(t, tt.provider, s.Provider)
			require.Equal(t, tt.model, s.Model)
			require.Equal(t, tt.key, s.APIKey)
			require.Equal(t, tt.source, s.KeySource)
			require.Equal(t, tt.keyEnvVar, s.KeyEnvVar)
			require.Empty(t, s.Warnings)
		})
	}
}

func TestResolve_NoConfigNoKey(t *testing.T) {
	s, err := Resolve(Input{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)
	require.Equal(t, llm.Gemini, s.Provider)
	require.Empty(t, s.APIKey)
	require.Equal(t, SourceNone, s.KeySource)
}

func TestResolve_UnsupportedProvider(t *testing.T) {
	_, err := Resolve(Input{Path: filepath.Join(t.TempDir(), "c.yaml"), Provider: "mistral"})
	require.ErrorIs(t, err, llm.ErrUnsupportedProvider)

	path := writeConfig(t, "defaults:\n  provider: cohere\n")
	_, err = Resolve(Input{Path: path})
	require.ErrorIs(t, err, llm.ErrUnsupportedProvider)
}

func TestResolve_Warnings(t *testing.T) {
	path := writeConfig(t, "credentials:\n  gemini: k\n")
	require.NoError(t, os.Chmod(path, 0o644))

	s, err := Resolve(Input{Path: path})
	require.NoError(t, err)
	require.Equal(t, "k", s.APIKey, "loose permissions warn but do not block")
	require.Len(t, s.Warnings, 1)
	require.Contains(t, s.Warnings[0], "insecure permissions")

	broken := writeConfig(t, "credentials: [unterminated\n")
	s, err = Resolve(Input{Path: broken, Env: map[string]string{"GEMINI_API_KEY": "e"}})
	require.NoError(t, err)
	require.Equal(t, "e", s.APIKey)
	require.Len(t, s.Warnings, 1)
	require.Contains(t, s.Warnings[0], "Could not read configuration file")
}

func TestResolve_EndpointAndTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	env := map[string]string{
		"OPENAI_API_BASE":     "http://localhost:9999",
		"LLM_HTTP_TIMEOUT_MS": "1500",
	}

	s, err := Resolve(Input{Path: path, Provider: "openai", Env: env})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9999", s.Endpoint)
	require.Equal(t, 1500*time.Millisecond, s.Timeout)

	s, err = Resolve(Input{Path: path, Provider: "openai", Env: env, Timeout: time.Minute})
	require.NoError(t, err)
	require.Equal(t, time.Minute, s.Timeout)

	s, err = Resolve(Input{Path: path, Env: map[string]string{"LLM_HTTP_TIMEOUT_MS": "soon"}})
	require.NoError(t, err)
	require.Zero(t, s.Timeout)
	require.Empty(t, s.Endpoint)
}

func TestEnvMap(t *testing.T) {
	m := EnvMap([]string{"A=1", "B=x=y", "EMPTY=", "BROKEN"})
	require.Equal(t, map[string]string{"A": "1", "B": "x=y", "EMPTY": ""}, m)
}
