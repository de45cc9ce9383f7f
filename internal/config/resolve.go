package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JPLeopoldino/readmai-cli/internal/providers/llm"
)

// ErrMissingAPIKey is returned when an empty API key is stored or entered.
var ErrMissingAPIKey = errors.New("no API key provided")

// KeySource records where a resolved API key came from.
type KeySource string

const (
	SourceNone   KeySource = ""
	SourceEnv    KeySource = "env"
	SourceConfig KeySource = "config"
)

// Input is everything Resolve looks at. Empty fields mean "not given".
type Input struct {
	Env      map[string]string
	Path     string
	Provider string
	Model    string
	Timeout  time.Duration
}

// Settings are the resolved values for one run.
type Settings struct {
	Provider  string
	Model     string
	APIKey    string
	KeySource KeySource
	// KeyEnvVar is the variable checked first for the key, e.g. GEMINI_API_KEY.
	KeyEnvVar string
	Endpoint  string
	Timeout   time.Duration
	Path      string
	Warnings  []string
}

var endpointEnv = map[string]string{
	llm.Gemini:    "GEMINI_API_URL",
	llm.OpenAI:    "OPENAI_API_BASE",
	llm.Anthropic: "ANTHROPIC_API_URL",
}

// Resolve combines flags, environment and the config file at in.Path.
// Flags win over the file; for the API key the environment wins over the file.
// An unreadable config file is reported in Settings.Warnings and ignored.
// A missing key is not an error: APIKey is left empty for the caller to ask.
func Resolve(in Input) (Settings, error) {
	s := Settings{Path: in.Path}

	f, err := Load(in.Path)
	if err != nil {
		s.Warnings = append(s.Warnings, fmt.Sprintf("Could not read configuration file %s: %v", in.Path, err))
		f = &File{}
	}
	if f.Insecure {
		s.Warnings = append(s.Warnings, fmt.Sprintf("Configuration file %s has insecure permissions. Consider running `chmod 600 %s`.", in.Path, in.Path))
	}

	s.Provider = firstNonEmpty(strings.ToLower(strings.TrimSpace(in.Provider)), strings.ToLower(strings.TrimSpace(f.Defaults.Provider)), llm.Gemini)
	if !llm.Supported(s.Provider) {
		return s, unsupported(s.Provider)
	}
	s.Model = firstNonEmpty(strings.TrimSpace(in.Model), llm.DefaultModel(s.Provider))

	s.KeyEnvVar = EnvKeyName(s.Provider)
	envKeys := []string{s.KeyEnvVar}
	if s.Provider == llm.Gemini {
		envKeys = append(envKeys, "GOOGLE_API_KEY")
	}
	for _, name := range envKeys {
		if v := strings.TrimSpace(in.Env[name]); v != "" {
			s.APIKey, s.KeySource = v, SourceEnv
			break
		}
	}
	if s.APIKey == "" {
		if v := firstNonEmpty(strings.TrimSpace(f.Credentials[s.Provider]), strings.TrimSpace(f.Credentials[SharedKeyName])); v != "" {
			s.APIKey, s.KeySource = v, SourceConfig
		}
	}

	s.Endpoint = strings.TrimSpace(in.Env[endpointEnv[s.Provider]])
	s.Timeout = in.Timeout
	if s.Timeout <= 0 {
		s.Timeout = envTimeout(in.Env["LLM_HTTP_TIMEOUT_MS"])
	}
	return s, nil
}

// EnvKeyName returns the environment variable holding provider's key.
func EnvKeyName(provider string) string {
	return strings.ToUpper(provider) + "_API_KEY"
}

// EnvMap turns os.Environ-style pairs into a map.
func EnvMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

func envTimeout(v string) time.Duration {
	ms, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
