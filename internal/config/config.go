// Package config persists readmai settings and resolves the settings for a run
// from flags, environment and the config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/JPLeopoldino/readmai-cli/internal/providers/llm"
)

const (
	appName  = "readmai"
	fileName = "config.yaml"

	// SharedKeyName holds a key used by any provider without its own entry.
	SharedKeyName = "api_key"
)

// File is the on-disk config.
type File struct {
	Credentials map[string]string `yaml:"credentials,omitempty" mapstructure:"credentials"`
	Defaults    Defaults          `yaml:"defaults,omitempty" mapstructure:"defaults"`

	// Insecure is set by Load when group or other can access the file.
	Insecure bool `yaml:"-" mapstructure:"-"`
}

// Defaults holds preferences applied when no flag is given.
type Defaults struct {
	Provider string `yaml:"provider,omitempty" mapstructure:"provider"`
}

// DefaultPath returns $XDG_CONFIG_HOME/readmai/config.yaml, falling back to
// ~/.config/readmai/config.yaml.
func DefaultPath(env map[string]string) (string, error) {
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home := strings.TrimSpace(env["HOME"])
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config at path. A missing file yields an empty File.
func Load(path string) (*File, error) {
	f := &File{}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	f.Insecure = info.Mode().Perm()&0o077 != 0

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := v.Unmarshal(f); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path with owner-only permissions, creating the directory.
func Save(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("securing config: %w", err)
	}
	return nil
}

// SetAPIKey stores key for provider, keeping the rest of the file.
func SetAPIKey(path, provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrMissingAPIKey
	}
	if !llm.Supported(provider) {
		return unsupported(provider)
	}
	return update(path, func(f *File) {
		if f.Credentials == nil {
			f.Credentials = map[string]string{}
		}
		f.Credentials[provider] = key
	})
}

// SetDefaultProvider stores the provider used when --provider is absent.
func SetDefaultProvider(path, provider string) error {
	if !llm.Supported(provider) {
		return unsupported(provider)
	}
	return update(path, func(f *File) { f.Defaults.Provider = provider })
}

func update(path string, fn func(*File)) error {
	f, err := Load(path)
	if err != nil {
		// Never overwrite a file we could not read; its other entries would be lost.
		return err
	}
	fn(f)
	return Save(path, f)
}

func unsupported(provider string) error {
	return fmt.Errorf("%w: %q (choose one of %s)", llm.ErrUnsupportedProvider, provider, strings.Join(llm.Names(), ", "))
}
