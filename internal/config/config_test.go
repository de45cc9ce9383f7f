package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JPLeopoldino/readmai-cli/internal/providers/llm"
)

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath(map[string]string{"XDG_CONFIG_HOME": "/xdg", "HOME": "/home/u"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/xdg", "readmai", "config.yaml"), p)

	p, err = DefaultPath(map[string]string{"HOME": "/home/u"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/home/u", ".config", "readmai", "config.yaml"), p)
}

func TestLoad_MissingFile(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Empty(t, f.Credentials)
	require.Empty(t, f.Defaults.Provider)
	require.False(t, f.Insecure)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readmai", "config.yaml")
	in := &File{
		Credentials: map[string]string{"gemini": "g-key", SharedKeyName: "shared"},
		Defaults:    Defaults{Provider: "openai"},
	}
	require.NoError(t, Save(path, in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, in.Credentials, out.Credentials)
	require.Equal(t, "openai", out.Defaults.Provider)
	require.False(t, out.Insecure)
}

func TestSave_TightensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  provider: gemini\n"), 0o644))
	require.NoError(t, os.Chmod(path, 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.True(t, f.Insecure)

	require.NoError(t, Save(path, f))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSetAPIKey_KeepsOtherSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SetDefaultProvider(path, "openai"))
	require.NoError(t, SetAPIKey(path, "openai", " sk-1 "))
	require.NoError(t, SetAPIKey(path, "gemini", "g-1"))

	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "openai", f.Defaults.Provider)
	require.Equal(t, map[string]string{"openai": "sk-1", "gemini": "g-1"}, f.Credentials)
}

func TestSetAPIKey_Rejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.ErrorIs(t, SetAPIKey(path, "gemini", "   "), ErrMissingAPIKey)
	require.ErrorIs(t, SetAPIKey(path, "mistral", "k"), llm.ErrUnsupportedProvider)
	require.ErrorIs(t, SetDefaultProvider(path, "mistral"), llm.ErrUnsupportedProvider)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "rejected updates must not create the file")
}

func TestSetAPIKey_KeepsUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	orig := []byte("credentials:\n  openai: sk-keep\n  anthropic: a-keep\ndefaults:\n  provider: openai\nextra: [unclosed\n")
	require.NoError(t, os.WriteFile(path, orig, 0o600))

	require.Error(t, SetAPIKey(path, llm.Gemini, "g-new"))
	require.Error(t, SetDefaultProvider(path, llm.Anthropic))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, orig, got)
}
