// Package cli implements the readmai command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/JPLeopoldino/readmai-cli/internal/config"
	"github.com/JPLeopoldino/readmai-cli/internal/generator"
	"github.com/JPLeopoldino/readmai-cli/internal/progress"
	"github.com/JPLeopoldino/readmai-cli/internal/providers/llm"
)

// errGenerationFailed is returned after the generator has already reported why.
var errGenerationFailed = errors.New("README generation failed")

// Deps are the process resources the command works with.
type Deps struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Environ []string
	Logger  zerolog.Logger
	// Progress defaults to progress.Nop.
	Progress progress.Sink
	// NewProvider defaults to llm.New.
	NewProvider func(id string, opts llm.Options) (llm.Provider, error)
	Version     string
}

type app struct {
	deps Deps
	env  map[string]string
	log  zerolog.Logger

	configPath         string
	provider           string
	model              string
	setAPIKey          string
	setDefaultProvider string
	timeout            time.Duration
	verbose            bool
}

// Run executes the command with args and returns the process exit code.
func Run(args []string, d Deps) int {
	cmd, a := newRootCommand(d)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errGenerationFailed) {
			a.log.Error().Err(err).Msg("readmai failed")
		}
		return 1
	}
	return 0
}

func newRootCommand(d Deps) (*cobra.Command, *app) {
	if d.Progress == nil {
		d.Progress = progress.Nop{}
	}
	if d.NewProvider == nil {
		d.NewProvider = llm.New
	}
	if d.Stdin == nil {
		d.Stdin = os.Stdin
	}
	if d.Stdout == nil {
		d.Stdout = io.Discard
	}
	if d.Stderr == nil {
		d.Stderr = io.Discard
	}
	a := &app{deps: d, env: config.EnvMap(d.Environ), log: d.Logger}

	cmd := &cobra.Command{
		Use:   "readmai [path]",
		Short: "Generate a README.md for a project using AI",
		Long: `readmai scans a project's directory structure and asks an AI model
to write a README.md describing it. The README is written to the project root,
replacing any existing one.`,
		Version:       d.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.log = a.log.Level(zerolog.DebugLevel)
			}
		},
		RunE: a.run,
	}
	cmd.SetIn(d.Stdin)
	cmd.SetOut(d.Stdout)
	cmd.SetErr(d.Stderr)

	f := cmd.Flags()
	f.StringVar(&a.provider, "provider", "", "AI provider to use: gemini, openai or anthropic (default: configured default or gemini)")
	f.StringVar(&a.model, "model", "", "model name for the provider (default depends on provider)")
	f.StringVar(&a.setAPIKey, "set-api-key", "", "save the API key for the selected provider to the config file")
	f.StringVar(&a.setDefaultProvider, "set-default-provider", "", "save the default provider to the config file")
	f.StringVarP(&a.configPath, "config", "c", "", "config file (default: ~/.config/readmai/config.yaml)")
	f.DurationVar(&a.timeout, "timeout", 0, "timeout for the AI request, e.g. 90s (default: backend default)")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	return cmd, a
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	cfgPath, err := a.resolveConfigPath()
	if err != nil {
		return err
	}

	if a.setAPIKey != "" || a.setDefaultProvider != "" {
		if err := a.saveSettings(cfgPath); err != nil {
			return err
		}
		if len(args) == 0 {
			return nil
		}
	}

	projectPath := "."
	if len(args) == 1 {
		projectPath = args[0]
	}
	projectPath, err = validateDir(projectPath)
	if err != nil {
		return err
	}

	settings, err := config.Resolve(config.Input{
		Env:      a.env,
		Path:     cfgPath,
		Provider: a.provider,
		Model:    a.model,
		Timeout:  a.timeout,
	})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	for _, w := range settings.Warnings {
		a.log.Warn().Msg(w)
	}
	a.log.Debug().
		Str("provider", settings.Provider).
		Str("model", settings.Model).
		Str("key_source", string(settings.KeySource)).
		Str("config", settings.Path).
		Dur("timeout", settings.Timeout).
		Msg("resolved settings")

	provider, err := a.deps.NewProvider(settings.Provider, llm.Options{
		Model:    settings.Model,
		Endpoint: settings.Endpoint,
		Timeout:  settings.Timeout,
	})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if c, ok := provider.(io.Closer); ok {
		defer c.Close()
	}

	key, err := a.apiKey(settings, provider.Name())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := provider.Initialize(ctx, key); err != nil {
		return fmt.Errorf("error configuring %s: %w", provider.Name(), err)
	}

	gen := generator.New(provider,
		generator.WithProgress(a.deps.Progress),
		generator.WithLogger(a.log),
	)
	if !gen.Generate(ctx, projectPath) {
		return errGenerationFailed
	}
	return nil
}

func (a *app) resolveConfigPath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.DefaultPath(a.env)
}

// saveSettings persists --set-default-provider and --set-api-key. The key is
// stored for --provider, or else for the (possibly just saved) default.
func (a *app) saveSettings(cfgPath string) error {
	if a.setDefaultProvider != "" {
		if err := config.SetDefaultProvider(cfgPath, a.setDefaultProvider); err != nil {
			return fmt.Errorf("saving default provider to %s: %w", cfgPath, err)
		}
		a.log.Info().Str("provider", a.setDefaultProvider).Str("config", cfgPath).Msg("Default provider saved")
	}
	if a.setAPIKey != "" {
		s, err := config.Resolve(config.Input{Env: a.env, Path: cfgPath, Provider: a.provider})
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		for _, w := range s.Warnings {
			a.log.Warn().Msg(w)
		}
		if err := config.SetAPIKey(cfgPath, s.Provider, a.setAPIKey); err != nil {
			return fmt.Errorf("saving API key to %s: %w", cfgPath, err)
		}
		a.log.Info().Str("provider", s.Provider).Str("config", cfgPath).Msgf("API key saved to %s", cfgPath)
	}
	return nil
}

// apiKey returns the resolved key, asking for one and saving it when none was found.
func (a *app) apiKey(s config.Settings, label string) (string, error) {
	if s.KeySource == config.SourceEnv {
		a.log.Info().Msgf("Using API key from %s environment variable.", s.KeyEnvVar)
	}
	if s.APIKey != "" {
		return s.APIKey, nil
	}
	fmt.Fprintf(a.deps.Stdout, "%s API key not found in %s or the configuration file.\n", label, s.KeyEnvVar)
	key, err := readAPIKey(a.deps.Stdin, a.deps.Stdout, label)
	if err != nil {
		return "", fmt.Errorf("configuration error: %w; set %s or run with --set-api-key", err, s.KeyEnvVar)
	}
	if err := config.SetAPIKey(s.Path, s.Provider, key); err != nil {
		a.log.Warn().Err(err).Str("config", s.Path).Msg("Could not save API key")
	} else {
		a.log.Info().Msgf("API key saved to %s", s.Path)
	}
	return key, nil
}

func validateDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("path '%s' is not a valid directory", abs)
	}
	return abs, nil
}
