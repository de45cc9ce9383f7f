// Package generator turns a project directory into a README.md using a
// text-generation provider.
package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/JPLeopoldino/readmai-cli/internal/markdown"
	"github.com/JPLeopoldino/readmai-cli/internal/progress"
	"github.com/JPLeopoldino/readmai-cli/internal/providers/llm"
	"github.com/JPLeopoldino/readmai-cli/internal/scanner"
)

// ReadmeName is the file written at the project root.
const ReadmeName = "README.md"

// Generator runs scan, prompt, generate, clean and write for one project.
type Generator struct {
	provider llm.Provider
	fs       afero.Fs
	scanner  *scanner.Scanner
	progress progress.Sink
	log      zerolog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithFs sets the filesystem used for scanning and writing.
func WithFs(fs afero.Fs) Option {
	return func(g *Generator) { g.fs = fs }
}

// WithProgress sets the progress sink.
func WithProgress(p progress.Sink) Option {
	return func(g *Generator) { g.progress = p }
}

// WithLogger sets the logger used for user-facing messages.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New returns a Generator that uses an initialized provider.
func New(provider llm.Provider, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		fs:       afero.NewOsFs(),
		progress: progress.Nop{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.scanner = scanner.New(g.fs)
	return g
}

// Generate writes README.md into projectPath and reports whether it did.
// Every failure, including a panicking provider, is logged and turned into
// false; nothing escapes to the caller.
func (g *Generator) Generate(ctx context.Context, projectPath string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			g.progress.Stop()
			g.log.Error().Str("path", projectPath).Msgf("Error generating README: %v", r)
			ok = false
		}
	}()

	structure, err := g.scan(projectPath)
	if err != nil {
		g.log.Error().Err(err).Str("path", projectPath).Msg("Error generating README")
		return false
	}
	if structure == "" {
		g.log.Error().Str("path", projectPath).Msg("Could not find any relevant files in the project path.")
		return false
	}

	name := g.provider.Name()
	g.progress.Start("Generating README with " + name)
	content, err := g.provider.Generate(ctx, buildPrompt(structure))
	if err != nil {
		g.progress.Fail(fmt.Sprintf("Generation failed: %v", err))
		g.log.Error().Err(err).Str("provider", name).Msg("Error generating README")
		return false
	}
	g.progress.Succeed("README content generated.")
	if content == "" {
		g.log.Error().Str("provider", name).Msgf("%s returned an empty response.", name)
		return false
	}

	readmePath := filepath.Join(projectPath, ReadmeName)
	g.log.Info().Str("path", readmePath).Msg("Writing README.md")
	if err := afero.WriteFile(g.fs, readmePath, []byte(markdown.Clean(content)), 0o644); err != nil {
		g.log.Error().Err(err).Str("path", readmePath).Msg("Error writing README")
		return false
	}
	g.log.Info().Str("path", readmePath).Msg("README.md generated successfully.")
	return true
}

func (g *Generator) scan(projectPath string) (string, error) {
	g.progress.Start("Scanning project structure...")
	structure, err := g.scanner.Scan(projectPath)
	if err != nil {
		g.progress.Fail(fmt.Sprintf("Scanning failed: %v", err))
		return "", err
	}
	g.progress.Succeed("Scanning complete.")
	return structure, nil
}
