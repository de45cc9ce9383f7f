package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JPLeopoldino/readmai-cli/internal/cli"
	"github.com/JPLeopoldino/readmai-cli/internal/progress"
)

// version is set with -ldflags at build time.
var version = "dev"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).Level(zerolog.InfoLevel)
	_ = godotenv.Load()

	os.Exit(cli.Run(os.Args[1:], cli.Deps{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Environ:  os.Environ(),
		Logger:   log.Logger,
		Progress: progress.NewTerminal(os.Stderr),
		Version:  version,
	}))
}
