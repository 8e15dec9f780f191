package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytt/internal/shared"
	"github.com/desertthunder/ytt/internal/transcript"
	"github.com/urfave/cli/v3"
)

// loadStartupConfig reads the config file at path when one is present,
// falling back to defaults otherwise. A file that exists but does not
// parse is reported and skipped rather than aborting the run.
func loadStartupConfig(logger *log.Logger, path string) *shared.Config {
	if _, err := os.Stat(path); err != nil {
		return shared.DefaultConfig()
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return shared.DefaultConfig()
	}

	return config
}

func main() {
	logger := shared.NewLogger(nil)
	config := loadStartupConfig(logger, "config.toml")

	// Probe the transcript backend before any argument handling. An
	// unresolvable backend short-circuits the run with a fixed failure
	// envelope; this is the only path that exits non-zero.
	provider, err := transcript.Lookup(config.Transcript.Backend, config.Transcript)
	if err != nil {
		logger.Error("transcript backend unavailable", "backend", config.Transcript.Backend, "error", err)
		if err := json.NewEncoder(os.Stdout).Encode(transcript.Fail("youtube-transcript-api not installed")); err != nil {
			logger.Error("failed to write envelope", "error", err)
		}
		os.Exit(1)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Provider: provider,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:      "ytt",
		Usage:     "Fetch YouTube video transcripts as JSON",
		Version:   "0.2.0",
		ArgsUsage: "<url-or-id>",
		Flags:     fetchFlags(),
		Action:    runner.Fetch,
		Commands:  runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
