package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytt/internal/repositories"
	"github.com/desertthunder/ytt/internal/shared"
	"github.com/desertthunder/ytt/internal/transcript"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	provider transcript.Provider
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Provider transcript.Provider
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:   opts.Config,
		provider: opts.Provider,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		cacheCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Fetch resolves a video ID from the positional argument, retrieves the
// transcript, and prints the envelope. Every outcome is reported through
// the envelope on stdout; the action itself fails only on output errors.
//
// An absent argument and an empty one are distinct: only a run with no
// positional argument at all is a missing argument.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")

	if cmd.Args().Len() == 0 {
		return r.writeJSON(transcript.Fail("No video URL or ID provided"), pretty)
	}

	videoID, ok := transcript.ExtractVideoID(cmd.Args().First())
	if !ok {
		return r.writeJSON(transcript.Fail("Invalid YouTube URL or ID"), pretty)
	}

	r.logger.Debug("resolved video id", "video_id", videoID)

	config := r.configFor(cmd)

	provider, err := r.providerFor(cmd, config)
	if err != nil {
		return r.writeJSON(transcript.Fail(err.Error()), pretty)
	}

	cache, closeCache := r.openCache(cmd, config)
	defer closeCache()

	fetcher := transcript.NewFetcher(provider, cache, r.logger)
	return r.writeJSON(fetcher.Fetch(ctx, videoID), pretty)
}

// configFor returns the runner's config, replaced when the --config
// flag names a readable file. Load failures fall back to the startup
// config with a diagnostic.
func (r *Runner) configFor(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using startup config", "path", path, "error", err)
		return r.config
	}

	return config
}

// providerFor returns the runner's provider, rebuilt when the
// --languages flag or a --config file overrides the transcript settings.
func (r *Runner) providerFor(cmd *cli.Command, config *shared.Config) (transcript.Provider, error) {
	cfg := config.Transcript

	if languages := cmd.String("languages"); languages != "" {
		cfg.Languages = nil
		for _, lang := range strings.Split(languages, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				cfg.Languages = append(cfg.Languages, lang)
			}
		}
		if len(cfg.Languages) == 0 {
			return nil, fmt.Errorf("%w: languages must name at least one language code", shared.ErrInvalidFlag)
		}
		return transcript.Lookup(cfg.Backend, cfg)
	}

	// The startup probe validated r.provider for the startup backend;
	// only a different configured backend needs a fresh lookup.
	if cfg.Backend != r.config.Transcript.Backend {
		return transcript.Lookup(cfg.Backend, cfg)
	}

	return r.provider, nil
}

// openCache opens the transcript cache when enabled by config or the
// --cache flag. The returned closer is safe to call when no cache was
// opened. Cache failures degrade to an uncached fetch.
func (r *Runner) openCache(cmd *cli.Command, config *shared.Config) (transcript.Cache, func()) {
	noop := func() {}

	if !config.Cache.Enabled && !cmd.Bool("cache") {
		return nil, noop
	}

	db, err := shared.NewDatabase(config.Cache.Path)
	if err != nil {
		r.logger.Warn("failed to open cache, fetching uncached", "error", err)
		return nil, noop
	}

	shared.ConfigureDatabase(db, config.Cache.MaxOpenConns, config.Cache.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		r.logger.Warn("failed to migrate cache, fetching uncached", "error", err)
		db.Close()
		return nil, noop
	}

	adapter := repositories.NewCacheAdapter(repositories.NewTranscriptRepository(db))
	return adapter, func() { db.Close() }
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
