package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytt/internal/repositories"
	"github.com/desertthunder/ytt/internal/shared"
	"github.com/urfave/cli/v3"
)

// openCacheDB opens the configured cache database with migrations applied.
func (r *Runner) openCacheDB() (*repositories.TranscriptRepository, func(), error) {
	db, err := shared.NewDatabase(r.config.Cache.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Cache.MaxOpenConns, r.config.Cache.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewTranscriptRepository(db), func() { db.Close() }, nil
}

// CacheList prints every cached transcript as JSON.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer closeDB()

	records, err := repo.List()
	if err != nil {
		return fmt.Errorf("failed to list cached transcripts: %w", err)
	}

	r.logger.Info("listing cached transcripts", "count", len(records))

	if records == nil {
		records = []repositories.Record{}
	}

	return r.writeJSON(records, cmd.Bool("pretty"))
}

// CacheClear soft-deletes every cached transcript.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer closeDB()

	cleared, err := repo.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Info("cleared transcript cache", "count", cleared)

	return r.writePlainln("✓ Cleared %d cached transcripts", cleared)
}
