// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// fetchFlags are the flags accepted by the default fetch action.
// Every default preserves the plain `ytt <url-or-id>` behavior.
func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:    "languages",
			Aliases: []string{"l"},
			Usage:   "Comma-separated caption language preference order",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
		&cli.BoolFlag{
			Name:  "cache",
			Usage: "Cache the fetched transcript locally",
		},
	}
}

// cacheCommand handles the local transcript cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and manage the local transcript cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached transcripts",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.CacheList,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached transcripts",
				Action: r.CacheClear,
			},
		},
	}
}

// setupCommand handles setup operations for the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
