// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// botCommand runs the Telegram worker
func botCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bot",
		Usage: "Run the Telegram bot until interrupted",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Skip the local history database",
			},
		},
		Action: r.Bot,
	}
}

// resolveCommand resolves free text without touching the playlist
func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve text or a link to a catalog track, without modifying anything",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Resolve,
	}
}

// playlistCommand groups the playlist mutations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Operate on the managed playlist",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Resolve a track and add it to the playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove the best-matching track from the playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Action: r.PlaylistRemove,
			},
			{
				Name:  "contains",
				Usage: "Check whether a track is in the playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Action: r.PlaylistContains,
			},
			{
				Name:  "show",
				Usage: "List the playlist's tracks",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlaylistShow,
			},
		},
	}
}

// statusCommand reports connectivity and playlist metadata
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Check Spotify connectivity and show playlist info",
		Action: r.Status,
	}
}

// historyCommand lists recorded playlist changes
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent playlist changes",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// setupCommand groups one-time initialization steps
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "One-time initialization",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Create a config.toml from the template",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the history database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "token",
				Usage:  "Authorize with Spotify and store the refresh token",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupToken,
			},
		},
	}
}
