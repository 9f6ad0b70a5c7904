// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// rootCommand builds the tdx application. Flags declared here are inherited by every subcommand.
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tdx",
		Usage:   "Control torrent daemons from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "daemon",
				Aliases: []string{"d"},
				Usage:   "Name of the configured daemon to use (default: first)",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Seed for the dummy daemon's sample torrents (0 uses the clock)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Before,
		After:    r.Close,
		Commands: r.register(),
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration to --config",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// torrentsCommand handles torrent operations against the selected daemon
func torrentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "torrents",
		Aliases: []string{"t"},
		Usage:   "Torrent operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List torrents",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json, yaml, csv, markdown",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:  "label",
						Usage: "Only show torrents with this label",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only show torrents with this status",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout",
					},
				},
				Action: r.TorrentsList,
			},
			{
				Name:   "labels",
				Usage:  "List labels",
				Action: r.TorrentsLabels,
			},
			{
				Name:      "details",
				Usage:     "Show a torrent with its trackers",
				Arguments: []cli.Argument{&cli.StringArg{Name: "hash"}},
				Action:    r.TorrentsDetails,
			},
			{
				Name:      "files",
				Usage:     "List the files of a torrent",
				Arguments: []cli.Argument{&cli.StringArg{Name: "hash"}},
				Action:    r.TorrentsFiles,
			},
			{
				Name:  "add",
				Usage: "Add a torrent from a file, URL or magnet link",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "Path or file:// URI of a .torrent file"},
					&cli.StringFlag{Name: "url", Usage: "URL of a .torrent file"},
					&cli.StringFlag{Name: "title", Usage: "Title for a torrent added by URL"},
					&cli.StringFlag{Name: "magnet", Usage: "Magnet link"},
				},
				Action: r.TorrentsAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove torrents",
				ArgsUsage: "<hash>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "with-data", Usage: "Also delete downloaded data"},
				},
				Action: r.TorrentsRemove,
			},
			{
				Name:      "pause",
				Usage:     "Pause torrents",
				ArgsUsage: "<hash>...",
				Flags:     []cli.Flag{allFlag()},
				Action:    r.TorrentsPause,
			},
			{
				Name:      "resume",
				Usage:     "Resume paused torrents",
				ArgsUsage: "<hash>...",
				Flags:     []cli.Flag{allFlag()},
				Action:    r.TorrentsResume,
			},
			{
				Name:      "start",
				Usage:     "Start queued torrents",
				ArgsUsage: "<hash>...",
				Flags:     []cli.Flag{allFlag()},
				Action:    r.TorrentsStart,
			},
			{
				Name:      "stop",
				Usage:     "Stop torrents",
				ArgsUsage: "<hash>...",
				Flags:     []cli.Flag{allFlag()},
				Action:    r.TorrentsStop,
			},
			{
				Name:  "label",
				Usage: "Set the label of a torrent",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "hash"},
					&cli.StringArg{Name: "label"},
				},
				Action: r.TorrentsLabel,
			},
			{
				Name:      "priority",
				Usage:     "Set the priority (off, low, normal, high) of files in a torrent",
				ArgsUsage: "<hash> <priority> <file-key>...",
				Action:    r.TorrentsPriority,
			},
			{
				Name:  "rates",
				Usage: "Set the global transfer rate limits in bytes per second (0 removes a limit)",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "up", Usage: "Upload limit"},
					&cli.Int64Flag{Name: "down", Usage: "Download limit"},
				},
				Action: r.TorrentsRates,
			},
			{
				Name:      "trackers",
				Usage:     "Replace the trackers of a torrent",
				ArgsUsage: "<hash> <url>...",
				Action:    r.TorrentsTrackers,
			},
			{
				Name:  "location",
				Usage: "Move the data of a torrent",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "hash"},
					&cli.StringArg{Name: "dir"},
				},
				Action: r.TorrentsLocation,
			},
			{
				Name:      "recheck",
				Usage:     "Force a hash check of torrents",
				ArgsUsage: "<hash>...",
				Action:    r.TorrentsRecheck,
			},
			{
				Name:  "history",
				Usage: "Show recently executed tasks",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of tasks to show", Value: 20},
					&cli.StringFlag{Name: "hash", Usage: "Only show tasks for this torrent"},
					&cli.BoolFlag{Name: "all-daemons", Usage: "Include tasks of every daemon"},
					&cli.DurationFlag{Name: "prune", Usage: "Delete tasks older than this duration first"},
				},
				Action: r.TorrentsHistory,
			},
		},
	}
}

func allFlag() cli.Flag {
	return &cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Apply to every torrent"}
}

// daemonsCommand lists configured daemons
func daemonsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "daemons",
		Usage: "Configured daemons",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List configured daemons and available adapters",
				Action:  r.DaemonsList,
			},
		},
	}
}

// websearchCommand manages websearch sites
func websearchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "websearch",
		Aliases: []string{"ws"},
		Usage:   "Search torrent sites in the browser",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List websearch sites",
				Action:  r.WebsearchList,
			},
			{
				Name:  "add",
				Usage: "Add a site; %s in the URL is replaced by the query",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Display name (default: host of the URL)"},
				},
				Action: r.WebsearchAdd,
			},
			{
				Name:  "rename",
				Usage: "Rename a site",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.WebsearchRename,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a site",
				Arguments: []cli.Argument{&cli.StringArg{Name: "key"}},
				Action:    r.WebsearchRemove,
			},
			{
				Name:      "open",
				Usage:     "Open a search in the browser",
				ArgsUsage: "<query>...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "Site to search (default: first)"},
					&cli.BoolFlag{Name: "print", Usage: "Print the URL instead of opening it"},
				},
				Action: r.WebsearchOpen,
			},
		},
	}
}

// statsCommand reports daemon state and the task metrics of this invocation
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show daemon statistics and task metrics",
		Action: r.Stats,
	}
}

// serveCommand runs the HTTP service for scripts and Prometheus scrapes
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve torrents as JSON and task metrics over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Address to listen on", Value: "127.0.0.1:9092"},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive torrent management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for the selected daemon",
		Action:  r.TUI,
	}
}
