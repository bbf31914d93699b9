// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to configuration file",
	Value:   "config.toml",
}

// playlistCommand handles playlist building and persistence operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Build, save, and inspect playlists",
		Commands: []*cli.Command{
			{
				Name:  "artist",
				Usage: "Build a playlist from an artist's top tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the playlist locally",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlaylistArtist,
			},
			{
				Name:  "album",
				Usage: "Build a playlist from an album listing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Album artist",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Album name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the playlist locally",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlaylistAlbum,
			},
			{
				Name:  "similar",
				Usage: "Build a playlist of songs similar to a track",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Track artist",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "track",
						Usage:    "Track title",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of similar tracks",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the playlist locally",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlaylistSimilar,
			},
			{
				Name:   "list",
				Usage:  "List saved playlists",
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show a saved playlist and its songs",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "export",
				Usage: "Export a saved playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, or text",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory path",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a saved playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Action: r.PlaylistDelete,
			},
		},
	}
}

// resolveCommand resolves a song to a playable video id
func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve a song to a playable video",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "title"},
			&cli.StringArg{Name: "artist"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "url",
				Usage: "Print the watch URL instead of the id",
				Value: true,
			},
		},
		Action: r.Resolve,
	}
}

// historyCommand inspects recorded playlist views
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recently viewed playlists",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries",
				Value: 20,
			},
		},
		Action: r.History,
	}
}

// setupCommand handles setup operations for the database and config.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration and database",
		Flags:  []cli.Flag{configFlag},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive playback.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "play",
		Aliases: []string{"tui"},
		Usage:   "Play a playlist interactively",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "target"},
		},
		Action: r.TUI,
	}
}
