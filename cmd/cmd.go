// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the stored session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Account name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account, then log in with it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Account name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the profile bound to the stored token",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AuthWhoami,
			},
		},
	}
}

// moviesCommand handles catalog reads
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the catalog with posters and average ratings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent enrichment workers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Poster lookups per second",
						Value: 5,
					},
				},
				Action: r.MoviesList,
			},
			{
				Name:  "inspect",
				Usage: "Show one movie with its review thread",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.MoviesInspect,
			},
		},
	}
}

// reviewCommand handles the caller's reviews
func reviewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Submit and remove reviews",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Review a movie",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "movie",
						Aliases:  []string{"m"},
						Usage:    "Movie ID to review",
						Required: true,
					},
					&cli.FloatFlag{
						Name:     "rating",
						Aliases:  []string{"r"},
						Usage:    "Star rating between 1.0 and 10.0",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "comment",
						Aliases:  []string{"c"},
						Usage:    "Review comment",
						Required: true,
					},
				},
				Action: r.ReviewAdd,
			},
			{
				Name:  "rm",
				Usage: "Delete one of your reviews by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ReviewRm,
			},
		},
	}
}

// userCommand handles the caller's account
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Profile and review history",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your profile and review history",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.UserShow,
			},
			{
				Name:  "export",
				Usage: "Export your review history",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: csv, markdown, or txt",
						Value:   "txt",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
				Action: r.UserExport,
			},
			{
				Name:  "delete",
				Usage: "Delete your account and all of your reviews",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
				Action: r.UserDelete,
			},
		},
	}
}

// adminCommand handles catalog writes
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Catalog administration",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a movie to the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Movie title",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "director",
						Aliases: []string{"d"},
						Usage:   "Directors, comma separated",
					},
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Genres, comma separated",
					},
					&cli.StringFlag{
						Name:    "year",
						Aliases: []string{"y"},
						Usage:   "Release year",
					},
				},
				Action: r.AdminAdd,
			},
			{
				Name:  "update",
				Usage: "Overwrite fields of an existing movie",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Movie ID to update",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Movie title",
					},
					&cli.StringFlag{
						Name:    "director",
						Aliases: []string{"d"},
						Usage:   "Directors, comma separated",
					},
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Genres, comma separated",
					},
					&cli.StringFlag{
						Name:    "year",
						Aliases: []string{"y"},
						Usage:   "Release year",
					},
				},
				Action: r.AdminUpdate,
			},
			{
				Name:  "rm",
				Usage: "Delete a movie by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.AdminRm,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and local storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Path for the new configuration file",
						Value: "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the session store and run migrations",
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

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal interface",
		Action:  r.TUI,
	}
}
