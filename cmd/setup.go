package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/whataflick/flick/internal/shared"
)

// SetupConfig writes a starter config.toml from the embedded example.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	return r.writePlain("✓ Wrote %s\n", path)
}

// SetupDatabase initializes the local session store and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.config
	if path := cmd.String("config"); path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := shared.LoadConfig(path)
			if err != nil {
				return err
			}
			config = loaded
		}
	}

	r.logger.Infof("initializing session store at %v", config.Storage.Path)

	db, err := shared.NewDatabase(config.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Storage.MaxOpenConns, config.Storage.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	return r.writePlain("✓ Session store ready at %s\n", config.Storage.Path)
}
