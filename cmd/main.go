package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/whataflick/flick/internal/repositories"
	"github.com/whataflick/flick/internal/services"
	"github.com/whataflick/flick/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var sessions *repositories.SessionRepository
	if db, err := shared.NewDatabase(config.Storage.Path); err == nil {
		shared.ConfigureDatabase(db, config.Storage.MaxOpenConns, config.Storage.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			logger.Warnf("migrations failed: %v", err)
		}
		sessions = repositories.NewSessionRepository(db)
	} else {
		logger.Warnf("session store unavailable: %v", err)
	}

	token := services.TokenSource(func() string { return "" })
	if sessions != nil {
		token = sessions.Current
	}

	backend := services.NewFlickService(config.API.BaseURL, token, nil)
	posters := services.NewTMDbService(config.TMDb, nil)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Backend:  backend,
		Posters:  posters,
		Sessions: sessions,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "flick",
		Usage:    "Browse, rate, and manage the What a flick?! movie catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Fatal("not logged in, run `flick auth login` first")
		}
		logger.Fatalf("application error: %v", err)
	}
}
