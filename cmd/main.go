package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/castilloh/bandolera/internal/services"
	"github.com/castilloh/bandolera/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.Catalog
	if config.ValidateCatalog() == nil {
		svc, err := services.NewSpotifyCatalog(services.SpotifyCatalogOpts{
			ClientID:     config.Credentials.Spotify.ClientID,
			ClientSecret: config.Credentials.Spotify.ClientSecret,
			RefreshToken: config.Credentials.Spotify.RefreshToken,
			PlaylistID:   config.Playlist.ID,
			Market:       config.Playlist.Market,
		})
		if err == nil {
			catalog = svc
		} else {
			logger.Warn("failed to create Spotify client", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "bandolera",
		Usage:    "Keep one Spotify playlist in sync with Telegram chat requests",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
