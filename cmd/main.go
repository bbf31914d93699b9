package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/tunebox/internal/services"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	ctx := context.Background()

	search := services.NewSearchClient(config.Search.BaseURL, nil, config.Search.RateLimit, logger)
	metadata := services.NewMetadataClient(ctx, config.Provider, nil, logger)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Search:   search,
		Metadata: metadata,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "tunebox",
		Usage:    "Build and play shareable playlists from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
