package cmd

import (
	"log/slog"

	"github.com/templui/resumebook/internal/app"
	"github.com/templui/resumebook/internal/config"
	"github.com/templui/resumebook/internal/logger"
)

// setup loads config, starts logging and opens the ledger. The returned
// func closes everything and must be deferred.
func setup() (*app.App, func(), error) {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		logger.Flush()
		return nil, nil, err
	}

	cleanup := func() {
		closeErr := a.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
		logger.Flush()
	}
	return a, cleanup, nil
}
