package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/subwatch/internal/config"
	"github.com/Veraticus/subwatch/internal/service"
	"github.com/Veraticus/subwatch/internal/storage"
)

// initStorage opens the ledger database and brings its schema current.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// logNotifier satisfies service.Notifier for the CLI, where "notify
// other consumers" is just a structured log line. Hosts embedding the
// pipeline wire their own implementation.
type logNotifier struct{}

func (logNotifier) DataChanged(_ context.Context, reason string) {
	slog.Info("Data changed", "reason", reason)
}
