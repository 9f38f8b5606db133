package main

// Apply the embedded schema migrations:
//   go run ./cmd/migrate
//
// DATABASE_URL picks the dialect: postgres:// goes through pgx, sqlite:// and
// *.db paths through the embedded SQLite driver.

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Configure(telemetry.Options{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		telemetry.Warn("migrate.logger_config_failed", map[string]any{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg.DatabaseURL)
	stop()
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		telemetry.Close()
		os.Exit(1)
	}
	telemetry.Close()
}

func run(ctx context.Context, databaseURL string) error {
	target, err := db.ParseURL(databaseURL)
	if err != nil {
		return err
	}
	sqlDB, err := db.Connect(ctx, databaseURL, db.MigratePool().WithEnv())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, target.Dialect); err != nil {
		return err
	}
	version, err := db.SchemaVersion(ctx, sqlDB, target.Dialect)
	if err != nil {
		return err
	}
	telemetry.Info("migrate.done", map[string]any{"dialect": target.Dialect, "version": version})
	return nil
}
