package main

// Apply the usage ledger migrations:
//   DATABASE_URL=postgres://... go run ./cmd/migrate

import (
	"context"
	"os"

	"unirise-backend/internal/shared/config"
	"unirise-backend/internal/shared/storage/db"
	"unirise-backend/internal/shared/telemetry"
)

func main() {
	defer telemetry.Sync()
	if err := run(context.Background()); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		telemetry.Sync()
		os.Exit(1)
	}
	telemetry.Info("migrate.done", nil)
}

func run(ctx context.Context) error {
	config.LoadEnvFiles()

	target, err := db.Resolve(os.Getenv("DATABASE_URL"))
	if err != nil {
		return err
	}
	sqlDB, err := db.Connect(ctx, target, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return db.RunMigrations(ctx, sqlDB, target.Dialect)
}
