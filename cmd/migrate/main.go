// Command migrate applies the embedded SQL migrations.
//
// Usage:
//
//	migrate [up|down|status|version]
//
// The database comes from the application config (DATABASE_DSN).
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/app"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/config"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/migrations"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, logger, cfg.Database.DSN, command); err != nil {
		logger.Error("migrate failed", slog.String("command", command), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, dsn, command string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		for _, r := range results {
			logger.Info("migration applied", slog.String("source", r.Source.Path), slog.Duration("duration", r.Duration))
		}
		return err
	case "down":
		r, err := provider.Down(ctx)
		if r != nil {
			logger.Info("migration rolled back", slog.String("source", r.Source.Path))
		}
		return err
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			logger.Info("migration",
				slog.Int64("version", s.Source.Version),
				slog.String("source", s.Source.Path),
				slog.String("state", string(s.State)),
			)
		}
		return nil
	case "version":
		v, err := provider.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		logger.Info("database version", slog.Int64("version", v))
		return nil
	default:
		return fmt.Errorf("unknown command %q (want up, down, status or version)", command)
	}
}
