// Command import-words loads an xlsx word list into a user's vocabulary, or
// exports it with -export. Rows are headword, definitions separated by ";",
// description, part of speech; an optional header row is skipped.
//
// Flags:
//
//	-user    learner UUID (required)
//	-file    path of the workbook to read or write (required)
//	-export  write the user's words to -file instead of importing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres/word"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/app"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/config"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/vocabulary"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

func main() {
	userFlag := flag.String("user", "", "learner UUID")
	fileFlag := flag.String("file", "", "xlsx workbook path")
	exportFlag := flag.Bool("export", false, "export instead of import")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil || userID == uuid.Nil || *fileFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = ctxutil.WithUserID(ctx, userID)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := vocabulary.NewService(logger, word.New(pool), postgres.NewTxManager(pool), clockwork.NewRealClock(), cfg.Vocabulary)

	if *exportFlag {
		err = export(ctx, svc, *fileFlag)
	} else {
		err = importFile(ctx, logger, svc, *fileFlag)
	}
	if err != nil {
		logger.Error("import-words failed", slog.String("file", *fileFlag), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func importFile(ctx context.Context, logger *slog.Logger, svc *vocabulary.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := svc.ImportSheet(ctx, f)
	if err != nil {
		return err
	}
	for _, e := range report.Errors {
		logger.Warn("row skipped",
			slog.Int("row", e.Row),
			slog.String("headword", e.Headword),
			slog.String("reason", e.Reason),
		)
	}
	logger.Info("import finished",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
	)
	return nil
}

func export(ctx context.Context, svc *vocabulary.Service, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()
	return svc.ExportSheet(ctx, f)
}
