package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/filestore"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres"
	pghistory "github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres/history"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres/snapshot"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres/word"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/config"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/history"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/practice"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/quiz"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/vocabulary"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/transport/middleware"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/transport/rest"
)

type snapshotStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]byte, error)
	Save(ctx context.Context, userID uuid.UUID, payload []byte) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Run starts the HTTP API and blocks until ctx is canceled or a component
// fails, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, os.Stderr)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("snapshot_backend", cfg.Practice.SnapshotBackend),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()
	g, gctx := errgroup.WithContext(ctx)

	handler, err := buildAPI(gctx, g, cfg, logger, pool, clock)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("application stopped")
	return err
}

// buildAPI wires repositories, services and transport. Background jobs are
// started on g.
func buildAPI(
	ctx context.Context,
	g *errgroup.Group,
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	clock clockwork.Clock,
) (http.Handler, error) {
	words := word.New(pool)
	records := pghistory.New(pool)
	txm := postgres.NewTxManager(pool)

	probes := []rest.Probe{{Name: "database", Check: pool.Ping}}

	var snapshots snapshotStore
	switch cfg.Practice.SnapshotBackend {
	case config.SnapshotBackendFile:
		store, err := filestore.New(logger, cfg.Practice.SnapshotDir, clock)
		if err != nil {
			return nil, err
		}
		snapshots = store
		probes = append(probes, rest.Probe{Name: "snapshots", Check: store.Ping})
		if cfg.Practice.SnapshotMaxAge > 0 {
			g.Go(func() error {
				return sweepSnapshots(ctx, logger, store, clock, cfg.Practice.SnapshotMaxAge)
			})
		}
	default:
		snapshots = snapshot.New(pool)
	}

	practiceSvc, err := practice.NewService(logger, words, records, snapshots, clock, cfg.Practice)
	if err != nil {
		return nil, err
	}
	quizSvc, err := quiz.NewService(logger, words, clock, cfg.Quiz)
	if err != nil {
		return nil, err
	}
	vocabSvc := vocabulary.NewService(logger, words, txm, clock, cfg.Vocabulary)
	historySvc := history.NewService(logger, records)

	global := middleware.Chain(
		middleware.RequestID,
		middleware.Identity,
		middleware.AccessLog(logger),
		middleware.Recover(logger),
		middleware.CORS(cfg.CORS),
	)

	var api middleware.Middleware
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, clock)
		api = limiter.Middleware
		g.Go(func() error { return limiter.Run(ctx) })
	}

	return rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(BuildVersion(), clock, probes...),
		Practice: rest.NewPracticeHandler(practiceSvc, logger),
		Quiz:     rest.NewQuizHandler(quizSvc, logger),
		Words:    rest.NewWordsHandler(vocabSvc, practiceSvc, logger),
		History:  rest.NewHistoryHandler(historySvc, logger),
	}, global, api), nil
}
