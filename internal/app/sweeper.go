package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// snapshotSweepInterval is how often stale practice snapshot files are
// looked for.
const snapshotSweepInterval = time.Hour

type snapshotCleaner interface {
	Cleanup(ctx context.Context, maxAge time.Duration) (int, error)
}

// sweepSnapshots removes snapshots untouched for maxAge, once at start and
// then every snapshotSweepInterval, until ctx is done. Failures are logged
// and retried on the next tick.
func sweepSnapshots(ctx context.Context, logger *slog.Logger, store snapshotCleaner, clock clockwork.Clock, maxAge time.Duration) error {
	log := logger.With("job", "snapshot_sweep")
	ticker := clock.NewTicker(snapshotSweepInterval)
	defer ticker.Stop()

	for {
		removed, err := store.Cleanup(ctx, maxAge)
		switch {
		case err != nil && ctx.Err() == nil:
			log.WarnContext(ctx, "snapshot cleanup failed", slog.String("error", err.Error()))
		case removed > 0:
			log.InfoContext(ctx, "stale snapshots removed", slog.Int("removed", removed))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}
	}
}
