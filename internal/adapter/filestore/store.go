// Package filestore keeps practice snapshots as one JSON file per user in a
// local directory, for single-node deployments without PostgreSQL snapshots.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

const ext = ".json"

// Store is a directory of snapshot files named <user id>.json.
type Store struct {
	dir   string
	log   *slog.Logger
	clock clockwork.Clock
}

// New creates dir if needed and returns a store rooted there.
func New(logger *slog.Logger, dir string, clock clockwork.Clock) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Store{dir: dir, log: logger.With("adapter", "filestore"), clock: clock}, nil
}

func (s *Store) path(userID uuid.UUID) string {
	return filepath.Join(s.dir, userID.String()+ext)
}

// Load returns the stored payload, or domain.ErrNotFound.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", userID, err)
	}
	return data, nil
}

// Save writes the payload through a temp file and rename, so readers never
// see a partial file.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, userID.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot %s: %w", userID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", userID, err)
	}
	if err := os.Rename(tmp.Name(), s.path(userID)); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", userID, err)
	}
	return nil
}

// Delete removes the user's file. A missing file returns domain.ErrNotFound.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path(userID)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("snapshot %s: %w", userID, domain.ErrNotFound)
		}
		return fmt.Errorf("delete snapshot %s: %w", userID, err)
	}
	return nil
}

// Cleanup removes snapshot files not written for longer than maxAge and
// returns how many were removed. Unrelated files are left alone.
func (s *Store) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read snapshot dir: %w", err)
	}

	cutoff := s.clock.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		if _, err := uuid.Parse(strings.TrimSuffix(e.Name(), ext)); err != nil {
			continue
		}

		info, err := e.Info()
		if err != nil {
			s.log.WarnContext(ctx, "stat snapshot", slog.String("file", e.Name()), slog.String("error", err.Error()))
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.log.WarnContext(ctx, "remove stale snapshot", slog.String("file", e.Name()), slog.String("error", err.Error()))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.InfoContext(ctx, "stale snapshots removed", slog.Int("count", removed))
	}
	return removed, nil
}

// Ping reports whether the snapshot directory is still present.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("snapshot dir %s is not a directory", s.dir)
	}
	return nil
}
