package filestore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "snapshots")
	s, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)), dir, clockwork.NewFakeClockAt(time.Now()))
	require.NoError(t, err)
	return s, dir
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s, dir := newStore(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := s.Load(ctx, userID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Save(ctx, userID, []byte(`{"version":1}`)))
	require.NoError(t, s.Save(ctx, userID, []byte(`{"version":1,"queue":[]}`)))

	got, err := s.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"queue":[]}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, userID.String()+".json", entries[0].Name())

	require.NoError(t, s.Delete(ctx, userID))
	assert.ErrorIs(t, s.Delete(ctx, userID), domain.ErrNotFound)
}

func TestStore_UsersAreIsolated(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, s.Save(ctx, alice, []byte("a")))
	_, err := s.Load(ctx, bob)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, uuid.New(), []byte("x")), context.Canceled)
	_, err := s.Load(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Cleanup(t *testing.T) {
	t.Parallel()

	s, dir := newStore(t)
	ctx := context.Background()
	fresh, stale := uuid.New(), uuid.New()

	require.NoError(t, s.Save(ctx, fresh, []byte("{}")))
	require.NoError(t, s.Save(ctx, stale, []byte("{}")))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, stale.String()+".json"), old, old))

	foreign := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(foreign, []byte("keep"), 0o644))
	require.NoError(t, os.Chtimes(foreign, old, old))

	removed, err := s.Cleanup(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.Load(ctx, stale)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Load(ctx, fresh)
	assert.NoError(t, err)
	assert.FileExists(t, foreign)
}

func TestStore_Ping(t *testing.T) {
	t.Parallel()

	s, dir := newStore(t)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, s.Ping(context.Background()))

	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o600))
	assert.Error(t, s.Ping(context.Background()))
}
