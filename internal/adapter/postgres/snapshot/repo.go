// Package snapshot stores serialized practice sessions in PostgreSQL, one
// JSONB row per user. Payloads are opaque to this layer.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// Repo is the PostgreSQL practice snapshot store.
type Repo struct {
	db postgres.Querier
}

// New creates a new snapshot repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const loadSQL = `
SELECT payload FROM practice_snapshots WHERE user_id = $1`

const saveSQL = `
INSERT INTO practice_snapshots (user_id, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE
SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

const deleteSQL = `
DELETE FROM practice_snapshots WHERE user_id = $1`

// Load returns the stored payload, or domain.ErrNotFound.
func (r *Repo) Load(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	var payload []byte
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, loadSQL, userID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %s: %w", userID, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "snapshot", userID)
	}
	return payload, nil
}

// Save upserts the payload for userID.
func (r *Repo) Save(ctx context.Context, userID uuid.UUID, payload []byte) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, saveSQL, userID, payload); err != nil {
		return postgres.MapError(err, "snapshot", userID)
	}
	return nil
}

// Delete removes the payload for userID. Deleting a missing snapshot
// returns domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, userID)
	if err != nil {
		return postgres.MapError(err, "snapshot", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("snapshot %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}
