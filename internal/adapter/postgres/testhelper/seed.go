package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// SeedWord inserts a word for userID. Words seeded in sequence get strictly
// increasing created_at values.
func SeedWord(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, headword string, definitions ...string) domain.Word {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	w := domain.Word{
		ID:                 uuid.New(),
		UserID:             userID,
		Headword:           headword,
		HeadwordNormalized: domain.NormalizeText(headword),
		Definitions:        definitions,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO words (id, user_id, headword, headword_normalized, definitions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.UserID, w.Headword, w.HeadwordNormalized, w.Definitions, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord %q: %v", headword, err)
	}
	time.Sleep(time.Millisecond)
	return w
}
