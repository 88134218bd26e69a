// Package history records finished practice sessions in PostgreSQL. Mistakes
// are stored as a JSONB array.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

const table = "practice_history"

var columns = []string{
	"id", "user_id", "direction", "total_attempts", "correct_count",
	"mistakes", "finished_at", "created_at",
}

// Repo is the PostgreSQL practice history store.
type Repo struct {
	db postgres.Querier
}

// New creates a new history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	Direction     string    `db:"direction"`
	TotalAttempts int       `db:"total_attempts"`
	CorrectCount  int       `db:"correct_count"`
	Mistakes      []byte    `db:"mistakes"`
	FinishedAt    time.Time `db:"finished_at"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r row) toDomain() (domain.PracticeSummary, error) {
	s := domain.PracticeSummary{
		ID:            r.ID,
		UserID:        r.UserID,
		Direction:     domain.Direction(r.Direction),
		TotalAttempts: r.TotalAttempts,
		CorrectCount:  r.CorrectCount,
		FinishedAt:    r.FinishedAt,
		CreatedAt:     r.CreatedAt,
	}
	mistakes, err := unmarshalMistakes(r.Mistakes)
	if err != nil {
		return domain.PracticeSummary{}, fmt.Errorf("history %s: %w", r.ID, err)
	}
	s.Mistakes = mistakes
	return s, nil
}

// Record stores a finished session. A zero ID is replaced with a new one.
func (r *Repo) Record(ctx context.Context, s domain.PracticeSummary) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	mistakes, err := marshalMistakes(s.Mistakes)
	if err != nil {
		return fmt.Errorf("history %s: %w", s.ID, err)
	}

	sql, args, err := postgres.Builder.Insert(table).
		Columns("id", "user_id", "direction", "total_attempts", "correct_count", "mistakes", "finished_at").
		Values(s.ID, s.UserID, s.Direction.String(), s.TotalAttempts, s.CorrectCount, mistakes, s.FinishedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "history", s.ID)
	}
	return nil
}

// ListByUser returns a user's sessions newest first, with the total count.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.PracticeSummary, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder.Select("count(*)").From(table).
		Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	sql, args, err := postgres.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("finished_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}

	out := make([]domain.PracticeSummary, 0, len(rows))
	for _, rw := range rows {
		s, err := rw.toDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, nil
}

// GetByID returns one of a user's sessions, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.PracticeSummary, error) {
	sql, args, err := postgres.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("history %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "history", id)
	}

	s, err := rw.toDomain()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ---------------------------------------------------------------------------
// JSONB helpers
// ---------------------------------------------------------------------------

func marshalMistakes(m []domain.Mistake) ([]byte, error) {
	if m == nil {
		m = []domain.Mistake{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal mistakes: %w", err)
	}
	return b, nil
}

func unmarshalMistakes(b []byte) ([]domain.Mistake, error) {
	if len(b) == 0 {
		return []domain.Mistake{}, nil
	}
	var m []domain.Mistake
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal mistakes: %w", err)
	}
	if m == nil {
		m = []domain.Mistake{}
	}
	return m, nil
}
