// Package word implements the word repository using PostgreSQL. Queries are
// built with squirrel and scanned with pgxscan.
package word

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/adapter/postgres"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

const table = "words"

var columns = []string{
	"id", "user_id", "headword", "headword_normalized", "definitions",
	"description", "part_of_speech", "created_at", "updated_at",
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID                 uuid.UUID `db:"id"`
	UserID             uuid.UUID `db:"user_id"`
	Headword           string    `db:"headword"`
	HeadwordNormalized string    `db:"headword_normalized"`
	Definitions        []string  `db:"definitions"`
	Description        *string   `db:"description"`
	PartOfSpeech       *string   `db:"part_of_speech"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Word {
	w := domain.Word{
		ID:                 r.ID,
		UserID:             r.UserID,
		Headword:           r.Headword,
		HeadwordNormalized: r.HeadwordNormalized,
		Definitions:        r.Definitions,
		Description:        r.Description,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.PartOfSpeech != nil {
		pos := domain.PartOfSpeech(*r.PartOfSpeech)
		w.PartOfSpeech = &pos
	}
	return w
}

func posValue(p *domain.PartOfSpeech) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a word owned by userID, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
	q := postgres.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"id": wordID, "user_id": userID})
	return r.getOne(ctx, q, wordID)
}

// GetByHeadword looks a word up by its normalized headword.
func (r *Repo) GetByHeadword(ctx context.Context, userID uuid.UUID, headwordNormalized string) (*domain.Word, error) {
	q := postgres.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"user_id": userID, "headword_normalized": headwordNormalized})
	return r.getOne(ctx, q, uuid.Nil)
}

// ListByUser returns all of a user's words in creation order. Ties on
// created_at are broken by id so the order is stable across calls.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Word, error) {
	q := postgres.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at", "id")
	words, err := r.selectWords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list words by user: %w", err)
	}
	return words, nil
}

// List returns one page of a user's words in creation order and the total.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Word, int, error) {
	total, err := r.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	q := postgres.Builder.Select(columns...).From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	words, err := r.selectWords(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	return words, total, nil
}

// CountByUser returns how many words a user owns.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder.Select("count(*)").From(table).
		Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a word. A second word with the same normalized headword for
// the same user fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, w *domain.Word) (*domain.Word, error) {
	q := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(w.ID, w.UserID, w.Headword, w.HeadwordNormalized, w.Definitions,
			w.Description, posValue(w.PartOfSpeech), w.CreatedAt, w.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))
	return r.getOne(ctx, q, w.ID)
}

// Update replaces the editable fields of a word.
func (r *Repo) Update(ctx context.Context, w *domain.Word) (*domain.Word, error) {
	q := postgres.Builder.Update(table).
		Set("headword", w.Headword).
		Set("headword_normalized", w.HeadwordNormalized).
		Set("definitions", w.Definitions).
		Set("description", w.Description).
		Set("part_of_speech", posValue(w.PartOfSpeech)).
		Set("updated_at", w.UpdatedAt).
		Where(squirrel.Eq{"id": w.ID, "user_id": w.UserID}).
		Suffix("RETURNING " + strings.Join(columns, ", "))
	return r.getOne(ctx, q, w.ID)
}

// Delete removes a word. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, userID, wordID uuid.UUID) error {
	sql, args, err := postgres.Builder.Delete(table).
		Where(squirrel.Eq{"id": wordID, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "word", wordID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", wordID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, q squirrel.Sqlizer, id uuid.UUID) (*domain.Word, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "word", id)
	}

	w := dst.toDomain()
	return &w, nil
}

func (r *Repo) selectWords(ctx context.Context, q squirrel.SelectBuilder) ([]domain.Word, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, err
	}

	words := make([]domain.Word, len(rows))
	for i, rw := range rows {
		words[i] = rw.toDomain()
	}
	return words, nil
}
