package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// SQLSTATE codes raised by the schema's constraints.
const (
	codeUniqueViolation     = "23505" // words (user_id, headword_normalized)
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

var constraintErrors = map[string]error{
	codeUniqueViolation:     domain.ErrAlreadyExists,
	codeForeignKeyViolation: domain.ErrNotFound,
	codeCheckViolation:      domain.ErrValidation,
}

// MapError prefixes err with the entity and id and swaps pgx errors for
// domain sentinels. Context errors keep their identity.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", entity, id, sentinelFor(err))
}

func sentinelFor(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel, ok := constraintErrors[pgErr.Code]; ok {
			return sentinel
		}
	}
	return err
}
