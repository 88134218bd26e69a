package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

type historyRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.PracticeSummary, int, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.PracticeSummary, error)
}

// Service reads finished practice sessions.
type Service struct {
	log     *slog.Logger
	history historyRepo
}

// NewService creates a new history service.
func NewService(logger *slog.Logger, history historyRepo) *Service {
	return &Service{
		log:     logger.With("service", "history"),
		history: history,
	}
}

// ListInput holds paging parameters.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 1 || i.Limit > 100 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 1 and 100"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	return domain.Invalid(errs)
}

// ListResult is one page of summaries, newest first.
type ListResult struct {
	Items      []domain.PracticeSummary
	TotalCount int
}

// List returns the caller's finished sessions, newest first.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	items, total, err := s.history.ListByUser(ctx, userID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return &ListResult{Items: items, TotalCount: total}, nil
}

// Get returns one finished session with its mistakes.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.PracticeSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.history.GetByID(ctx, userID, id)
}
