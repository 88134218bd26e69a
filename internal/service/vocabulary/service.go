package vocabulary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/config"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByID(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error)
	GetByHeadword(ctx context.Context, userID uuid.UUID, headwordNormalized string) (*domain.Word, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Word, int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Word, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, word *domain.Word) (*domain.Word, error)
	Update(ctx context.Context, word *domain.Word) (*domain.Word, error)
	Delete(ctx context.Context, userID, wordID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service manages a user's word list.
type Service struct {
	log   *slog.Logger
	words wordRepo
	tx    txManager
	clock clockwork.Clock
	cfg   config.VocabularyConfig
}

// NewService creates a new vocabulary service.
func NewService(logger *slog.Logger, words wordRepo, tx txManager, clock clockwork.Clock, cfg config.VocabularyConfig) *Service {
	return &Service{
		log:   logger.With("service", "vocabulary"),
		words: words,
		tx:    tx,
		clock: clock,
		cfg:   cfg,
	}
}
