package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

// CreateWord adds a word to the caller's list. Headwords are unique per user
// after normalization.
func (s *Service) CreateWord(ctx context.Context, input CreateInput) (*domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxDefinitions); err != nil {
		return nil, err
	}

	count, err := s.words.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}
	if count >= s.cfg.MaxWordsPerUser {
		return nil, domain.NewValidationError("words", "limit reached")
	}

	normalized := domain.NormalizeText(input.Headword)
	if err := s.ensureUnique(ctx, userID, normalized, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	created, err := s.words.Create(ctx, &domain.Word{
		ID:                 uuid.New(),
		UserID:             userID,
		Headword:           strings.TrimSpace(input.Headword),
		HeadwordNormalized: normalized,
		Definitions:        cleanDefinitions(input.Definitions),
		Description:        input.Description,
		PartOfSpeech:       input.PartOfSpeech,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}

	s.log.InfoContext(ctx, "word created",
		slog.String("user_id", userID.String()),
		slog.String("word_id", created.ID.String()),
	)
	return created, nil
}

// GetWord returns one of the caller's words.
func (s *Service) GetWord(ctx context.Context, wordID uuid.UUID) (*domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.words.GetByID(ctx, userID, wordID)
}

// ListWords returns a page of the caller's words in creation order.
func (s *Service) ListWords(ctx context.Context, input ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.DefaultPageSize
	}

	words, total, err := s.words.List(ctx, userID, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return &ListResult{Words: words, TotalCount: total, Limit: limit, Offset: input.Offset}, nil
}

// UpdateWord replaces the editable fields of a word.
func (s *Service) UpdateWord(ctx context.Context, input UpdateInput) (*domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxDefinitions); err != nil {
		return nil, err
	}

	existing, err := s.words.GetByID(ctx, userID, input.WordID)
	if err != nil {
		return nil, err
	}

	normalized := domain.NormalizeText(input.Headword)
	if normalized != existing.HeadwordNormalized {
		if err := s.ensureUnique(ctx, userID, normalized, existing.ID); err != nil {
			return nil, err
		}
	}

	existing.Headword = strings.TrimSpace(input.Headword)
	existing.HeadwordNormalized = normalized
	existing.Definitions = cleanDefinitions(input.Definitions)
	existing.Description = input.Description
	existing.PartOfSpeech = input.PartOfSpeech
	existing.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.words.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update word: %w", err)
	}
	return updated, nil
}

// DeleteWord removes a word. Practice sessions drop it on their next refresh.
func (s *Service) DeleteWord(ctx context.Context, wordID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.words.Delete(ctx, userID, wordID); err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	s.log.InfoContext(ctx, "word deleted",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()),
	)
	return nil
}

func (s *Service) ensureUnique(ctx context.Context, userID uuid.UUID, normalized string, self uuid.UUID) error {
	found, err := s.words.GetByHeadword(ctx, userID, normalized)
	switch {
	case err == nil:
		if found.ID == self {
			return nil
		}
		return domain.ErrAlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check duplicate: %w", err)
	}
}
