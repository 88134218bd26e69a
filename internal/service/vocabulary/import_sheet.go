package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

// ImportSheet adds the words of an xlsx workbook to the caller's list.
// Invalid rows, duplicates within the file and headwords the user already
// has are skipped and reported. Accepted rows are written in one transaction.
func (s *Service) ImportSheet(ctx context.Context, r io.Reader) (*ImportReport, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	rows, err := readSheet(r, s.cfg.MaxImportRows)
	if err != nil {
		return nil, err
	}

	count, err := s.words.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}

	report := &ImportReport{}
	skip := func(row sheetRow, reason string) {
		report.Skipped++
		report.Errors = append(report.Errors, ImportError{Row: row.Row, Headword: row.Headword, Reason: reason})
	}
	seen := make(map[string]bool)
	now := s.clock.Now().UTC()

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, row := range rows {
			word, reason := s.rowToWord(userID, row)
			if reason != "" {
				skip(row, reason)
				continue
			}
			if seen[word.HeadwordNormalized] {
				skip(row, "duplicate within import")
				continue
			}
			seen[word.HeadwordNormalized] = true

			_, getErr := s.words.GetByHeadword(txCtx, userID, word.HeadwordNormalized)
			if getErr == nil {
				skip(row, "word already exists")
				continue
			}
			if !errors.Is(getErr, domain.ErrNotFound) {
				return fmt.Errorf("check duplicate: %w", getErr)
			}

			if count+report.Imported >= s.cfg.MaxWordsPerUser {
				skip(row, "word limit reached")
				continue
			}
			// Distinct timestamps keep the sheet's row order as creation order.
			word.CreatedAt = now.Add(time.Duration(report.Imported) * time.Microsecond)
			word.UpdatedAt = word.CreatedAt
			if _, createErr := s.words.Create(txCtx, word); createErr != nil {
				return fmt.Errorf("create word (row %d): %w", row.Row, createErr)
			}
			report.Imported++
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "words imported",
		slog.String("user_id", userID.String()),
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}

// ExportSheet writes the caller's whole list as an xlsx workbook that
// ImportSheet can read back.
func (s *Service) ExportSheet(ctx context.Context, w io.Writer) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	words, err := s.words.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list words: %w", err)
	}
	return writeSheet(w, words)
}

func (s *Service) rowToWord(userID uuid.UUID, row sheetRow) (*domain.Word, string) {
	in := CreateInput{
		Headword:    row.Headword,
		Definitions: row.Definitions,
		Description: row.Description,
	}
	if row.PartOfSpeech != "" {
		pos, ok := domain.ParsePartOfSpeech(row.PartOfSpeech)
		if !ok {
			return nil, "invalid part of speech"
		}
		in.PartOfSpeech = &pos
	}

	if err := in.Validate(s.cfg.MaxDefinitions); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) && len(ve.Errors) > 0 {
			return nil, ve.Errors[0].Field + ": " + ve.Errors[0].Message
		}
		return nil, err.Error()
	}

	return &domain.Word{
		ID:                 uuid.New(),
		UserID:             userID,
		Headword:           row.Headword,
		HeadwordNormalized: domain.NormalizeText(row.Headword),
		Definitions:        cleanDefinitions(row.Definitions),
		Description:        row.Description,
		PartOfSpeech:       in.PartOfSpeech,
	}, ""
}
