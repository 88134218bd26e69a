package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Word is a vocabulary item owned by a user. The drill engine only reads it.
type Word struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Headword           string
	HeadwordNormalized string
	Definitions        []string
	Description        *string
	PartOfSpeech       *PartOfSpeech
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Prompt returns the side of the word shown to the user.
func (w Word) Prompt(d Direction) string {
	if d == DirectionDefinitionsToHeadword {
		return strings.Join(w.Definitions, ", ")
	}
	return w.Headword
}

// Answers returns the accepted answers in display order.
func (w Word) Answers(d Direction) []string {
	if d == DirectionDefinitionsToHeadword {
		return []string{w.Headword}
	}
	return append([]string(nil), w.Definitions...)
}

// PrimaryAnswer is the option offered for the word in multiple choice.
func (w Word) PrimaryAnswer(d Direction) string {
	if d == DirectionDefinitionsToHeadword || len(w.Definitions) == 0 {
		return w.Headword
	}
	return w.Definitions[0]
}
