package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mistake is an incorrect practice answer. Appended, never edited.
type Mistake struct {
	Prompt   string   `json:"prompt"`
	Answer   string   `json:"answer"`
	Accepted []string `json:"accepted"`
}

// PracticeSummary is the record of a finished free-practice session.
type PracticeSummary struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Direction     Direction
	TotalAttempts int
	CorrectCount  int
	Mistakes      []Mistake
	FinishedAt    time.Time
	CreatedAt     time.Time
}

// Accuracy returns the share of correct attempts in [0, 1].
func (s PracticeSummary) Accuracy() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.TotalAttempts)
}
