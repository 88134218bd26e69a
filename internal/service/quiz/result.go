package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// Question is the current test question.
type Question struct {
	Index    int
	Total    int
	WordID   uuid.UUID
	Prompt   string
	Mode     domain.InputMode
	Options  []string
	Answered bool
	Correct  bool
	Answer   string
	Accepted []string
}

// Graded is the outcome of one submitted answer.
type Graded struct {
	Correct  bool
	Answer   string
	Accepted []string
	Last     bool
}

// ResultItem is one reviewed question.
type ResultItem struct {
	WordID   uuid.UUID
	Prompt   string
	Accepted []string
	Answer   string
	Correct  bool
}

// Results is the immutable review of a finished test.
type Results struct {
	Direction  domain.Direction
	Mode       domain.InputMode
	Total      int
	Correct    int
	Items      []ResultItem
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
}

// Score returns the share of correct answers in [0, 1].
func (r Results) Score() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Status is the current phase with test progress.
type Status struct {
	Phase    domain.QuizPhase
	Index    int
	Total    int
	Answered int
}
