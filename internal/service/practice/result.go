package practice

import (
	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// Settings are the user's practice preferences.
type Settings struct {
	Direction    domain.Direction
	Order        domain.OrderMode
	AllowReguess bool
}

// Card is the word currently at the front of the queue, as shown to the user.
type Card struct {
	WordID       uuid.UUID
	Prompt       string
	PartOfSpeech *domain.PartOfSpeech
	Description  *string
}

// CheckResult is the graded answer for the current card.
type CheckResult struct {
	WordID   uuid.UUID `json:"word_id"`
	Correct  bool      `json:"correct"`
	Answer   string    `json:"answer"`
	Accepted []string  `json:"accepted"`
}

// Transition reports what Advance or Refresh did to the queue.
type Transition struct {
	Requeued  bool
	Dropped   int
	Completed bool
	Summary   *domain.PracticeSummary
}

// State is a read-only view of a practice session.
type State struct {
	Phase         domain.PracticePhase
	Settings      Settings
	Current       *Card
	Remaining     int
	TotalWords    int
	CorrectCount  int
	TotalAttempts int
	Mistakes      []domain.Mistake
	LastCheck     *CheckResult
	// Summary is the session that just finished; set only in COMPLETED.
	Summary *domain.PracticeSummary
}
