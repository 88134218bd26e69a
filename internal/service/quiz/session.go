package quiz

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/answer"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/distractor"
)

var (
	ErrAlreadyStarted  = fmt.Errorf("test already started: %w", domain.ErrConflict)
	ErrNotTesting      = fmt.Errorf("no test in progress: %w", domain.ErrConflict)
	ErrNoResults       = fmt.Errorf("test results not available: %w", domain.ErrConflict)
	ErrAlreadyAnswered = fmt.Errorf("question already answered: %w", domain.ErrConflict)
	ErrNotAnswered     = fmt.Errorf("question not answered yet: %w", domain.ErrConflict)
)

type item struct {
	word     domain.Word
	answered bool
	correct  bool
	answer   string
}

// Session is one user's fixed-length test: SETUP, then TESTING, then
// RESULTS. It lives in memory only.
type Session struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock clockwork.Clock

	phase     domain.QuizPhase
	direction domain.Direction
	mode      domain.InputMode
	pool      []domain.Word
	items     []item
	index     int
	options   []string

	startedAt  time.Time
	finishedAt time.Time
}

// NewSession returns a session in SETUP.
func NewSession(clock clockwork.Clock, rng *rand.Rand) *Session {
	return &Session{
		rng:   rng,
		clock: clock,
		phase: domain.QuizPhaseSetup,
	}
}

// Start samples in.Size words without replacement and enters TESTING.
// An invalid input leaves the session in SETUP untouched.
func (s *Session) Start(words []domain.Word, in StartInput, maxSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.QuizPhaseSetup {
		return ErrAlreadyStarted
	}
	if err := in.Validate(len(words), maxSize); err != nil {
		return err
	}

	perm := s.rng.Perm(len(words))[:in.Size]
	s.items = lo.Map(perm, func(i int, _ int) item { return item{word: words[i]} })
	s.pool = slices.Clone(words)
	s.direction = in.Direction
	s.mode = in.Mode
	s.index = 0
	s.startedAt = s.clock.Now()
	s.finishedAt = time.Time{}
	s.phase = domain.QuizPhaseTesting
	s.buildOptions()
	return nil
}

// Status reports the phase and progress.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Status{
		Phase:    s.phase,
		Index:    s.index,
		Total:    len(s.items),
		Answered: lo.CountBy(s.items, func(it item) bool { return it.answered }),
	}
}

// Question returns the current question.
func (s *Session) Question() (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.QuizPhaseTesting {
		return Question{}, ErrNotTesting
	}

	it := s.items[s.index]
	q := Question{
		Index:    s.index,
		Total:    len(s.items),
		WordID:   it.word.ID,
		Prompt:   it.word.Prompt(s.direction),
		Mode:     s.mode,
		Options:  slices.Clone(s.options),
		Answered: it.answered,
	}
	if it.answered {
		q.Correct = it.correct
		q.Answer = it.answer
		q.Accepted = it.word.Answers(s.direction)
	}
	return q, nil
}

// Submit grades the answer to the current question. Each question takes
// exactly one answer. In MULTIPLE_CHOICE the answer must be one of the
// offered options.
func (s *Session) Submit(in SubmitInput) (Graded, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.QuizPhaseTesting {
		return Graded{}, ErrNotTesting
	}
	it := &s.items[s.index]
	if it.answered {
		return Graded{}, ErrAlreadyAnswered
	}

	given := answer.Clean(in.Answers)
	if len(given) == 0 {
		return Graded{}, domain.NewValidationError("answers", "at least one non-empty answer required")
	}
	if s.mode == domain.InputModeMultipleChoice {
		if len(given) != 1 {
			return Graded{}, domain.NewValidationError("answers", "exactly one option must be chosen")
		}
		if !slices.Contains(s.options, domain.NormalizeText(given[0])) {
			return Graded{}, domain.NewValidationError("answers", "must be one of the offered options")
		}
	}

	ok, err := answer.Match(s.direction, given, it.word)
	if err != nil {
		return Graded{}, fmt.Errorf("match answer: %w", err)
	}

	it.answered = true
	it.correct = ok
	it.answer = answer.Join(given)

	return Graded{
		Correct:  ok,
		Answer:   it.answer,
		Accepted: it.word.Answers(s.direction),
		Last:     s.index == len(s.items)-1,
	}, nil
}

// Next moves past an answered question. After the last one the session
// enters RESULTS instead.
func (s *Session) Next() (domain.QuizPhase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.QuizPhaseTesting {
		return s.phase, ErrNotTesting
	}
	if !s.items[s.index].answered {
		return s.phase, ErrNotAnswered
	}

	if s.index == len(s.items)-1 {
		s.phase = domain.QuizPhaseResults
		s.finishedAt = s.clock.Now()
		s.options = nil
		return s.phase, nil
	}

	s.index++
	s.buildOptions()
	return s.phase, nil
}

// Results returns the review of a finished test.
func (s *Session) Results() (Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.QuizPhaseResults {
		return Results{}, ErrNoResults
	}

	r := Results{
		Direction:  s.direction,
		Mode:       s.mode,
		Total:      len(s.items),
		StartedAt:  s.startedAt,
		FinishedAt: s.finishedAt,
		Duration:   s.finishedAt.Sub(s.startedAt),
	}
	for _, it := range s.items {
		if it.correct {
			r.Correct++
		}
		r.Items = append(r.Items, ResultItem{
			WordID:   it.word.ID,
			Prompt:   it.word.Prompt(s.direction),
			Accepted: it.word.Answers(s.direction),
			Answer:   it.answer,
			Correct:  it.correct,
		})
	}
	return r, nil
}

// Retake drops all test state and returns to SETUP. It also abandons a
// test that is still running.
func (s *Session) Retake() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = domain.QuizPhaseSetup
	s.direction = ""
	s.mode = ""
	s.pool = nil
	s.items = nil
	s.index = 0
	s.options = nil
	s.startedAt = time.Time{}
	s.finishedAt = time.Time{}
}

func (s *Session) buildOptions() {
	s.options = nil
	if s.mode != domain.InputModeMultipleChoice {
		return
	}
	s.options = distractor.Build(s.rng, s.items[s.index].word, s.pool, s.direction)
}
