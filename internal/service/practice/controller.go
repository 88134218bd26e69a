package practice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/answer"
)

var (
	// ErrQueueEmpty is returned by Check and Advance when no card is current.
	ErrQueueEmpty = fmt.Errorf("practice queue is empty: %w", domain.ErrConflict)
	// ErrAlreadyChecked is returned by a second Check before Advance.
	ErrAlreadyChecked = fmt.Errorf("current word already checked: %w", domain.ErrConflict)
)

// Controller runs one user's free-practice session.
//
// The queue is FIFO with the current card at the front. Every identifier in
// it refers to a word in items. A correct answer leaves the queue on
// Advance; a missed one is re-appended only when reguessing is allowed.
// Actions are serialized by mu, so a session never sees overlapping
// mutations even when requests for the same user arrive concurrently.
type Controller struct {
	mu sync.Mutex

	log       *slog.Logger
	userID    uuid.UUID
	words     wordRepo
	history   historyRecorder
	snapshots snapshotStore
	clock     clockwork.Clock
	rng       *rand.Rand
	defaults  Settings

	items    map[uuid.UUID]domain.Word
	ordered  []uuid.UUID
	settings Settings

	queue    []uuid.UUID
	correct  int
	attempts int
	mistakes []domain.Mistake
	last     *CheckResult
	finished *domain.PracticeSummary
}

// NewController creates an unloaded controller. Call Load before use.
func NewController(
	logger *slog.Logger,
	userID uuid.UUID,
	words wordRepo,
	history historyRecorder,
	snapshots snapshotStore,
	clock clockwork.Clock,
	rng *rand.Rand,
	defaults Settings,
) *Controller {
	return &Controller{
		log:       logger,
		userID:    userID,
		words:     words,
		history:   history,
		snapshots: snapshots,
		clock:     clock,
		rng:       rng,
		defaults:  defaults,
		settings:  defaults,
		items:     map[uuid.UUID]domain.Word{},
	}
}

// Load fetches the user's words, restores a compatible snapshot if there is
// one and otherwise builds a fresh queue.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	words, err := c.words.ListByUser(ctx, c.userID)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	c.setItems(words)

	restored := c.restore(ctx)
	c.arrange()
	if !restored || (len(c.queue) == 0 && c.attempts == 0) {
		c.queue = slices.Clone(c.ordered)
	}

	c.log.InfoContext(ctx, "practice loaded",
		slog.String("user_id", c.userID.String()),
		slog.Int("words", len(c.items)),
		slog.Int("queue", len(c.queue)),
		slog.Bool("restored", restored),
	)
	return nil
}

// State returns a snapshot view of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Check grades the answers for the current card. The queue is not changed.
func (c *Controller) Check(ctx context.Context, in CheckInput) (CheckResult, error) {
	if err := in.Validate(); err != nil {
		return CheckResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return CheckResult{}, ErrQueueEmpty
	}
	if c.last != nil {
		return CheckResult{}, ErrAlreadyChecked
	}

	w := c.items[c.queue[0]]
	dir := c.settings.Direction

	ok, err := answer.Match(dir, in.Answers, w)
	if err != nil {
		if errors.Is(err, answer.ErrEmpty) {
			return CheckResult{}, domain.NewValidationError("answers", "at least one non-empty answer required")
		}
		return CheckResult{}, fmt.Errorf("match answer: %w", err)
	}

	c.finished = nil
	c.attempts++
	given := answer.Join(in.Answers)
	if ok {
		c.correct++
	} else {
		c.mistakes = append(c.mistakes, domain.Mistake{
			Prompt:   w.Prompt(dir),
			Answer:   given,
			Accepted: w.Answers(dir),
		})
	}

	c.last = &CheckResult{
		WordID:   w.ID,
		Correct:  ok,
		Answer:   given,
		Accepted: w.Answers(dir),
	}
	c.persist(ctx)

	return *c.last, nil
}

// Advance pops the current card. Advancing without a check skips the card.
// When the queue runs out after at least one attempt the session is
// finished and the summary is returned in the transition; when it runs out
// with no attempts the queue is rebuilt.
func (c *Controller) Advance(ctx context.Context) (Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return Transition{}, ErrQueueEmpty
	}

	front := c.queue[0]
	c.queue = c.queue[1:]

	var t Transition
	if c.last != nil && !c.last.Correct && c.settings.AllowReguess {
		c.queue = append(c.queue, front)
		t.Requeued = true
	}
	c.last = nil
	c.finished = nil

	switch {
	case len(c.queue) == 0 && c.attempts > 0:
		return c.complete(ctx, t)
	case len(c.queue) == 0:
		// Every card was skipped: start the next pass instead of idling.
		c.arrange()
		c.queue = slices.Clone(c.ordered)
	}

	c.persist(ctx)
	return t, nil
}

// Reset clears statistics and rebuilds the queue from every loaded word.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked(ctx)
}

// Finish records the session in history and resets it. With no attempts
// nothing is recorded and the summary is nil. A history failure does not
// undo the reset; the summary is returned together with the error.
func (c *Controller) Finish(ctx context.Context) (*domain.PracticeSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.finishLocked(ctx)
}

// UpdateSettings applies preference changes. A direction change only clears
// the last check; an order change discards the session and rebuilds it.
// The resulting state is always written back.
func (c *Controller) UpdateSettings(ctx context.Context, in SettingsInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if in.Direction != nil && *in.Direction != c.settings.Direction {
		c.settings.Direction = *in.Direction
		c.last = nil
	}
	if in.AllowReguess != nil {
		c.settings.AllowReguess = *in.AllowReguess
	}
	if in.Order != nil && *in.Order != c.settings.Order {
		c.settings.Order = *in.Order
		c.resetLocked(ctx)
	}

	c.persist(ctx)
	return nil
}

// Refresh reloads the word list and drops queued words that no longer exist.
func (c *Controller) Refresh(ctx context.Context) (Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	words, err := c.words.ListByUser(ctx, c.userID)
	if err != nil {
		return Transition{}, fmt.Errorf("load words: %w", err)
	}
	c.setItems(words)
	c.arrange()

	var t Transition
	before := len(c.queue)
	if before > 0 && c.last != nil && !c.known(c.queue[0]) {
		c.last = nil
	}
	c.queue = lo.Filter(c.queue, func(id uuid.UUID, _ int) bool { return c.known(id) })
	t.Dropped = before - len(c.queue)

	switch {
	case len(c.queue) == 0 && c.attempts > 0:
		return c.complete(ctx, t)
	case len(c.queue) == 0:
		c.queue = slices.Clone(c.ordered)
	}

	if t.Dropped > 0 {
		c.log.InfoContext(ctx, "practice queue reconciled",
			slog.String("user_id", c.userID.String()),
			slog.Int("dropped", t.Dropped),
		)
	}
	c.persist(ctx)
	return t, nil
}

// ---------------------------------------------------------------------------
// internals (mu held)
// ---------------------------------------------------------------------------

func (c *Controller) complete(ctx context.Context, t Transition) (Transition, error) {
	summary, err := c.finishLocked(ctx)
	t.Completed = true
	t.Summary = summary
	return t, err
}

func (c *Controller) finishLocked(ctx context.Context) (*domain.PracticeSummary, error) {
	if c.attempts == 0 {
		c.resetLocked(ctx)
		return nil, nil
	}

	summary := domain.PracticeSummary{
		ID:            uuid.New(),
		UserID:        c.userID,
		Direction:     c.settings.Direction,
		TotalAttempts: c.attempts,
		CorrectCount:  c.correct,
		Mistakes:      slices.Clone(c.mistakes),
		FinishedAt:    c.clock.Now(),
	}

	recordErr := c.history.Record(ctx, summary)
	c.resetLocked(ctx)
	c.finished = &summary

	if recordErr != nil {
		c.log.ErrorContext(ctx, "record practice history",
			slog.String("user_id", c.userID.String()),
			slog.String("error", recordErr.Error()),
		)
		return &summary, fmt.Errorf("record history: %w", recordErr)
	}

	c.log.InfoContext(ctx, "practice finished",
		slog.String("user_id", c.userID.String()),
		slog.Int("attempts", summary.TotalAttempts),
		slog.Int("correct", summary.CorrectCount),
		slog.Int("mistakes", len(summary.Mistakes)),
	)
	return &summary, nil
}

func (c *Controller) resetLocked(ctx context.Context) {
	c.correct = 0
	c.attempts = 0
	c.mistakes = nil
	c.last = nil
	c.finished = nil
	c.arrange()
	c.queue = slices.Clone(c.ordered)
	c.deleteSnapshot(ctx)
}

func (c *Controller) setItems(words []domain.Word) {
	c.items = make(map[uuid.UUID]domain.Word, len(words))
	for _, w := range words {
		c.items[w.ID] = w
	}
}

func (c *Controller) known(id uuid.UUID) bool {
	_, ok := c.items[id]
	return ok
}

// arrange orders the loaded words for the next queue build: by creation
// time for STABLE, uniformly shuffled for RANDOM.
func (c *Controller) arrange() {
	words := lo.Values(c.items)
	slices.SortFunc(words, func(a, b domain.Word) int {
		if n := a.CreatedAt.Compare(b.CreatedAt); n != 0 {
			return n
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})

	c.ordered = lo.Map(words, func(w domain.Word, _ int) uuid.UUID { return w.ID })
	if c.settings.Order == domain.OrderModeRandom {
		c.rng.Shuffle(len(c.ordered), func(i, j int) {
			c.ordered[i], c.ordered[j] = c.ordered[j], c.ordered[i]
		})
	}
}

func (c *Controller) stateLocked() State {
	st := State{
		Settings:      c.settings,
		Remaining:     len(c.queue),
		TotalWords:    len(c.items),
		CorrectCount:  c.correct,
		TotalAttempts: c.attempts,
		Mistakes:      slices.Clone(c.mistakes),
		Summary:       c.finished,
	}
	if c.last != nil {
		last := *c.last
		st.LastCheck = &last
	}

	switch {
	case c.finished != nil:
		st.Phase = domain.PracticePhaseCompleted
	case len(c.queue) > 0:
		st.Phase = domain.PracticePhaseActive
	default:
		st.Phase = domain.PracticePhaseIdle
	}

	if len(c.queue) > 0 {
		w := c.items[c.queue[0]]
		st.Current = &Card{
			WordID:       w.ID,
			Prompt:       w.Prompt(c.settings.Direction),
			PartOfSpeech: w.PartOfSpeech,
			Description:  w.Description,
		}
	}
	return st
}
