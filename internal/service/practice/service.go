package practice

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/config"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Word, error)
}

type historyRecorder interface {
	Record(ctx context.Context, summary domain.PracticeSummary) error
}

type snapshotStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]byte, error)
	Save(ctx context.Context, userID uuid.UUID, payload []byte) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service routes practice actions to the calling user's Controller.
// Controllers are kept in an LRU; an evicted session is restored from its
// snapshot on the next request.
type Service struct {
	log       *slog.Logger
	words     wordRepo
	history   historyRecorder
	snapshots snapshotStore
	clock     clockwork.Clock
	cfg       config.PracticeConfig

	sessions *lru.Cache[uuid.UUID, *Controller]
	opening  singleflight.Group
	newRand  func() *rand.Rand
}

// NewService creates a new practice service.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	history historyRecorder,
	snapshots snapshotStore,
	clock clockwork.Clock,
	cfg config.PracticeConfig,
) (*Service, error) {
	sessions, err := lru.New[uuid.UUID, *Controller](cfg.MaxActiveSessions)
	if err != nil {
		return nil, fmt.Errorf("practice session cache: %w", err)
	}

	return &Service{
		log:       logger.With("service", "practice"),
		words:     words,
		history:   history,
		snapshots: snapshots,
		clock:     clock,
		cfg:       cfg,
		sessions:  sessions,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}, nil
}

// Get returns the caller's session, loading it on first use.
func (s *Service) Get(ctx context.Context) (State, error) {
	c, err := s.controller(ctx)
	if err != nil {
		return State{}, err
	}
	return c.State(), nil
}

// Check grades answers for the current card.
func (s *Service) Check(ctx context.Context, in CheckInput) (CheckResult, error) {
	if len(in.Answers) > s.cfg.MaxAnswersPerCheck {
		return CheckResult{}, domain.NewValidationError("answers",
			fmt.Sprintf("at most %d answers allowed", s.cfg.MaxAnswersPerCheck))
	}

	c, err := s.controller(ctx)
	if err != nil {
		return CheckResult{}, err
	}
	return c.Check(ctx, in)
}

// Advance moves to the next card.
func (s *Service) Advance(ctx context.Context) (Transition, error) {
	c, err := s.controller(ctx)
	if err != nil {
		return Transition{}, err
	}
	return c.Advance(ctx)
}

// Reset clears the caller's statistics and rebuilds the queue.
func (s *Service) Reset(ctx context.Context) (State, error) {
	c, err := s.controller(ctx)
	if err != nil {
		return State{}, err
	}
	c.Reset(ctx)
	return c.State(), nil
}

// Finish records the caller's session in history and resets it.
func (s *Service) Finish(ctx context.Context) (*domain.PracticeSummary, error) {
	c, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	return c.Finish(ctx)
}

// Refresh reconciles the caller's queue with the current word list.
func (s *Service) Refresh(ctx context.Context) (Transition, error) {
	c, err := s.controller(ctx)
	if err != nil {
		return Transition{}, err
	}
	return c.Refresh(ctx)
}

// Reconcile refreshes the caller's session only if one is already open.
// It reports whether a session was refreshed.
func (s *Service) Reconcile(ctx context.Context) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}
	c, ok := s.sessions.Peek(userID)
	if !ok {
		return false, nil
	}
	if _, err := c.Refresh(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// UpdateSettings changes the caller's practice preferences.
func (s *Service) UpdateSettings(ctx context.Context, in SettingsInput) (State, error) {
	c, err := s.controller(ctx)
	if err != nil {
		return State{}, err
	}
	if err := c.UpdateSettings(ctx, in); err != nil {
		return State{}, err
	}
	return c.State(), nil
}

func (s *Service) controller(ctx context.Context) (*Controller, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if c, ok := s.sessions.Get(userID); ok {
		return c, nil
	}

	v, err, _ := s.opening.Do(userID.String(), func() (any, error) {
		if c, ok := s.sessions.Get(userID); ok {
			return c, nil
		}

		c := NewController(s.log, userID, s.words, s.history, s.snapshots, s.clock, s.newRand(), Settings{
			Direction:    s.cfg.DefaultDirection,
			Order:        s.cfg.DefaultOrder,
			AllowReguess: s.cfg.AllowReguess,
		})
		if err := c.Load(ctx); err != nil {
			return nil, err
		}
		s.sessions.Add(userID, c)
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("open practice: %w", err)
	}
	return v.(*Controller), nil
}
