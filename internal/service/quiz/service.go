package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/config"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/pkg/ctxutil"
)

type wordRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Word, error)
}

// Service keeps one test Session per user. Nothing is persisted: a session
// evicted from the cache or lost on restart starts over in SETUP.
type Service struct {
	log      *slog.Logger
	words    wordRepo
	clock    clockwork.Clock
	cfg      config.QuizConfig
	sessions *lru.Cache[uuid.UUID, *Session]
	newRand  func() *rand.Rand
}

// NewService creates a new quiz service.
func NewService(logger *slog.Logger, words wordRepo, clock clockwork.Clock, cfg config.QuizConfig) (*Service, error) {
	sessions, err := lru.New[uuid.UUID, *Session](cfg.MaxActiveTests)
	if err != nil {
		return nil, fmt.Errorf("quiz session cache: %w", err)
	}
	return &Service{
		log:      logger.With("service", "quiz"),
		words:    words,
		clock:    clock,
		cfg:      cfg,
		sessions: sessions,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}, nil
}

// Start loads the caller's words and begins a test.
func (s *Service) Start(ctx context.Context, in StartInput) (Question, error) {
	userID, sess, err := s.session(ctx)
	if err != nil {
		return Question{}, err
	}

	words, err := s.words.ListByUser(ctx, userID)
	if err != nil {
		return Question{}, fmt.Errorf("load words: %w", err)
	}

	if err := sess.Start(words, in, s.cfg.MaxSize); err != nil {
		return Question{}, err
	}

	s.log.InfoContext(ctx, "quiz started",
		slog.String("user_id", userID.String()),
		slog.Int("size", in.Size),
		slog.String("direction", in.Direction.String()),
		slog.String("mode", in.Mode.String()),
	)
	return sess.Question()
}

// Status returns the caller's test phase and progress.
func (s *Service) Status(ctx context.Context) (Status, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return Status{}, err
	}
	return sess.Status(), nil
}

// Question returns the caller's current question.
func (s *Service) Question(ctx context.Context) (Question, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return Question{}, err
	}
	return sess.Question()
}

// Submit grades the caller's answer to the current question.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Graded, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return Graded{}, err
	}
	return sess.Submit(in)
}

// Next advances the caller's test and returns the new phase.
func (s *Service) Next(ctx context.Context) (domain.QuizPhase, error) {
	userID, sess, err := s.session(ctx)
	if err != nil {
		return "", err
	}

	phase, err := sess.Next()
	if err != nil {
		return phase, err
	}
	if phase == domain.QuizPhaseResults {
		res, _ := sess.Results()
		s.log.InfoContext(ctx, "quiz finished",
			slog.String("user_id", userID.String()),
			slog.Int("total", res.Total),
			slog.Int("correct", res.Correct),
			slog.Duration("duration", res.Duration),
		)
	}
	return phase, nil
}

// Results returns the caller's finished test.
func (s *Service) Results(ctx context.Context) (Results, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return Results{}, err
	}
	return sess.Results()
}

// Retake returns the caller's test to SETUP.
func (s *Service) Retake(ctx context.Context) (Status, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return Status{}, err
	}
	sess.Retake()
	return sess.Status(), nil
}

func (s *Service) session(ctx context.Context) (uuid.UUID, *Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, nil, domain.ErrUnauthorized
	}

	if sess, ok := s.sessions.Get(userID); ok {
		return userID, sess, nil
	}
	fresh := NewSession(s.clock, s.newRand())
	if prev, ok, _ := s.sessions.PeekOrAdd(userID, fresh); ok {
		return userID, prev, nil
	}
	return userID, fresh, nil
}
