package rest

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/history"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/practice"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/quiz"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/vocabulary"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------------
// practice
// ---------------------------------------------------------------------------

type fakePractice struct {
	state      practice.State
	check      practice.CheckResult
	transition practice.Transition
	summary    *domain.PracticeSummary
	err        error

	gotCheck    practice.CheckInput
	gotSettings practice.SettingsInput
	reconciled  int
}

func (f *fakePractice) Get(context.Context) (practice.State, error) { return f.state, f.err }

func (f *fakePractice) Check(_ context.Context, in practice.CheckInput) (practice.CheckResult, error) {
	f.gotCheck = in
	return f.check, f.err
}

func (f *fakePractice) Advance(context.Context) (practice.Transition, error) {
	return f.transition, f.err
}

func (f *fakePractice) Reset(context.Context) (practice.State, error) { return f.state, f.err }

func (f *fakePractice) Finish(context.Context) (*domain.PracticeSummary, error) {
	return f.summary, f.err
}

func (f *fakePractice) Refresh(context.Context) (practice.Transition, error) {
	return f.transition, f.err
}

func (f *fakePractice) UpdateSettings(_ context.Context, in practice.SettingsInput) (practice.State, error) {
	f.gotSettings = in
	return f.state, f.err
}

func (f *fakePractice) Reconcile(context.Context) (bool, error) {
	f.reconciled++
	return true, f.err
}

// ---------------------------------------------------------------------------
// quiz
// ---------------------------------------------------------------------------

type fakeQuiz struct {
	question quiz.Question
	status   quiz.Status
	graded   quiz.Graded
	phase    domain.QuizPhase
	results  quiz.Results
	err      error

	gotStart  quiz.StartInput
	gotSubmit quiz.SubmitInput
}

func (f *fakeQuiz) Start(_ context.Context, in quiz.StartInput) (quiz.Question, error) {
	f.gotStart = in
	return f.question, f.err
}

func (f *fakeQuiz) Status(context.Context) (quiz.Status, error)     { return f.status, f.err }
func (f *fakeQuiz) Question(context.Context) (quiz.Question, error) { return f.question, f.err }

func (f *fakeQuiz) Submit(_ context.Context, in quiz.SubmitInput) (quiz.Graded, error) {
	f.gotSubmit = in
	return f.graded, f.err
}

func (f *fakeQuiz) Next(context.Context) (domain.QuizPhase, error) { return f.phase, f.err }
func (f *fakeQuiz) Results(context.Context) (quiz.Results, error)  { return f.results, f.err }
func (f *fakeQuiz) Retake(context.Context) (quiz.Status, error)    { return f.status, f.err }

// ---------------------------------------------------------------------------
// words
// ---------------------------------------------------------------------------

type fakeWords struct {
	word   *domain.Word
	page   *vocabulary.ListResult
	report *vocabulary.ImportReport
	sheet  []byte
	err    error

	gotCreate vocabulary.CreateInput
	gotUpdate vocabulary.UpdateInput
	gotList   vocabulary.ListInput
	gotID     uuid.UUID
	gotSheet  []byte
}

func (f *fakeWords) CreateWord(_ context.Context, in vocabulary.CreateInput) (*domain.Word, error) {
	f.gotCreate = in
	return f.word, f.err
}

func (f *fakeWords) GetWord(_ context.Context, id uuid.UUID) (*domain.Word, error) {
	f.gotID = id
	return f.word, f.err
}

func (f *fakeWords) ListWords(_ context.Context, in vocabulary.ListInput) (*vocabulary.ListResult, error) {
	f.gotList = in
	return f.page, f.err
}

func (f *fakeWords) UpdateWord(_ context.Context, in vocabulary.UpdateInput) (*domain.Word, error) {
	f.gotUpdate = in
	return f.word, f.err
}

func (f *fakeWords) DeleteWord(_ context.Context, id uuid.UUID) error {
	f.gotID = id
	return f.err
}

func (f *fakeWords) ImportSheet(_ context.Context, r io.Reader) (*vocabulary.ImportReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.gotSheet = data
	return f.report, f.err
}

func (f *fakeWords) ExportSheet(_ context.Context, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := w.Write(f.sheet)
	return err
}

// ---------------------------------------------------------------------------
// history
// ---------------------------------------------------------------------------

type fakeHistory struct {
	page    *history.ListResult
	summary *domain.PracticeSummary
	err     error

	gotList history.ListInput
	gotID   uuid.UUID
}

func (f *fakeHistory) List(_ context.Context, in history.ListInput) (*history.ListResult, error) {
	f.gotList = in
	return f.page, f.err
}

func (f *fakeHistory) Get(_ context.Context, id uuid.UUID) (*domain.PracticeSummary, error) {
	f.gotID = id
	return f.summary, f.err
}
