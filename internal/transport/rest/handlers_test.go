package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/history"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/practice"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/quiz"
	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/service/vocabulary"
)

var finishedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func serve(t *testing.T, h Handlers, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	NewRouter(h, nil, nil).ServeHTTP(rec, req)
	return rec
}

func serveJSON(t *testing.T, h Handlers, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return serve(t, h, method, target, r, "application/json")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// ---------------------------------------------------------------------------
// practice
// ---------------------------------------------------------------------------

func practiceHandlers(f *fakePractice) Handlers {
	return Handlers{Practice: NewPracticeHandler(f, discardLogger())}
}

func TestPracticeHandler_State(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	noun := domain.PartOfSpeechNoun
	f := &fakePractice{state: practice.State{
		Phase:         domain.PracticePhaseActive,
		Settings:      practice.Settings{Direction: domain.DirectionHeadwordToDefinitions, Order: domain.OrderModeStable, AllowReguess: true},
		Current:       &practice.Card{WordID: wordID, Prompt: "cat", PartOfSpeech: &noun},
		Remaining:     2,
		TotalWords:    2,
		TotalAttempts: 1,
		Mistakes:      []domain.Mistake{{Prompt: "dog", Answer: "კატა", Accepted: []string{"ძაღლი"}}},
	}}

	rec := serveJSON(t, practiceHandlers(f), http.MethodGet, "/api/v1/practice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[practiceStateDTO](t, rec)
	assert.Equal(t, domain.PracticePhaseActive, got.Phase)
	assert.True(t, got.Settings.AllowReguess)
	require.NotNil(t, got.Current)
	assert.Equal(t, wordID, got.Current.WordID)
	assert.Equal(t, "cat", got.Current.Prompt)
	assert.Equal(t, &noun, got.Current.PartOfSpeech)
	assert.Equal(t, 2, got.Remaining)
	require.Len(t, got.Mistakes, 1)
	assert.Equal(t, []string{"ძაღლი"}, got.Mistakes[0].Accepted)
	assert.Nil(t, got.LastCheck)
	assert.Nil(t, got.Summary)
}

func TestPracticeHandler_Check(t *testing.T) {
	t.Parallel()

	wordID := uuid.New()
	f := &fakePractice{check: practice.CheckResult{WordID: wordID, Correct: true, Answer: "კატა", Accepted: []string{"კატა"}}}

	rec := serveJSON(t, practiceHandlers(f), http.MethodPost, "/api/v1/practice/check", `{"answers":["კატა"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"კატა"}, f.gotCheck.Answers)

	got := decode[practice.CheckResult](t, rec)
	assert.True(t, got.Correct)
	assert.Equal(t, wordID, got.WordID)
}

func TestPracticeHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		method string
		path   string
		body   string
		want   int
	}{
		{"anonymous", domain.ErrUnauthorized, http.MethodGet, "/api/v1/practice", "", http.StatusUnauthorized},
		{"blank answers", domain.NewValidationError("answers", "at least one non-empty answer required"), http.MethodPost, "/api/v1/practice/check", `{"answers":[" "]}`, http.StatusBadRequest},
		{"double check", fmt.Errorf("card already checked: %w", domain.ErrConflict), http.MethodPost, "/api/v1/practice/check", `{"answers":["x"]}`, http.StatusConflict},
		{"bad json", nil, http.MethodPost, "/api/v1/practice/check", `{"answers":`, http.StatusBadRequest},
		{"word load", errors.New("pool closed"), http.MethodPost, "/api/v1/practice/advance", "", http.StatusInternalServerError},
		{"wrong method", nil, http.MethodDelete, "/api/v1/practice", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serveJSON(t, practiceHandlers(&fakePractice{err: tt.err}), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestPracticeHandler_AdvanceCompletes(t *testing.T) {
	t.Parallel()

	summary := &domain.PracticeSummary{
		ID:            uuid.New(),
		Direction:     domain.DirectionHeadwordToDefinitions,
		TotalAttempts: 4,
		CorrectCount:  3,
		FinishedAt:    finishedAt,
	}
	f := &fakePractice{
		transition: practice.Transition{Completed: true, Summary: summary},
		err:        errors.New("history unavailable"),
	}

	rec := serveJSON(t, practiceHandlers(f), http.MethodPost, "/api/v1/practice/advance", "")
	require.Equal(t, http.StatusOK, rec.Code, "a completed session is reported even if recording failed")

	got := decode[transitionDTO](t, rec)
	assert.True(t, got.Completed)
	require.NotNil(t, got.Summary)
	assert.Equal(t, summary.ID, got.Summary.ID)
	assert.InDelta(t, 0.75, got.Summary.Accuracy, 1e-9)
	assert.NotNil(t, got.Summary.Mistakes)
	require.NotNil(t, got.HistoryRecorded)
	assert.False(t, *got.HistoryRecorded)
}

func TestPracticeHandler_AdvanceCompletesRecorded(t *testing.T) {
	t.Parallel()

	f := &fakePractice{transition: practice.Transition{
		Completed: true,
		Summary:   &domain.PracticeSummary{ID: uuid.New(), TotalAttempts: 1, CorrectCount: 1, FinishedAt: finishedAt},
	}}

	rec := serveJSON(t, practiceHandlers(f), http.MethodPost, "/api/v1/practice/advance", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[transitionDTO](t, rec)
	require.NotNil(t, got.HistoryRecorded)
	assert.True(t, *got.HistoryRecorded)
}

func TestPracticeHandler_AdvanceMidSessionOmitsHistoryFlag(t *testing.T) {
	t.Parallel()

	f := &fakePractice{transition: practice.Transition{Requeued: true}}
	rec := serveJSON(t, practiceHandlers(f), http.MethodPost, "/api/v1/practice/advance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "history_recorded")
}

func TestPracticeHandler_Finish(t *testing.T) {
	t.Parallel()

	t.Run("no attempts", func(t *testing.T) {
		t.Parallel()
		rec := serveJSON(t, practiceHandlers(&fakePractice{}), http.MethodPost, "/api/v1/practice/finish", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("recorder failed", func(t *testing.T) {
		t.Parallel()
		f := &fakePractice{
			summary: &domain.PracticeSummary{ID: uuid.New(), TotalAttempts: 2, CorrectCount: 2, FinishedAt: finishedAt},
			err:     errors.New("record history: timeout"),
		}
		rec := serveJSON(t, practiceHandlers(f), http.MethodPost, "/api/v1/practice/finish", "")
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[finishDTO](t, rec)
		assert.Equal(t, f.summary.ID, got.ID)
		assert.InDelta(t, 1.0, got.Accuracy, 1e-9)
		assert.False(t, got.HistoryRecorded)
	})

	t.Run("recorded", func(t *testing.T) {
		t.Parallel()
		f := &fakePractice{
			summary: &domain.PracticeSummary{ID: uuid.New(), TotalAttempts: 3, CorrectCount: 1, FinishedAt: finishedAt},
		}
		rec := serveJSON(t, practiceHandlers(f), http.MethodPost, "/api/v1/practice/finish", "")
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[finishDTO](t, rec)
		assert.Equal(t, f.summary.ID, got.ID)
		assert.True(t, got.HistoryRecorded)
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()
		rec := serveJSON(t, practiceHandlers(&fakePractice{err: domain.ErrUnauthorized}), http.MethodPost, "/api/v1/practice/finish", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPracticeHandler_Settings(t *testing.T) {
	t.Parallel()

	f := &fakePractice{state: practice.State{Phase: domain.PracticePhaseActive}}
	rec := serveJSON(t, practiceHandlers(f), http.MethodPatch, "/api/v1/practice/settings",
		`{"order":"STABLE","allow_reguess":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, f.gotSettings.Direction)
	require.NotNil(t, f.gotSettings.Order)
	assert.Equal(t, domain.OrderModeStable, *f.gotSettings.Order)
	require.NotNil(t, f.gotSettings.AllowReguess)
	assert.False(t, *f.gotSettings.AllowReguess)
}

func TestPracticeHandler_ResetAndRefresh(t *testing.T) {
	t.Parallel()

	f := &fakePractice{
		state:      practice.State{Phase: domain.PracticePhaseActive, Remaining: 3},
		transition: practice.Transition{Dropped: 2},
	}

	rec := serveJSON(t, practiceHandlers(f), http.MethodPost, "/api/v1/practice/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[practiceStateDTO](t, rec).Remaining)

	rec = serveJSON(t, practiceHandlers(f), http.MethodPost, "/api/v1/practice/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[transitionDTO](t, rec).Dropped)
}

// ---------------------------------------------------------------------------
// quiz
// ---------------------------------------------------------------------------

func quizHandlers(f *fakeQuiz) Handlers {
	return Handlers{Quiz: NewQuizHandler(f, discardLogger())}
}

func TestQuizHandler_Start(t *testing.T) {
	t.Parallel()

	f := &fakeQuiz{question: quiz.Question{
		Index: 0, Total: 3, WordID: uuid.New(), Prompt: "cat",
		Mode:    domain.InputModeMultipleChoice,
		Options: []string{"ძაღლი", "კატა", "თევზი", "ჩიტი"},
	}}

	rec := serveJSON(t, quizHandlers(f), http.MethodPost, "/api/v1/quiz",
		`{"size":3,"direction":"HEADWORD_TO_DEFINITIONS","mode":"MULTIPLE_CHOICE"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, quiz.StartInput{Size: 3, Direction: domain.DirectionHeadwordToDefinitions, Mode: domain.InputModeMultipleChoice}, f.gotStart)

	got := decode[map[string]any](t, rec)
	assert.Equal(t, "cat", got["prompt"])
	assert.Len(t, got["options"], 4)
	assert.Equal(t, false, got["answered"])
	assert.NotContains(t, got, "correct", "unanswered questions do not leak grading")
	assert.NotContains(t, got, "accepted")
}

func TestQuizHandler_AnsweredQuestionShowsGrading(t *testing.T) {
	t.Parallel()

	f := &fakeQuiz{question: quiz.Question{
		Index: 1, Total: 3, Prompt: "dog", Mode: domain.InputModeFreeText,
		Answered: true, Correct: false, Answer: "კატა", Accepted: []string{"ძაღლი"},
	}}

	rec := serveJSON(t, quizHandlers(f), http.MethodGet, "/api/v1/quiz/question", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[questionDTO](t, rec)
	require.NotNil(t, got.Correct)
	assert.False(t, *got.Correct)
	assert.Equal(t, "კატა", got.Answer)
	assert.Equal(t, []string{"ძაღლი"}, got.Accepted)
}

func TestQuizHandler_SubmitNextResults(t *testing.T) {
	t.Parallel()

	f := &fakeQuiz{
		graded: quiz.Graded{Correct: true, Answer: "კატა", Accepted: []string{"კატა"}, Last: true},
		phase:  domain.QuizPhaseResults,
		results: quiz.Results{
			Direction: domain.DirectionHeadwordToDefinitions,
			Mode:      domain.InputModeFreeText,
			Total:     2,
			Correct:   1,
			Items: []quiz.ResultItem{
				{Prompt: "cat", Accepted: []string{"კატა"}, Answer: "კატა", Correct: true},
				{Prompt: "dog", Accepted: []string{"ძაღლი"}, Answer: "?", Correct: false},
			},
			Duration: 90 * time.Second,
		},
	}
	h := quizHandlers(f)

	rec := serveJSON(t, h, http.MethodPost, "/api/v1/quiz/answer", `{"answers":["კატა"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"კატა"}, f.gotSubmit.Answers)
	assert.True(t, decode[gradedDTO](t, rec).Last)

	rec = serveJSON(t, h, http.MethodPost, "/api/v1/quiz/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"phase":"RESULTS"}`, rec.Body.String())

	rec = serveJSON(t, h, http.MethodGet, "/api/v1/quiz/results", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[resultsDTO](t, rec)
	assert.InDelta(t, 0.5, res.Score, 1e-9)
	assert.InDelta(t, 90.0, res.DurationSeconds, 1e-9)
	require.Len(t, res.Items, 2)
	assert.False(t, res.Items[1].Correct)
}

func TestQuizHandler_StatusAndRetake(t *testing.T) {
	t.Parallel()

	f := &fakeQuiz{status: quiz.Status{Phase: domain.QuizPhaseSetup}}

	rec := serveJSON(t, quizHandlers(f), http.MethodGet, "/api/v1/quiz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.QuizPhaseSetup, decode[quizStatusDTO](t, rec).Phase)

	rec = serveJSON(t, quizHandlers(f), http.MethodPost, "/api/v1/quiz/retake", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestQuizHandler_Errors(t *testing.T) {
	t.Parallel()

	rec := serveJSON(t, quizHandlers(&fakeQuiz{err: domain.NewValidationError("size", "must be between 1 and 5")}),
		http.MethodPost, "/api/v1/quiz", `{"size":6,"direction":"HEADWORD_TO_DEFINITIONS","mode":"FREE_TEXT"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serveJSON(t, quizHandlers(&fakeQuiz{err: fmt.Errorf("not answered: %w", domain.ErrConflict)}),
		http.MethodPost, "/api/v1/quiz/next", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serveJSON(t, quizHandlers(&fakeQuiz{}), http.MethodPost, "/api/v1/quiz", `{"size":"three"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---------------------------------------------------------------------------
// words
// ---------------------------------------------------------------------------

func sampleWord() *domain.Word {
	desc := "domestic animal"
	return &domain.Word{
		ID:          uuid.New(),
		Headword:    "cat",
		Definitions: []string{"კატა"},
		Description: &desc,
		CreatedAt:   finishedAt,
		UpdatedAt:   finishedAt,
	}
}

func TestWordsHandler_Create(t *testing.T) {
	t.Parallel()

	word := sampleWord()
	f := &fakeWords{word: word}
	p := &fakePractice{}
	h := Handlers{Words: NewWordsHandler(f, p, discardLogger())}

	rec := serveJSON(t, h, http.MethodPost, "/api/v1/words",
		`{"headword":"cat","definitions":["კატა"],"description":"domestic animal","part_of_speech":"NOUN"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "cat", f.gotCreate.Headword)
	require.NotNil(t, f.gotCreate.PartOfSpeech)
	assert.Equal(t, domain.PartOfSpeechNoun, *f.gotCreate.PartOfSpeech)
	assert.Equal(t, 1, p.reconciled)

	got := decode[wordDTO](t, rec)
	assert.Equal(t, word.ID, got.ID)
	assert.Equal(t, []string{"კატა"}, got.Definitions)
}

func TestWordsHandler_CreateDuplicate(t *testing.T) {
	t.Parallel()

	p := &fakePractice{}
	h := Handlers{Words: NewWordsHandler(&fakeWords{err: fmt.Errorf("word cat: %w", domain.ErrAlreadyExists)}, p, discardLogger())}

	rec := serveJSON(t, h, http.MethodPost, "/api/v1/words", `{"headword":"cat","definitions":["კატა"]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, p.reconciled)
}

func TestWordsHandler_GetUpdateDelete(t *testing.T) {
	t.Parallel()

	word := sampleWord()
	f := &fakeWords{word: word}
	p := &fakePractice{}
	h := Handlers{Words: NewWordsHandler(f, p, discardLogger())}
	path := "/api/v1/words/" + word.ID.String()

	rec := serveJSON(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, word.ID, f.gotID)

	rec = serveJSON(t, h, http.MethodPut, path, `{"headword":"cat","definitions":["კატა","კატუნა"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, word.ID, f.gotUpdate.WordID)
	assert.Equal(t, []string{"კატა", "კატუნა"}, f.gotUpdate.Definitions)

	rec = serveJSON(t, h, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2, p.reconciled)
}

func TestWordsHandler_ReconcileFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	p := &fakePractice{err: errors.New("word list unavailable")}
	h := Handlers{Words: NewWordsHandler(&fakeWords{}, p, discardLogger())}

	rec := serveJSON(t, h, http.MethodDelete, "/api/v1/words/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, p.reconciled)
}

func TestWordsHandler_BadInput(t *testing.T) {
	t.Parallel()

	h := Handlers{Words: NewWordsHandler(&fakeWords{}, nil, discardLogger())}

	assert.Equal(t, http.StatusBadRequest, serveJSON(t, h, http.MethodGet, "/api/v1/words/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusBadRequest, serveJSON(t, h, http.MethodGet, "/api/v1/words?limit=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, serveJSON(t, h, http.MethodPost, "/api/v1/words", `{"headword":1}`).Code)
}

func TestWordsHandler_List(t *testing.T) {
	t.Parallel()

	f := &fakeWords{page: &vocabulary.ListResult{Words: []domain.Word{*sampleWord()}, TotalCount: 7, Limit: 1, Offset: 2}}
	h := Handlers{Words: NewWordsHandler(f, nil, discardLogger())}

	rec := serveJSON(t, h, http.MethodGet, "/api/v1/words?limit=1&offset=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, vocabulary.ListInput{Limit: 1, Offset: 2}, f.gotList)

	got := decode[wordPageDTO](t, rec)
	assert.Equal(t, 7, got.TotalCount)
	require.Len(t, got.Words, 1)
	assert.Equal(t, "cat", got.Words[0].Headword)
}

func TestWordsHandler_ImportRawBody(t *testing.T) {
	t.Parallel()

	f := &fakeWords{report: &vocabulary.ImportReport{
		Imported: 1,
		Skipped:  1,
		Errors:   []vocabulary.ImportError{{Row: 3, Headword: "cat", Reason: "word already exists"}},
	}}
	p := &fakePractice{}
	h := Handlers{Words: NewWordsHandler(f, p, discardLogger())}

	rec := serve(t, h, http.MethodPost, "/api/v1/words/import", bytes.NewReader([]byte("PK-workbook")), xlsxMIME)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("PK-workbook"), f.gotSheet)
	assert.Equal(t, 1, p.reconciled)

	got := decode[importReportDTO](t, rec)
	assert.Equal(t, 1, got.Imported)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, importRowDTO{Row: 3, Headword: "cat", Reason: "word already exists"}, got.Errors[0])
}

func TestWordsHandler_ImportMultipart(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "words.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("PK-multipart"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	f := &fakeWords{report: &vocabulary.ImportReport{}}
	p := &fakePractice{}
	h := Handlers{Words: NewWordsHandler(f, p, discardLogger())}

	rec := serve(t, h, http.MethodPost, "/api/v1/words/import", &body, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("PK-multipart"), f.gotSheet)
	assert.Zero(t, p.reconciled, "nothing imported")
	assert.JSONEq(t, `{"imported":0,"skipped":0,"errors":[]}`, rec.Body.String())
}

func TestWordsHandler_ImportMissingPart(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file"))
	require.NoError(t, mw.Close())

	h := Handlers{Words: NewWordsHandler(&fakeWords{}, nil, discardLogger())}
	rec := serve(t, h, http.MethodPost, "/api/v1/words/import", &body, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWordsHandler_Export(t *testing.T) {
	t.Parallel()

	h := Handlers{Words: NewWordsHandler(&fakeWords{sheet: []byte("PK-export")}, nil, discardLogger())}
	rec := serve(t, h, http.MethodGet, "/api/v1/words/export", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxMIME, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "words.xlsx")
	assert.Equal(t, "PK-export", rec.Body.String())

	h = Handlers{Words: NewWordsHandler(&fakeWords{err: domain.ErrUnauthorized}, nil, discardLogger())}
	rec = serve(t, h, http.MethodGet, "/api/v1/words/export", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---------------------------------------------------------------------------
// history
// ---------------------------------------------------------------------------

func TestHistoryHandler_List(t *testing.T) {
	t.Parallel()

	f := &fakeHistory{page: &history.ListResult{
		Items: []domain.PracticeSummary{
			{ID: uuid.New(), TotalAttempts: 5, CorrectCount: 4, FinishedAt: finishedAt},
		},
		TotalCount: 9,
	}}
	h := Handlers{History: NewHistoryHandler(f, discardLogger())}

	rec := serveJSON(t, h, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, history.ListInput{Limit: defaultHistoryPage, Offset: 0}, f.gotList)

	got := decode[historyPageDTO](t, rec)
	assert.Equal(t, 9, got.TotalCount)
	require.Len(t, got.Items, 1)
	assert.InDelta(t, 0.8, got.Items[0].Accuracy, 1e-9)
	assert.NotNil(t, got.Items[0].Mistakes)

	rec = serveJSON(t, h, http.MethodGet, "/api/v1/history?limit=5&offset=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, history.ListInput{Limit: 5, Offset: 10}, f.gotList)
}

func TestHistoryHandler_Get(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	f := &fakeHistory{summary: &domain.PracticeSummary{ID: id, Direction: domain.DirectionDefinitionsToHeadword, FinishedAt: finishedAt}}
	h := Handlers{History: NewHistoryHandler(f, discardLogger())}

	rec := serveJSON(t, h, http.MethodGet, "/api/v1/history/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, f.gotID)
	assert.Equal(t, domain.DirectionDefinitionsToHeadword, decode[summaryDTO](t, rec).Direction)

	h = Handlers{History: NewHistoryHandler(&fakeHistory{err: domain.ErrNotFound}, discardLogger())}
	rec = serveJSON(t, h, http.MethodGet, "/api/v1/history/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
