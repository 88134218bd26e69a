package rest

import (
	"net/http"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/transport/middleware"
)

// Handlers groups everything served by NewRouter. Nil handlers are skipped.
type Handlers struct {
	Health   *HealthHandler
	Practice *PracticeHandler
	Quiz     *QuizHandler
	Words    *WordsHandler
	History  *HistoryHandler
}

// NewRouter mounts the handlers on a ServeMux. API routes get the api
// middleware chain; health routes only get global.
func NewRouter(h Handlers, global, api middleware.Middleware) http.Handler {
	apiMux := http.NewServeMux()
	if h.Practice != nil {
		h.Practice.register(apiMux)
	}
	if h.Quiz != nil {
		h.Quiz.register(apiMux)
	}
	if h.Words != nil {
		h.Words.register(apiMux)
	}
	if h.History != nil {
		h.History.register(apiMux)
	}

	root := http.NewServeMux()
	if h.Health != nil {
		h.Health.register(root)
	}
	root.Handle("/api/", middleware.Chain(api)(apiMux))

	return middleware.Chain(global)(root)
}
