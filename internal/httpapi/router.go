package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"jobboard-engine/internal/engine"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/store"
)

type Deps struct {
	Engine     *engine.Engine
	Store      store.JobStore
	Hub        *events.Hub
	AdminToken string
	Log        zerolog.Logger
}

// NewMux wires routes; main() wraps it with the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	jh := JobsHandler{Engine: d.Engine, Log: d.Log}
	mux.HandleFunc("/api/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))

	ah := AdminHandler{Store: d.Store, Token: d.AdminToken}
	mux.HandleFunc("/admin/metrics", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Metrics,
	}))

	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
		},
	}))

	return mux
}
