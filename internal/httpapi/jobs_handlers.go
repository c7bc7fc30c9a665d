package httpapi

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"jobboard-engine/internal/engine"
	"jobboard-engine/internal/query"
	"jobboard-engine/internal/store"
)

type JobsHandler struct {
	Engine *engine.Engine
	Log    zerolog.Logger
}

type jobsResponse struct {
	Items []store.Job `json:"items"`
	Meta  query.Page  `json:"meta"`
}

// List serves GET /api/jobs?title=&country=&page=&per_page=. A failing
// store degrades to an empty page rather than a 500; the search core
// itself cannot fail.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := engine.Request{
		Title:   strings.TrimSpace(q.Get("title")),
		Country: strings.TrimSpace(q.Get("country")),
		Page:    intParam(r, "page", 1),
		PerPage: intParam(r, "per_page", 20),
	}

	res, err := h.Engine.Search(r.Context(), req)
	if err != nil {
		h.Log.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Msg("search failed")
		WriteJSON(w, http.StatusOK, jobsResponse{
			Items: []store.Job{},
			Meta:  query.Paginate(1, req.PerPage, 0, h.Engine.MaxPerPage),
		})
		return
	}
	if res.Jobs == nil {
		res.Jobs = []store.Job{}
	}
	WriteJSON(w, http.StatusOK, jobsResponse{Items: res.Jobs, Meta: res.Page})
}
