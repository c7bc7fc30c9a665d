package httpapi

import (
	"net/http"

	"jobboard-engine/internal/store"
)

type AdminHandler struct {
	Store store.JobStore
	Token string // empty disables the endpoint entirely
}

type metricsResponse struct {
	TopTitles    []store.SearchStat `json:"top_titles"`
	TopCountries []store.SearchStat `json:"top_countries"`
	Recent       []recentSearch     `json:"recent"`
}

type recentSearch struct {
	CreatedAt   string `json:"created_at"`
	Title       string `json:"title"`
	Country     string `json:"country"`
	ResultCount int    `json:"result_count"`
}

// Metrics serves GET /admin/metrics?token=... with search analytics.
func (h AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if h.Token == "" || token != h.Token {
		WriteError(w, r, http.StatusForbidden, codeForbidden, "forbidden")
		return
	}

	titles, countries, err := h.Store.TopSearches(r.Context(), 20)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, codeMetricsFailed, err.Error())
		return
	}
	events, err := h.Store.RecentSearches(r.Context(), 50)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, codeMetricsFailed, err.Error())
		return
	}

	resp := metricsResponse{TopTitles: titles, TopCountries: countries, Recent: []recentSearch{}}
	for _, ev := range events {
		resp.Recent = append(resp.Recent, recentSearch{
			CreatedAt:   ev.CreatedAt,
			Title:       ev.NormTitle,
			Country:     ev.NormCountry,
			ResultCount: ev.ResultCount,
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}
