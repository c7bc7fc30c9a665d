// Package engine ties the query compiler to a job store: one search
// request becomes one count query and one page query, plus best-effort
// analytics.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jobboard-engine/internal/events"
	"jobboard-engine/internal/query"
	"jobboard-engine/internal/search"
	"jobboard-engine/internal/store"
)

type Engine struct {
	Store store.JobStore
	Hub   *events.Hub // optional; nil disables live events
	Log   zerolog.Logger

	MaxPerPage    int
	EUCodes       []string
	HighPayCities []string
}

type Request struct {
	Title   string
	Country string
	Page    int
	PerPage int
}

type Result struct {
	Jobs []store.Job
	Page query.Page

	TitleNorm   string
	CountryNorm string
	SalFloor    *int
	SalCeiling  *int
}

// Search runs one search request end to end. The count and page queries
// are independent and issued concurrently; an offset at or past the total
// yields an empty page, never an error. The engine itself holds no mutable
// state between calls.
func (e *Engine) Search(ctx context.Context, req Request) (Result, error) {
	cleaned, floor, ceiling := search.ParseSalaryQuery(req.Title)
	compiled := query.Compile(query.Input{
		Title:         cleaned,
		Country:       req.Country,
		EUCodes:       e.EUCodes,
		HighPayCities: e.HighPayCities,
	})

	// Clamp paging before the queries; offset does not depend on total.
	pg := query.Paginate(req.Page, req.PerPage, 0, e.MaxPerPage)

	var (
		total int
		rows  []store.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = e.Store.Count(gctx, compiled.Expr)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = e.Store.Search(gctx, compiled.Expr, compiled.Order, pg.PerPage, pg.Offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	page := query.Paginate(req.Page, req.PerPage, total, e.MaxPerPage)
	res := Result{
		Jobs:        rows,
		Page:        page,
		TitleNorm:   compiled.Title,
		CountryNorm: compiled.Country,
		SalFloor:    floor,
		SalCeiling:  ceiling,
	}

	e.record(ctx, req, res)
	return res, nil
}

// record logs the search for analytics and publishes a live event. Both
// are best-effort: an analytics failure never fails the search.
func (e *Engine) record(ctx context.Context, req Request, res Result) {
	if req.Title == "" && req.Country == "" {
		return
	}
	ev := store.SearchEvent{
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		RawTitle:    req.Title,
		RawCountry:  req.Country,
		NormTitle:   res.TitleNorm,
		NormCountry: res.CountryNorm,
		SalFloor:    res.SalFloor,
		SalCeiling:  res.SalCeiling,
		ResultCount: res.Page.Total,
		Page:        res.Page.Page,
		PerPage:     res.Page.PerPage,
	}
	if err := e.Store.RecordSearch(ctx, ev); err != nil {
		e.Log.Warn().Err(err).Msg("search event not recorded")
	}
	if e.Hub != nil {
		e.Hub.Publish(events.New(events.TypeSearch, map[string]any{
			"title":   res.TitleNorm,
			"country": res.CountryNorm,
			"total":   res.Page.Total,
		}))
	}
}
