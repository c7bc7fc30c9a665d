package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/search"
	"jobboard-engine/internal/store"
)

const (
	userAgent   = "jobboard-engine/1.0 (+local)"
	defaultBase = "https://boards.greenhouse.io"
)

// Scraper pulls postings off greenhouse-style HTML boards.
type Scraper struct {
	hc   *http.Client
	lim  *hostLimiter
	base string
}

func NewScraper(reqPerSec float64, burst int) *Scraper {
	return &Scraper{
		hc:   &http.Client{Timeout: 20 * time.Second},
		lim:  newHostLimiter(reqPerSec, burst),
		base: defaultBase,
	}
}

// FetchBoard scrapes one board and returns store-ready rows. Rows carry
// the link as their idempotency key; re-running ingest never duplicates.
func (s *Scraper) FetchBoard(ctx context.Context, board config.Board) ([]store.Job, error) {
	doc, err := s.get(ctx, fmt.Sprintf("%s/%s", s.base, board.Slug))
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", board.Slug, err)
	}

	seen := map[string]bool{}
	var jobs []store.Job
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		abs := href
		if strings.HasPrefix(href, "/") {
			abs = s.base + href
		}
		if !strings.HasPrefix(abs, s.base) || !strings.Contains(strings.ToLower(abs), "/jobs/") {
			return
		}
		if seen[abs] {
			return
		}
		seen[abs] = true

		title := cleanText(a.Text())
		if looksLikeJunkTitle(title) {
			title = ""
		}
		jobs = append(jobs, store.Job{Title: title, Link: abs})
	})

	for i := range jobs {
		// best-effort hydration; a minimal row still inserts
		_ = s.hydrate(ctx, &jobs[i])
		jobs[i].TitleNorm = search.NormalizeTitle(jobs[i].Title)
	}
	return jobs, nil
}

func (s *Scraper) hydrate(ctx context.Context, j *store.Job) error {
	doc, err := s.get(ctx, j.Link)
	if err != nil {
		return err
	}

	if j.Title == "" {
		j.Title = cleanText(doc.Find("h1").First().Text())
	}
	if loc := cleanText(doc.Find(".location").First().Text()); loc != "" {
		j.Location = normalizeLocation(loc)
	}
	if sel := doc.Find("#content").First(); sel.Length() > 0 {
		j.Description = cleanText(sel.Text())
	}
	if t := strings.TrimSpace(doc.Find("time").First().AttrOr("datetime", "")); t != "" {
		j.PostedDate = t
	}
	return nil
}

func (s *Scraper) get(ctx context.Context, url string) (*goquery.Document, error) {
	if err := s.lim.waitURL(ctx, url); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return goquery.NewDocumentFromReader(res.Body)
}

func looksLikeJunkTitle(t string) bool {
	l := strings.ToLower(t)
	return l == "" || strings.Contains(l, "view") || strings.Contains(l, "apply")
}
