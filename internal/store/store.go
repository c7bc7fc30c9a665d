package store

import (
	"context"
	"strings"

	"jobboard-engine/internal/query"
)

// Job is one posting row. PostedDate is ISO date text; empty means the
// posting date is unknown (sorted last by the default ordering).
type Job struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	TitleNorm   string `json:"title_norm"`
	Location    string `json:"location"`
	PostedDate  string `json:"posted_date,omitempty"`
	IngestedAt  string `json:"ingested_at,omitempty"`
}

// SearchEvent is one analytics record per executed search.
type SearchEvent struct {
	CreatedAt   string
	RawTitle    string
	RawCountry  string
	NormTitle   string
	NormCountry string
	SalFloor    *int
	SalCeiling  *int
	ResultCount int
	Page        int
	PerPage     int
}

// SearchStat is an aggregate over search events.
type SearchStat struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// JobStore executes compiled filters against a backing table of postings.
// Implementations render the same expression in their own dialect, so both
// backends match identical row sets for identical inputs.
type JobStore interface {
	Count(ctx context.Context, expr *query.Expr) (int, error)
	Search(ctx context.Context, expr *query.Expr, order query.Order, limit, offset int) ([]Job, error)

	// InsertMany bulk-inserts rows, silently skipping duplicates by link.
	// Returns the number of rows actually inserted.
	InsertMany(ctx context.Context, rows []Job) (int, error)

	RecordSearch(ctx context.Context, ev SearchEvent) error
	TopSearches(ctx context.Context, limit int) (titles, countries []SearchStat, err error)
	RecentSearches(ctx context.Context, limit int) ([]SearchEvent, error)

	Close() error
}

// basicNorm is the stored-column normalization for title_norm. Query-time
// normalization is richer (synonyms, token flags); the stored form stays
// minimal so re-ingesting never rewrites history.
func basicNorm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
