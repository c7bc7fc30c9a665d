package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"jobboard-engine/internal/query"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedJobs(t *testing.T, s *SQLite, jobs []Job) {
	t.Helper()
	n, err := s.InsertMany(context.Background(), jobs)
	require.NoError(t, err)
	require.Equal(t, len(jobs), n)
}

var fixture = []Job{
	{Title: "Software Engineer", Link: "https://x.test/1", Location: "Berlin, DE", PostedDate: "2026-08-01"},
	{Title: "Backend Developer", Link: "https://x.test/2", Location: "Zurich, CH", PostedDate: "2026-08-10"},
	{Title: "Data Scientist", Link: "https://x.test/3", Location: "New York, NY", PostedDate: "2026-08-05"},
	{Title: "Platform Engineer", Link: "https://x.test/4", Location: "San Francisco, CA", PostedDate: "2026-07-20"},
	{Title: "SRE", Link: "https://x.test/5", Location: "Paris, FR"},
	{Title: "Golang Engineer", Link: "https://x.test/6", Location: "Remote, Europe", PostedDate: "2026-08-12"},
	{Title: "QA Engineer", Link: "https://x.test/7", Location: "100% Remote", PostedDate: "2026-08-03"},
}

func TestInsertManyIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	n, err := s.InsertMany(ctx, fixture)
	require.NoError(t, err)
	require.Equal(t, len(fixture), n)

	// same links again, nothing inserted
	n, err = s.InsertMany(ctx, fixture)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	total, err := s.Count(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, len(fixture), total)
}

func TestInsertManyFillsDerivedColumns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, []Job{{Title: "  Staff Engineer  ", Link: "https://x.test/d1"}})

	jobs, err := s.Search(ctx, nil, query.OrderDefault, 10, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "staff engineer", jobs[0].TitleNorm)
	require.NotEmpty(t, jobs[0].IngestedAt)
}

func TestCountAndSearchByTitle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, fixture)

	c := query.Compile(query.Input{Title: "engineer"})
	n, err := s.Count(ctx, c.Expr)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	jobs, err := s.Search(ctx, c.Expr, c.Order, 100, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 4)
	for _, j := range jobs {
		require.Contains(t, j.TitleNorm, "engineer")
	}
}

func TestSearchCountryCode(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, fixture)

	c := query.Compile(query.Input{Country: "germany"})
	jobs, err := s.Search(ctx, c.Expr, c.Order, 100, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "Berlin, DE", jobs[0].Location)
}

func TestSearchCodeTokenNotSubstring(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, []Job{
		{Title: "March Intern", Link: "https://x.test/m1", Location: "March-on-Sea"},
		{Title: "Cheese Taster", Link: "https://x.test/m2", Location: "Lucerne, CH"},
	})

	c := query.Compile(query.Input{Country: "ch"})
	jobs, err := s.Search(ctx, c.Expr, c.Order, 100, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "Lucerne, CH", jobs[0].Location)
}

func TestSearchDefaultOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, fixture)

	jobs, err := s.Search(ctx, nil, query.OrderDefault, 100, 0)
	require.NoError(t, err)
	require.Len(t, jobs, len(fixture))

	// newest first, null posted_date last
	require.Equal(t, "https://x.test/6", jobs[0].Link)
	require.Equal(t, "https://x.test/5", jobs[len(jobs)-1].Link)
	for i := 1; i < len(jobs)-1; i++ {
		require.GreaterOrEqual(t, jobs[i-1].PostedDate, jobs[i].PostedDate)
	}
}

func TestSearchHighPayOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, []Job{
		{Title: "A", Link: "https://x.test/h1", Location: "London, UK", PostedDate: "2026-08-20"},
		{Title: "B", Link: "https://x.test/h2", Location: "Zurich, CH", PostedDate: "2026-08-01"},
		{Title: "C", Link: "https://x.test/h3", Location: "New York, NY", PostedDate: "2026-08-01"},
		{Title: "D", Link: "https://x.test/h4", Location: "San Francisco, CA", PostedDate: "2026-07-01"},
	})

	c := query.Compile(query.Input{Country: "high pay"})
	require.Equal(t, query.OrderHighPay, c.Order)

	jobs, err := s.Search(ctx, c.Expr, c.Order, 100, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 4)
	require.Equal(t, "San Francisco, CA", jobs[0].Location)
	require.Equal(t, "New York, NY", jobs[1].Location)
	require.Equal(t, "Zurich, CH", jobs[2].Location)
	require.Equal(t, "London, UK", jobs[3].Location)
}

func TestSearchEUMatchesMembers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, fixture)

	c := query.Compile(query.Input{Country: "europe"})
	jobs, err := s.Search(ctx, c.Expr, c.Order, 100, 0)
	require.NoError(t, err)

	got := map[string]bool{}
	for _, j := range jobs {
		got[j.Link] = true
	}
	// Berlin DE, Paris FR, and the literal "Europe" location
	require.True(t, got["https://x.test/1"], "DE row")
	require.True(t, got["https://x.test/5"], "FR row")
	require.True(t, got["https://x.test/6"], "eu substring row")
	require.False(t, got["https://x.test/3"], "US row must not match")
	require.False(t, got["https://x.test/4"], "US row must not match")
}

func TestSearchLiteralPercentNotWildcard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, fixture)

	c := query.Compile(query.Input{Country: "100% remote"})
	jobs, err := s.Search(ctx, c.Expr, c.Order, 100, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "100% Remote", jobs[0].Location)

	// a pattern that only matches via wildcard must match nothing
	c = query.Compile(query.Input{Country: "100% offshore"})
	jobs, err = s.Search(ctx, c.Expr, c.Order, 100, 0)
	require.NoError(t, err)
	require.Empty(t, jobs)
}

func TestSearchOffsetPastTotal(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedJobs(t, s, fixture)

	jobs, err := s.Search(ctx, nil, query.OrderDefault, 10, 1000)
	require.NoError(t, err)
	require.Empty(t, jobs)
}

func TestSearchEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	floor := 80000

	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordSearch(ctx, SearchEvent{
			CreatedAt: "2026-08-30T10:00:00Z", RawTitle: "golang 80k", NormTitle: "golang",
			NormCountry: "DE", SalFloor: &floor, ResultCount: 5, Page: 1, PerPage: 20,
		}))
	}
	require.NoError(t, s.RecordSearch(ctx, SearchEvent{
		CreatedAt: "2026-08-30T11:00:00Z", NormTitle: "sre", Page: 1, PerPage: 20,
	}))

	titles, countries, err := s.TopSearches(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, "golang", titles[0].Term)
	require.Equal(t, 3, titles[0].Count)
	require.Equal(t, "DE", countries[0].Term)

	recent, err := s.RecentSearches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "sre", recent[0].NormTitle)
	require.Nil(t, recent[0].SalFloor)
	require.NotNil(t, recent[1].SalFloor)
	require.Equal(t, 80000, *recent[1].SalFloor)
}
