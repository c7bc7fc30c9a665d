package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"jobboard-engine/internal/query"
)

// SQLite is the embedded dev/test backend.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) a sqlite database at path. Use ":memory:"
// for tests.
func OpenSQLite(path string) (*SQLite, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite wants a single writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrateSQLite(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

func migrateSQLite(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  link TEXT NOT NULL,
  title_norm TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  posted_date TEXT,
  ingested_at TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_link ON jobs(link);
CREATE INDEX IF NOT EXISTS idx_jobs_title_norm ON jobs(title_norm);
CREATE INDEX IF NOT EXISTS idx_jobs_location ON jobs(location);
`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS search_events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at TEXT NOT NULL,
  raw_title TEXT NOT NULL DEFAULT '',
  raw_country TEXT NOT NULL DEFAULT '',
  norm_title TEXT NOT NULL DEFAULT '',
  norm_country TEXT NOT NULL DEFAULT '',
  sal_floor INTEGER,
  sal_ceiling INTEGER,
  result_count INTEGER NOT NULL DEFAULT 0,
  page INTEGER NOT NULL DEFAULT 1,
  per_page INTEGER NOT NULL DEFAULT 10
);
CREATE INDEX IF NOT EXISTS idx_search_events_created ON search_events(created_at);
`); err != nil {
		return err
	}
	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Count(ctx context.Context, expr *query.Expr) (int, error) {
	where, args := expr.Render(query.SQLite)
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM jobs "+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

const jobCols = "id, title, description, link, title_norm, location, posted_date, ingested_at"

func (s *SQLite) Search(ctx context.Context, expr *query.Expr, order query.Order, limit, offset int) ([]Job, error) {
	where, args := expr.Render(query.SQLite)
	sqlText := fmt.Sprintf("SELECT %s FROM jobs %s %s LIMIT ? OFFSET ?", jobCols, where, order.SQL())
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		var posted sql.NullString
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Link, &j.TitleNorm, &j.Location, &posted, &j.IngestedAt); err != nil {
			return nil, err
		}
		j.PostedDate = posted.String
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *SQLite) InsertMany(ctx context.Context, jobs []Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs (title, description, link, title_norm, location, posted_date, ingested_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(link) DO NOTHING;`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, j := range insertReady(jobs) {
		res, err := stmt.ExecContext(ctx, j.Title, j.Description, j.Link, j.TitleNorm, j.Location, nullable(j.PostedDate), j.IngestedAt)
		if err != nil {
			return inserted, fmt.Errorf("insert job %q: %w", j.Link, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, tx.Commit()
}

func (s *SQLite) RecordSearch(ctx context.Context, ev SearchEvent) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO search_events (created_at, raw_title, raw_country, norm_title, norm_country, sal_floor, sal_ceiling, result_count, page, per_page)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		ev.CreatedAt, ev.RawTitle, ev.RawCountry, ev.NormTitle, ev.NormCountry,
		nullableInt(ev.SalFloor), nullableInt(ev.SalCeiling), ev.ResultCount, ev.Page, ev.PerPage)
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

func (s *SQLite) TopSearches(ctx context.Context, limit int) (titles, countries []SearchStat, err error) {
	titles, err = s.stats(ctx, "norm_title", limit)
	if err != nil {
		return nil, nil, err
	}
	countries, err = s.stats(ctx, "norm_country", limit)
	if err != nil {
		return nil, nil, err
	}
	return titles, countries, nil
}

func (s *SQLite) stats(ctx context.Context, col string, limit int) ([]SearchStat, error) {
	// col is one of two fixed identifiers, never user input
	q := fmt.Sprintf(`SELECT %s, COUNT(*) c FROM search_events WHERE %s != '' GROUP BY %s ORDER BY c DESC LIMIT ?`, col, col, col)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SearchStat
	for rows.Next() {
		var st SearchStat
		if err := rows.Scan(&st.Term, &st.Count); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLite) RecentSearches(ctx context.Context, limit int) ([]SearchEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT created_at, raw_title, raw_country, norm_title, norm_country, sal_floor, sal_ceiling, result_count, page, per_page
FROM search_events ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// insertReady fills derived columns on rows about to be persisted.
func insertReady(jobs []Job) []Job {
	now := time.Now().UTC().Format(time.RFC3339)
	out := make([]Job, len(jobs))
	for i, j := range jobs {
		if j.TitleNorm == "" {
			j.TitleNorm = basicNorm(j.Title)
		}
		if j.IngestedAt == "" {
			j.IngestedAt = now
		}
		out[i] = j
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows rowScanner) ([]SearchEvent, error) {
	var out []SearchEvent
	for rows.Next() {
		var ev SearchEvent
		var floor, ceiling sql.NullInt64
		if err := rows.Scan(&ev.CreatedAt, &ev.RawTitle, &ev.RawCountry, &ev.NormTitle, &ev.NormCountry,
			&floor, &ceiling, &ev.ResultCount, &ev.Page, &ev.PerPage); err != nil {
			return nil, err
		}
		if floor.Valid {
			v := int(floor.Int64)
			ev.SalFloor = &v
		}
		if ceiling.Valid {
			v := int(ceiling.Int64)
			ev.SalCeiling = &v
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
