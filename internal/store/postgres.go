package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard-engine/internal/query"
)

// Postgres is the production backend.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a verified pgxpool against databaseURL and ensures
// the schema exists. A short statement timeout keeps queries snappy and
// failing fast; that is a connection concern, not a compiler one.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.ConnConfig.RuntimeParams["statement_timeout"] = "800"
	cfg.ConnConfig.RuntimeParams["application_name"] = "jobboard-engine"

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	p := &Postgres{pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  link TEXT NOT NULL,
  title_norm TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  posted_date TEXT,
  ingested_at TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_link ON jobs(link);
CREATE INDEX IF NOT EXISTS idx_jobs_title_norm ON jobs(title_norm);
CREATE INDEX IF NOT EXISTS idx_jobs_location ON jobs(location);
CREATE TABLE IF NOT EXISTS search_events (
  id BIGSERIAL PRIMARY KEY,
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
`)
	return err
}

func (p *Postgres) Count(ctx context.Context, expr *query.Expr) (int, error) {
	where, args := expr.Render(query.Postgres)
	var n int
	if err := p.pool.QueryRow(ctx, "SELECT COUNT(1) FROM jobs "+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (p *Postgres) Search(ctx context.Context, expr *query.Expr, order query.Order, limit, offset int) ([]Job, error) {
	where, args := expr.Render(query.Postgres)
	// LIMIT/OFFSET placeholders continue the positional numbering
	sqlText := fmt.Sprintf("SELECT %s FROM jobs %s %s LIMIT $%d OFFSET $%d",
		jobCols, where, order.SQL(), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := p.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		var posted *string
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Link, &j.TitleNorm, &j.Location, &posted, &j.IngestedAt); err != nil {
			return nil, err
		}
		if posted != nil {
			j.PostedDate = *posted
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (p *Postgres) InsertMany(ctx context.Context, jobs []Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	ready := insertReady(jobs)
	for _, j := range ready {
		batch.Queue(`
INSERT INTO jobs (title, description, link, title_norm, location, posted_date, ingested_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (link) DO NOTHING;`,
			j.Title, j.Description, j.Link, j.TitleNorm, j.Location, nullable(j.PostedDate), j.IngestedAt)
	}

	br := p.pool.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range ready {
		tag, err := br.Exec()
		if err != nil {
			return inserted, fmt.Errorf("insert jobs: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (p *Postgres) RecordSearch(ctx context.Context, ev SearchEvent) error {
	_, err := p.pool.Exec(ctx, `
INSERT INTO search_events (created_at, raw_title, raw_country, norm_title, norm_country, sal_floor, sal_ceiling, result_count, page, per_page)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		ev.CreatedAt, ev.RawTitle, ev.RawCountry, ev.NormTitle, ev.NormCountry,
		nullableInt(ev.SalFloor), nullableInt(ev.SalCeiling), ev.ResultCount, ev.Page, ev.PerPage)
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

func (p *Postgres) TopSearches(ctx context.Context, limit int) (titles, countries []SearchStat, err error) {
	titles, err = p.stats(ctx, "norm_title", limit)
	if err != nil {
		return nil, nil, err
	}
	countries, err = p.stats(ctx, "norm_country", limit)
	if err != nil {
		return nil, nil, err
	}
	return titles, countries, nil
}

func (p *Postgres) stats(ctx context.Context, col string, limit int) ([]SearchStat, error) {
	q := fmt.Sprintf(`SELECT %s, COUNT(*) c FROM search_events WHERE %s != '' GROUP BY %s ORDER BY c DESC LIMIT $1`, col, col, col)
	rows, err := p.pool.Query(ctx, q, limit)
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

func (p *Postgres) RecentSearches(ctx context.Context, limit int) ([]SearchEvent, error) {
	rows, err := p.pool.Query(ctx, `
SELECT created_at, raw_title, raw_country, norm_title, norm_country, sal_floor, sal_ceiling, result_count, page, per_page
FROM search_events ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (p *Postgres) Close() error {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
	return nil
}
