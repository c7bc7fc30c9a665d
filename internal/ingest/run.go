package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/store"
)

const boardTimeout = 2 * time.Minute

// Run scrapes every configured board concurrently and inserts new rows.
// Failures on one board do not stop the others. Returns how many rows
// were actually inserted (links already present are skipped).
func Run(ctx context.Context, cfg *config.Config, st store.JobStore, hub *events.Hub, log zerolog.Logger) (int, error) {
	sc := NewScraper(cfg.Ingest.ReqPerSec, cfg.Ingest.Burst)

	var inserted int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, board := range cfg.Ingest.Boards {
		board := board
		g.Go(func() error {
			bctx, cancel := context.WithTimeout(ctx, boardTimeout)
			defer cancel()

			jobs, err := sc.FetchBoard(bctx, board)
			if err != nil {
				log.Warn().Err(err).Str("board", board.Slug).Msg("board fetch failed")
				return nil
			}
			n, err := st.InsertMany(bctx, jobs)
			if err != nil {
				log.Warn().Err(err).Str("board", board.Slug).Msg("insert failed")
				return nil
			}
			atomic.AddInt64(&inserted, int64(n))
			log.Info().Str("board", board.Slug).Int("found", len(jobs)).Int("inserted", n).Msg("board done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(inserted), err
	}

	total := int(atomic.LoadInt64(&inserted))
	if hub != nil && total > 0 {
		hub.Publish(events.New(events.TypeJobsIngested, map[string]any{"inserted": total}))
	}
	return total, nil
}
