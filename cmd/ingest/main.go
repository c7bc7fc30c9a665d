package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/ingest"
	"jobboard-engine/internal/logger"
	"jobboard-engine/internal/store"
)

func main() {
	logger.Init()
	log := logger.New("ingest")

	dataDir := os.Getenv("JOBBOARD_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("data dir")
	}

	// One ingest run at a time per data dir. A running engine is fine,
	// a second ingest is not.
	lk := flock.New(filepath.Join(dataDir, "ingest.lock"))
	ok, err := lk.TryLock()
	if err != nil {
		log.Fatal().Err(err).Msg("lock failed")
	}
	if !ok {
		log.Fatal().Msg("another ingest run holds the lock")
	}
	defer lk.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config bootstrap failed")
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", userCfgPath).Msg("config load failed")
	}
	cfg, val := config.NormalizeAndValidate(cfg)
	for _, w := range val.Warnings {
		log.Warn().Msg(w)
	}
	if !val.OK() {
		for _, e := range val.Errors {
			log.Error().Msg(e)
		}
		log.Fatal().Msg("invalid config")
	}
	if len(cfg.Ingest.Boards) == 0 {
		log.Info().Msg("no boards configured, nothing to do")
		return
	}

	st, err := openStore(cfg, dataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	start := time.Now()
	inserted, err := ingest.Run(ctx, &cfg, st, nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("ingest failed")
	}
	log.Info().Int("inserted", inserted).Dur("took", time.Since(start)).Msg("ingest done")
}

func openStore(cfg config.Config, dataDir string) (store.JobStore, error) {
	switch cfg.Database.Driver {
	case "postgres":
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			url = cfg.Database.URL
		}
		return store.OpenPostgres(context.Background(), url)
	default:
		return store.OpenSQLite(filepath.Join(dataDir, cfg.Database.Path))
	}
}
