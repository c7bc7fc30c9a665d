package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/engine"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/httpapi"
	"jobboard-engine/internal/logger"
	"jobboard-engine/internal/secrets"
	"jobboard-engine/internal/store"
)

func main() {
	logger.Init()
	log := logger.New("engine")

	dataDir := os.Getenv("JOBBOARD_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("data dir")
	}

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
		log.Warn().Str("path", userCfgPath).Msg(w)
	}
	if !val.OK() {
		for _, e := range val.Errors {
			log.Error().Str("path", userCfgPath).Msg(e)
		}
		log.Fatal().Msg("invalid config")
	}

	st, err := openStore(cfg, dataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer st.Close()

	hub := events.NewHub()

	eng := &engine.Engine{
		Store:         st,
		Hub:           hub,
		Log:           logger.New("search"),
		MaxPerPage:    cfg.Search.PerPageMax,
		EUCodes:       cfg.Search.EUCountries,
		HighPayCities: cfg.Search.HighPayCities,
	}

	adminToken, err := secrets.AdminToken(cfg.Admin.KeyringAccount)
	if err != nil {
		log.Warn().Err(err).Msg("no admin token, /admin/metrics disabled")
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Engine:     eng,
		Store:      st,
		Hub:        hub,
		AdminToken: adminToken,
		Log:        logger.New("http"),
	})
	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover(logger.New("http")),
		httpapi.AccessLog(logger.New("http")),
		httpapi.Cors,
		httpapi.RateLimit(20, 40),
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("listen failed")
	}
	log.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Msg("engine listening")

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.Serve(ln); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
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
