package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adscontrol-backend-go/internal/analytics"
	"adscontrol-backend-go/internal/config"
	"adscontrol-backend-go/internal/db"
	httpapi "adscontrol-backend-go/internal/http"
	"adscontrol-backend-go/internal/logging"
	"adscontrol-backend-go/internal/metrics"
	"adscontrol-backend-go/internal/migrations"
	"adscontrol-backend-go/internal/services"
	"adscontrol-backend-go/internal/store"
	schema "adscontrol-backend-go/migrations"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	cleanupLogs, err := logging.Setup(logging.Config{
		Level:         cfg.LogLevel,
		Format:        cfg.LogFormat,
		Dir:           cfg.LogDir,
		RetentionDays: cfg.LogRetentionDays,
	})
	if err != nil {
		log.Warn().Err(err).Msg("file logging disabled")
	}
	defer cleanupLogs()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store")
	}
	defer st.Close()

	catalog := services.NewCatalog(st)
	if cfg.SeedFixtures {
		if err := seedIfEmpty(ctx, catalog); err != nil {
			log.Fatal().Err(err).Msg("fixtures")
		}
	}

	thresholds := analytics.DefaultThresholds()
	thresholds.HighCostMargin = cfg.HighCostMargin
	analyzer := services.NewAnalyzer(st, thresholds, cfg.AnalysisDelay)

	server := httpapi.NewServer(cfg, catalog, analyzer)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", httpServer.Addr).Bool("postgres", cfg.UsesDatabase()).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		metrics.RunHostSampler(gctx, cfg.MetricsDiskPath, time.Duration(cfg.MetricsSampleSeconds)*time.Second)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server")
	}
	log.Info().Msg("shutdown complete")
}

// openStore picks Postgres when DATABASE_URL is set, the in-memory store otherwise.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if !cfg.UsesDatabase() {
		return store.NewMemory(), nil
	}
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migrations.Apply(ctx, database, migrationFS(cfg.MigrationsDir)); err != nil {
		_ = database.Close()
		return nil, err
	}
	return store.NewPostgres(database), nil
}

// migrationFS prefers an on-disk directory so migrations can change without a rebuild.
func migrationFS(dir string) fs.FS {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir)
	}
	return schema.FS
}

func seedIfEmpty(ctx context.Context, catalog *services.Catalog) error {
	projects, err := catalog.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) > 0 {
		return nil
	}
	return services.SeedFixtures(ctx, catalog)
}
