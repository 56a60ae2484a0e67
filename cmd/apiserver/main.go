// API server entry point for DockAI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piyushjha0409/DockAI/internal/application/analysis"
	"github.com/piyushjha0409/DockAI/internal/config"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/database/postgres"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/database/postgres/repositories"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/database/redis"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/messaging/kafka"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/prometheus"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/storage/minio"
	httpserver "github.com/piyushjha0409/DockAI/internal/interfaces/http"
	"github.com/piyushjha0409/DockAI/internal/interfaces/http/handlers"
)

// Build-time variables injected via ldflags.
var version = "dev"

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using environment configuration\n", err)
		cfg, err = config.LoadFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetDefault(log)
	log.Info("starting dockai api server", logging.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.RunMigrations(cfg.Database, log); err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer rdb.Close()

	objects, err := minio.NewClient(ctx, cfg.MinIO, log)
	if err != nil {
		return err
	}

	var events kafka.Publisher = kafka.NopPublisher{}
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, log)
		defer producer.Close()
		events = producer
	}

	metrics := prometheus.NewMetrics()
	repo := repositories.NewAnalysisRepository(pool, log)
	uploads := minio.NewUploadStore(objects, cfg.MinIO.Bucket, "raw/", log)
	cache := redis.NewModelDataCache(rdb, cfg.Redis.KeyPrefix, cfg.Viewer.CacheTTL, log)
	svc := analysis.NewService(repo, uploads, cache, events, metrics, cfg, log)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Mode:     cfg.Server.Mode,
		Log:      log,
		Analyses: handlers.NewAnalysisHandler(svc, cfg.Server.MaxUploadBytes),
		Health: handlers.NewHealthHandler(version, map[string]handlers.DependencyCheck{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		}),
		MetricsHandler: metrics.Handler(),
	})
	srv := httpserver.NewServer(cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("dockai api server stopped")
	return nil
}
