package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

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

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the DockAI API server",
		Long:  "Serve runs the HTTP API: migrations, database, cache, object store, and\noptional event publishing, then listens until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to configuration file")
	return cmd
}

func runServer(configPath string) error {
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
	log.Info("starting dockai api server", logging.String("version", Version))

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
		Health: handlers.NewHealthHandler(Version, map[string]handlers.DependencyCheck{
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
