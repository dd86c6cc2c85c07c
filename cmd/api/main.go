package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/mealfinder/backend/config"
	"github.com/pageza/mealfinder/backend/internal/api"
	"github.com/pageza/mealfinder/backend/internal/database"
	"github.com/pageza/mealfinder/backend/internal/events"
	"github.com/pageza/mealfinder/backend/internal/logging"
	"github.com/pageza/mealfinder/backend/internal/mealdb"
	"github.com/pageza/mealfinder/backend/internal/metrics"
	"github.com/pageza/mealfinder/backend/internal/router"
	"github.com/pageza/mealfinder/backend/internal/server"
	"github.com/pageza/mealfinder/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("starting mealfinder", "environment", cfg.Environment.String(), "addr", cfg.Addr())

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	// Search history
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	// Session result sets
	var (
		store       service.IResultStore
		redisClient *redis.Client
	)
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		store = service.NewRedisResultStore(redisClient, cfg.SessionTTL)
	} else {
		slog.Warn("redis not configured, keeping result sets in memory")
		store = service.NewMemoryResultStore(cfg.SessionTTL)
	}

	// Search events
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	defer publisher.Close()

	search := newSearchService(cfg, m, db, store, publisher)

	engine := router.SetupRouter(cfg, m, router.Handlers{
		Pages:   api.NewPageHandler(search, cfg.SkeletonCount),
		Recipes: api.NewRecipeHandler(search),
		Health:  api.NewHealthHandler(db, redisClient),
	})

	return server.New(cfg, engine).Run(ctx)
}

func newSearchService(cfg *config.Config, m *metrics.Metrics, db *gorm.DB, store service.IResultStore, publisher events.Publisher) *service.SearchService {
	client := mealdb.NewClient(cfg.MealDBBaseURL, &http.Client{Timeout: cfg.UpstreamTimeout})

	opts := []service.PipelineOption{service.WithConcurrency(cfg.DetailConcurrency)}
	if m != nil {
		opts = append(opts, service.WithMetrics(m))
	}
	pipeline := service.NewRecipePipeline(client, opts...)

	return service.NewSearchService(pipeline, store, service.NewHistoryService(db), publisher, m)
}
