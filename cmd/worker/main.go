package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/facility-discovery/internal/config"
	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/infrastructure/mapbox"
	"github.com/facility-discovery/internal/infrastructure/places"
	"github.com/facility-discovery/internal/pkg/logger"
	"github.com/facility-discovery/internal/repository/cache"
	"github.com/facility-discovery/internal/repository/postgres"
	redisRepo "github.com/facility-discovery/internal/repository/redis"
	"github.com/facility-discovery/internal/usecase"
	"github.com/facility-discovery/internal/worker"
	"github.com/facility-discovery/internal/worker/discovery"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Facility Discovery Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Load brand/category catalog
	catalog := domain.DefaultCatalog()
	if cfg.Database.Enabled {
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()

		catalog, err = loadCatalog(db)
		if err != nil {
			log.Fatal("Failed to load catalog from PostgreSQL", zap.Error(err))
		}
		log.Info("Catalog loaded from PostgreSQL")
	}

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocoderRepo := cache.NewCachedGeocoder(
		mapbox.NewGeocoder(&cfg.Mapbox, log),
		cacheRepo,
		log,
		cfg.Cache.GeocodeCacheTTL,
	)
	placeRepo := places.NewClient(&cfg.Places, log)
	distanceRepo := mapbox.NewMatrixClient(&cfg.Mapbox, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Initialize use cases
	discoveryUC := usecase.NewDiscoveryUseCase(
		geocoderRepo,
		placeRepo,
		distanceRepo,
		catalog,
		log,
		usecase.DiscoveryOptions{
			DefaultRadiusMeters: cfg.Discovery.DefaultRadiusMeters,
			DefaultResultLimit:  cfg.Discovery.DefaultResultLimit,
			PerKeywordLimit:     cfg.Discovery.PerKeywordLimit,
			MaxConcurrentSearch: cfg.Discovery.MaxConcurrentSearch,
			SearchTimeout:       cfg.Discovery.SearchTimeout,
			MatrixTimeout:       cfg.Discovery.MatrixTimeout,
			DedupDistanceMeters: cfg.Discovery.DedupDistanceMeters,
			OverfetchMultiplier: cfg.Discovery.OverfetchMultiplier,
		},
	)

	// 7. Initialize workers
	discoveryWorker := discovery.NewWorker(
		streamRepo,
		discoveryUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewManager(log)
	workerManager.Register(discoveryWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}

// loadCatalog загружает бренды и правила категорий из базы
func loadCatalog(db *postgres.DB) (*domain.Catalog, error) {
	catalogRepo := postgres.NewCatalogRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	brands, err := catalogRepo.LoadBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	rules, err := catalogRepo.LoadCategoryRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}

	return domain.NewCatalog(brands, rules), nil
}
