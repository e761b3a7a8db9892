package main

// @title Facility Discovery API
// @version 1.0.0
// @description Сервис поиска и ранжирования объектов инфраструктуры (конбини, аптеки, супермаркеты) рядом с жильём путешественника. Принимает адрес или координаты, раскрывает категорию в ключевые слова поиска, агрегирует результаты nearby-поиска, убирает дубликаты, фильтрует по категории и бренду и ранжирует по реальному времени в пути.
// @description
// @description Основные возможности:
// @description - Поиск по адресу (геокодирование) или координатам
// @description - Фильтрация по категории и опционально по бренду сети
// @description - Ранжирование по времени в пути (пешком / транспорт / авто)
// @description - Деградация до оценки по прямой при недоступности провайдера маршрутов

// @contact.name API Support
// @contact.email support@facility-discovery.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/facility-discovery/docs/swagger"
	"github.com/facility-discovery/internal/config"
	httpDelivery "github.com/facility-discovery/internal/delivery/http"
	"github.com/facility-discovery/internal/delivery/http/handler"
	"github.com/facility-discovery/internal/domain"
	"github.com/facility-discovery/internal/infrastructure/mapbox"
	"github.com/facility-discovery/internal/infrastructure/places"
	"github.com/facility-discovery/internal/pkg/logger"
	"github.com/facility-discovery/internal/repository/cache"
	"github.com/facility-discovery/internal/repository/postgres"
	"github.com/facility-discovery/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Facility Discovery Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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
	log.Info("Redis connected")

	healthChecks := map[string]handler.HealthChecker{
		"redis": redisClient,
	}

	// 4. Load brand/category catalog.
	// Без PostgreSQL работаем на встроенном справочнике
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
		healthChecks["postgres"] = db

		catalog, err = loadCatalog(db, log)
		if err != nil {
			log.Fatal("Failed to load catalog from PostgreSQL", zap.Error(err))
		}
		log.Info("Catalog loaded from PostgreSQL")
	} else {
		log.Info("PostgreSQL disabled, using built-in catalog")
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocoderRepo := cache.NewCachedGeocoder(
		mapbox.NewGeocoder(&cfg.Mapbox, log),
		cacheRepo,
		log,
		cfg.Cache.GeocodeCacheTTL,
	)
	placeRepo := places.NewClient(&cfg.Places, log)
	distanceRepo := mapbox.NewMatrixClient(&cfg.Mapbox, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
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

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUC, log)
	healthHandler := handler.NewHealthHandler(healthChecks)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, discoveryHandler, healthHandler)

	// 10. Start server in goroutine
	go func() {
		if err := server.Listen(cfg.GetServerAddr()); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	if err := server.Shutdown(); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}

// loadCatalog загружает бренды и правила категорий из базы
func loadCatalog(db *postgres.DB, log *zap.Logger) (*domain.Catalog, error) {
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

	log.Info("Catalog loaded",
		zap.Int("brands", len(brands)),
		zap.Int("category_rules", len(rules)))

	return domain.NewCatalog(brands, rules), nil
}
