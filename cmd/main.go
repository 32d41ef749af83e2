package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/traffic_advisory_system/internal/advisory"
	"github.com/shenikar/traffic_advisory_system/internal/config"
	"github.com/shenikar/traffic_advisory_system/internal/events"
	v1 "github.com/shenikar/traffic_advisory_system/internal/handler/http/v1"
	"github.com/shenikar/traffic_advisory_system/internal/metrics"
	"github.com/shenikar/traffic_advisory_system/internal/repository"
	"github.com/shenikar/traffic_advisory_system/internal/service"
	"github.com/shenikar/traffic_advisory_system/internal/storage"
	"github.com/shenikar/traffic_advisory_system/internal/webhook"
	"github.com/shenikar/traffic_advisory_system/pkg/logger"
	"github.com/shenikar/traffic_advisory_system/pkg/postgres"
	redisclient "github.com/shenikar/traffic_advisory_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/traffic_advisory_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Traffic Advisory System API
// @version 1.0
// @description Traffic incident reporting, route advisory and traffic signal control API.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newEventPublisher подключает Kafka, если заданы брокеры
func newEventPublisher(cfg *config.Config, log *logrus.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("Kafka brokers not configured, domain events disabled")
		return events.NoopPublisher{}
	}
	log.WithField("brokers", cfg.KafkaBrokers).Info("Publishing domain events to Kafka")
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaIncidentTopic, cfg.KafkaSignalTopic, log)
}

// newPhotoStorage подключает S3, если задан бакет; иначе загрузка фото отключена
func newPhotoStorage(ctx context.Context, cfg *config.Config, log *logrus.Logger) service.PhotoStorage {
	if cfg.S3Bucket == "" {
		log.Info("Photo storage not configured, uploads disabled")
		return nil
	}
	store, err := storage.NewS3PhotoStorage(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Failed to init photo storage, uploads disabled")
		return nil
	}
	log.WithField("bucket", cfg.S3Bucket).Info("Photo storage configured")
	return store
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	metrics.Init()

	// Инициализация издателя вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	eventPublisher := newEventPublisher(cfg, log)
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			log.WithError(err).Warn("Failed to close event publisher")
		}
	}()

	// Выбор стратегии анализа маршрутов
	analyzer, err := advisory.New(cfg, log)
	if err != nil {
		log.Fatalf("Failed to configure route advisory: %v", err)
	}

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
	routeRepo := repository.NewRouteAnalysisRepository(dbpool)
	signalRepo := repository.NewSignalRepository(dbpool)

	// Инициализация сервисов
	signalService := service.NewSignalService(signalRepo, log, cfg, eventPublisher)
	incidentService := service.NewIncidentService(incidentRepo, routeRepo, signalService, analyzer, log, cfg, webhookPublisher, eventPublisher)
	photoService := service.NewPhotoService(newPhotoStorage(ctx, cfg, log), log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, signalService, photoService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.CORSMiddleware(cfg.CORSOrigins))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
