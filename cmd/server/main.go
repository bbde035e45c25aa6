package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atelierops/backoffice/config"
	"github.com/atelierops/backoffice/pkg/broker"
	"github.com/atelierops/backoffice/pkg/cache"
	"github.com/atelierops/backoffice/pkg/logger"
	"github.com/atelierops/backoffice/pkg/postgres"
	"github.com/atelierops/backoffice/pkg/search"

	analyticsPkg "github.com/atelierops/backoffice/internal/analytics"
	analyticsH "github.com/atelierops/backoffice/internal/analytics/handler"
	analyticsRepoPkg "github.com/atelierops/backoffice/internal/analytics/repository"

	commH "github.com/atelierops/backoffice/internal/communication/handler"
	commRepoPkg "github.com/atelierops/backoffice/internal/communication/repository"
	commUCPkg "github.com/atelierops/backoffice/internal/communication/usecase"

	excH "github.com/atelierops/backoffice/internal/exception/handler"
	excRepoPkg "github.com/atelierops/backoffice/internal/exception/repository"
	excUCPkg "github.com/atelierops/backoffice/internal/exception/usecase"

	invH "github.com/atelierops/backoffice/internal/inventory/handler"
	invRepoPkg "github.com/atelierops/backoffice/internal/inventory/repository"
	invUCPkg "github.com/atelierops/backoffice/internal/inventory/usecase"

	orderH "github.com/atelierops/backoffice/internal/order/handler"
	orderListenerPkg "github.com/atelierops/backoffice/internal/order/listener"
	orderRepoPkg "github.com/atelierops/backoffice/internal/order/repository"
	orderUCPkg "github.com/atelierops/backoffice/internal/order/usecase"

	refH "github.com/atelierops/backoffice/internal/reference/handler"
	refRepoPkg "github.com/atelierops/backoffice/internal/reference/repository"
	refUCPkg "github.com/atelierops/backoffice/internal/reference/usecase"

	"github.com/atelierops/backoffice/internal/feed"
	"github.com/atelierops/backoffice/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to postgres", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("could not connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Elasticsearch. Search degrades to SQL when unavailable.
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("elasticsearch unavailable, search falls back to sql", zap.Error(err))
		esClient = nil
	}

	// 6. Repositories
	invRepo := invRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	excRepo := excRepoPkg.NewPGRepository(db)
	commRepo := commRepoPkg.NewPGRepository(db)
	refRepo := refRepoPkg.NewPGRepository(db)
	analyticsRepo := analyticsRepoPkg.NewPGRepository(db)

	// 7. Usecases
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, esClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, appLogger)
	excUC := excUCPkg.NewExceptionUseCase(excRepo, appLogger)
	commUC := commUCPkg.NewCommunicationUseCase(commRepo, appLogger)
	refUC := refUCPkg.NewReferenceUseCase(refRepo, redisClient, appLogger)
	recorder := analyticsPkg.NewRecorder(analyticsRepo, 50, 5*time.Second, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go recorder.Run(ctx)

	// 8. Kafka listeners
	orderConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrderTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer orderConsumer.Close()

	orderListener := orderListenerPkg.NewOrderListener(orderConsumer, invUC, appLogger)
	go orderListener.Start(ctx)

	changeConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.ChangeTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer changeConsumer.Close()

	debounce := time.Duration(cfg.Kafka.FeedDebounceMS) * time.Millisecond
	changeFeed := feed.NewListener(changeConsumer, debounce, appLogger)
	changeFeed.On("inventory_products", invUC.InvalidateProductCache)
	changeFeed.On("inventory_variants", invUC.InvalidateProductCache)
	changeFeed.On("sizes", refUC.Invalidate)
	changeFeed.On("colors", refUC.Invalidate)
	go changeFeed.Start(ctx)

	// 9. HTTP server
	app := fiber.New(fiber.Config{
		AppName:      "atelier-backoffice",
		ErrorHandler: errorHandler(appLogger),
	})
	app.Use(session.Middleware())

	api := app.Group("/api/v1")
	invH.NewInventoryHandler(invUC, cfg.CDN.BaseURL, appLogger).Register(api)
	orderH.NewOrderHandler(orderUC, appLogger).Register(api)
	excH.NewExceptionHandler(excUC, appLogger).Register(api)
	commH.NewCommunicationHandler(commUC, appLogger).Register(api)
	refH.NewReferenceHandler(refUC, appLogger).Register(api)
	analyticsH.NewAnalyticsHandler(recorder, appLogger).Register(api)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	go func() {
		appLogger.Info("http server listening", zap.String("port", cfg.Server.HTTPPort))
		if err := app.Listen(cfg.Server.HTTPPort); err != nil {
			appLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	cancel()
	recorder.Wait()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("http shutdown failed", zap.Error(err))
	}
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled request error", zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
