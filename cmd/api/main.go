// @title Word Quiz API
// @version 1.0
// @description Parses uploaded .docx practice tests into quizzes and grades submitted answers.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"word-quiz/internal/adapter"
	"word-quiz/internal/cache"
	"word-quiz/internal/config"
	"word-quiz/internal/database"
	"word-quiz/internal/domain"
	"word-quiz/internal/handler"
	"word-quiz/internal/logger"
	"word-quiz/internal/middleware"
	"word-quiz/internal/parser"
	"word-quiz/internal/repository"
	"word-quiz/internal/service"
	"word-quiz/internal/storage"

	_ "word-quiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXDB(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.Driver == database.DriverSQLite {
		// The embedded SQLite database is migrated on start; server databases use cmd/migrate.
		if _, err := database.RunMigrations(context.Background(), db, cfg.DB.Driver); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Initialize storage and repositories
	blobStore, err := storage.NewFSStore(cfg.Storage.BaseDir)
	if err != nil {
		appLogger.Fatal("Failed to initialize blob storage", zap.Error(err))
	}
	recordRepository := repository.NewQuizRecordDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis Client (optional)
	var parseCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		parseCache = adapter.NewRedisCacheAdapter(redisClient)
	} else {
		appLogger.Info("Redis address not configured, parse cache disabled")
	}

	// Initialize services
	docParser := parser.NewDocxParser()
	grader := service.NewGradingService(domain.AnswerKey(cfg.Grading.AnswerKey))
	parseCacheService := service.NewParseCacheService(docParser, parseCache, cfg.Cache.ParseTTL)
	recordService := service.NewQuizRecordService(recordRepository, txManager, blobStore, docParser, grader)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(parseCacheService, recordService, grader)
	recordHandler := handler.NewQuizRecordHandler(recordService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Security.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept," + middleware.CSRFHeaderName,
		AllowCredentials: true,
		MaxAge:           300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/api/health", handler.NewHealthHandler(db, parseCache).Check)
	handler.RegisterRoutes(app, quizHandler, recordHandler, middleware.CSRF(cfg.Security))

	// Start server
	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("db_driver", cfg.DB.Driver),
			zap.Bool("csrf", cfg.Security.CSRFEnabled),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
