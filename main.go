package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campusboard/noticeboard-service/internal/auth"
	"github.com/campusboard/noticeboard-service/internal/config"
	"github.com/campusboard/noticeboard-service/internal/events"
	"github.com/campusboard/noticeboard-service/internal/files"
	"github.com/campusboard/noticeboard-service/internal/handlers"
	"github.com/campusboard/noticeboard-service/internal/repositories"
	"github.com/campusboard/noticeboard-service/internal/repositories/memory"
	"github.com/campusboard/noticeboard-service/internal/repositories/postgres"
	"github.com/campusboard/noticeboard-service/internal/services"
	"github.com/campusboard/noticeboard-service/internal/utils"
	"github.com/campusboard/noticeboard-service/internal/validator"
	"github.com/campusboard/noticeboard-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Storage backend: postgres when DATABASE_URL is set, otherwise the
	// in-process store for local development.
	var db *gorm.DB
	var storage repositories.Storage
	if cfg.DatabaseURL != "" {
		db, err = pkg.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		storage = postgres.NewPostgreSQLStorage(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		storage = memory.NewMemoryStorage()
	}

	// Session store: redis when configured, the sessions table when a
	// database is present, in-process maps otherwise.
	var sessionStore auth.SessionStore
	switch {
	case cfg.RedisURL != "":
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		sessionStore = auth.NewRedisSessionStore(redisClient)
	case db != nil:
		sessionStore = auth.NewGormSessionStore(db)
	default:
		sessionStore = auth.NewMemorySessionStore()
	}
	sessionManager := auth.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionTTL)

	// Notice events go to Kafka when brokers are configured, otherwise
	// to an in-process channel.
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewGoChannelPublisher(slogLogger)
	}

	fileStore := files.NewLocalStore(cfg.UploadDir)
	v := validator.New()

	serviceManager := services.NewServiceManager(storage, slogLogger, v, publisher, fileStore)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	handlerManager := handlers.NewHandlerManager(serviceManager, sessionManager, fileStore, logger, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if err := sessionStore.Close(); err != nil {
		log.Printf("Failed to close session store: %v", err)
	}

	logger.Info("Server exited")
}
