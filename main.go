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

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/account-service/internal/config"
	"github.com/SAP-F-2025/account-service/internal/events"
	"github.com/SAP-F-2025/account-service/internal/handlers"
	"github.com/SAP-F-2025/account-service/internal/repositories"
	"github.com/SAP-F-2025/account-service/internal/repositories/postgres"
	redisrepo "github.com/SAP-F-2025/account-service/internal/repositories/redis"
	"github.com/SAP-F-2025/account-service/internal/services"
	"github.com/SAP-F-2025/account-service/internal/utils"
	"github.com/SAP-F-2025/account-service/internal/validator"
	"github.com/SAP-F-2025/account-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize repositories: Postgres when configured, the shared
	// key-value store otherwise
	var repo repositories.Repository
	if cfg.DatabaseURL != "" {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		repo = postgres.NewRepository(db)
	} else {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		repo = redisrepo.NewRepository(redisClient, "")
	}

	// Initialize event publishing: Kafka when brokers are configured,
	// in-process channel bus with the code-delivery subscriber otherwise
	var publisher *events.WatermillPublisher
	deliveryCtx, stopDelivery := context.WithCancel(context.Background())
	defer stopDelivery()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		publisher = events.NewWatermillPublisher(kafkaPublisher, events.AccountEventsTopic, slogLogger)
	} else {
		pubSub := events.NewGoChannelPubSub(slogLogger)
		publisher = events.NewWatermillPublisher(pubSub, events.AccountEventsTopic, slogLogger)
		go runDelivery(deliveryCtx, pubSub, slogLogger)
	}

	// Initialize validator
	validator := validator.New()

	// Initialize services
	serviceManager := services.NewServiceManager(repo, slogLogger, validator, publisher, cfg.SimulatedLatency)

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, validator, logger, repo)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger)

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop the event pipeline
	stopDelivery()
	if err := publisher.Close(); err != nil {
		log.Printf("Failed to close event publisher: %v", err)
	}

	// Close store connections
	if err := repo.Close(); err != nil {
		log.Printf("Failed to close repositories: %v", err)
	}

	logger.Info("Server exited")
}

func runDelivery(ctx context.Context, subscriber message.Subscriber, logger *slog.Logger) {
	delivery := events.NewCodeDeliverySubscriber(subscriber, logger)
	if err := delivery.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("code delivery subscriber stopped", "error", err)
	}
}
