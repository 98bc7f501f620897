package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/wobblehealth/checkin-api/pkg/validator"

	"github.com/wobblehealth/checkin-api/internal/adapter/handler"
	"github.com/wobblehealth/checkin-api/internal/adapter/repository"
	"github.com/wobblehealth/checkin-api/internal/infrastructure/cache"
	"github.com/wobblehealth/checkin-api/internal/infrastructure/database"
	httpmw "github.com/wobblehealth/checkin-api/internal/infrastructure/http/middleware"
	"github.com/wobblehealth/checkin-api/internal/usecase/auth"
	"github.com/wobblehealth/checkin-api/internal/usecase/checkin"
	"github.com/wobblehealth/checkin-api/pkg/config"
	"github.com/wobblehealth/checkin-api/pkg/jwt"
	"github.com/wobblehealth/checkin-api/pkg/langflow"
	"github.com/wobblehealth/checkin-api/pkg/sms"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema is managed via sql-migrate. Running migrations at startup is
	// opt-in so production can keep them in CI/CD.
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping startup migrations; run sql-migrate in CI/CD")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	profileRepo := repository.NewProfileRepository(db)
	conversationRepo := repository.NewConversationRepository(db)

	// Initialize JWT manager and auth service
	log.Println("🔑 Initializing auth components...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
	authService := auth.NewService(profileRepo, jwtManager, redisClient, logger)

	// Initialize check-in pipeline
	log.Println("🤖 Initializing check-in pipeline...")
	eventLog := cache.NewEventLog(cache.DefaultCapacity)
	langflowClient := langflow.NewClient(&cfg.Langflow, logger)
	checkinService := checkin.NewService(
		eventLog,
		langflowClient,
		conversationRepo,
		cfg.Webhook.Secret,
		cfg.Forward,
		logger,
	)

	// Initialize SMS client
	log.Println("📱 Initializing SMS client...")
	smsClient := sms.NewClient(&cfg.Twilio)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	webhookHandler := handler.NewWebhookHandler(checkinService, logger)
	conversationHandler := handler.NewConversationHandler(checkinService, logger)
	forwardHandler := handler.NewForwardHandler(checkinService, logger)
	smsHandler := handler.NewSMSHandler(smsClient, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	authEchoMW := httpmw.EchoAuth(authService)
	router := handler.NewRouter(cfg, webhookHandler, conversationHandler, forwardHandler, smsHandler, authEchoMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
