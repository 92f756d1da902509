package main

import (
	"context"
	"go-outreach-backend/config"
	_ "go-outreach-backend/docs" // Important for Swagger
	v1 "go-outreach-backend/internal/delivery/http/v1"
	"go-outreach-backend/internal/repository/postgres"
	"go-outreach-backend/internal/usecase"
	"go-outreach-backend/migrations"
	"go-outreach-backend/pkg/ai"
	"go-outreach-backend/pkg/crypto"
	"go-outreach-backend/pkg/database"
	"go-outreach-backend/pkg/logger"
	"go-outreach-backend/pkg/mailer"
	"go-outreach-backend/pkg/notify"
	"go-outreach-backend/pkg/redis"
	"go-outreach-backend/pkg/storage"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
)

// @title           Outreach Backend API
// @version         1.0
// @description     Backend for onboarding and AI-assisted email outreach using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting outreach backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.RunMigrations(context.Background(), cfg.DBUrl, migrations.Files); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (rate limiting falls back to in-memory without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}
	defer redis.Close()

	// 5. Setup File Storage
	store, err := storage.NewS3Store(context.Background(), storage.S3Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		Bucket:          cfg.ResumeBucket,
	})
	if err != nil {
		logger.Log.Error("Failed to set up resume storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup Collaborators
	aiClient := ai.NewOpenAIClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITemperature, cfg.CallTimeout)
	smtpMailer := mailer.New()

	cipher, err := crypto.NewCipher(cfg.SMTPEncryptionKey)
	if err != nil {
		logger.Log.Error("Invalid SMTP_ENCRYPTION_KEY", "error", err)
		os.Exit(1)
	}

	notifier := notify.NewNoopNotifier()
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Log.Warn("Telegram notifier disabled", "error", err)
		} else {
			notifier = tg
		}
	}

	// 7. Setup Repositories
	resumeRepo := postgres.NewResumeRepository(dbPool)
	contextRepo := postgres.NewContextRepository(dbPool)
	smtpRepo := postgres.NewSMTPRepository(dbPool)
	emailRepo := postgres.NewEmailRepository(dbPool)
	activityRepo := postgres.NewActivityRepository(dbPool)

	// 8. Setup UseCases
	validate := validator.New()
	activityUC := usecase.NewActivityUsecase(activityRepo)
	progressUC := usecase.NewProgressUsecase(resumeRepo, contextRepo, smtpRepo)
	wizardUC := usecase.NewWizardUsecase(progressUC)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, contextRepo, store, aiClient, activityUC)
	editorUC := usecase.NewProfileEditorUsecase(resumeRepo, contextRepo, activityUC)
	contextUC := usecase.NewContextUsecase(contextRepo, activityUC, validate)
	smtpUC := usecase.NewSMTPUsecase(smtpRepo, smtpMailer, cipher, activityUC, validate)
	emailUC := usecase.NewEmailUsecase(emailRepo, contextRepo, aiClient, smtpUC, notifier, activityUC, validate)
	chatUC := usecase.NewChatUsecase(emailUC, aiClient, activityUC)
	reviewUC := usecase.NewReviewUsecase(emailUC, chatUC)
	healthUC := usecase.NewHealthUsecase(dbPool, store)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProgressUC: progressUC,
		WizardUC:   wizardUC,
		ResumeUC:   resumeUC,
		EditorUC:   editorUC,
		ContextUC:  contextUC,
		SMTPUC:     smtpUC,
		EmailUC:    emailUC,
		ReviewUC:   reviewUC,
		ChatUC:     chatUC,
		ActivityUC: activityUC,
		HealthUC:   healthUC,
		Config:     cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
