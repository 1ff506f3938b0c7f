package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/config"
	_ "portfolio-api/docs" // Important for Swagger
	v1 "portfolio-api/internal/delivery/http/v1"
	"portfolio-api/internal/usecase"
	"portfolio-api/pkg/email"
	"portfolio-api/pkg/extract"
	"portfolio-api/pkg/llm"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/redis"
	"portfolio-api/pkg/security"
	"portfolio-api/pkg/turnstile"
	"portfolio-api/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Site API
// @version         1.0
// @description     Contact form and job-fit scoring for jasonflatford.com.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Environment)
	secLog := security.InitSecurityLogger("portfolio-api", cfg.Environment)
	defer func() { _ = secLog.Sync() }()
	logger.Log.Info("Starting portfolio API", "port", cfg.Port, "env", cfg.Environment)

	// 3. Setup Redis (optional, rate limiting falls back to memory)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable - using in-memory rate limiting", "error", err)
		}
		defer func() { _ = redis.Close() }()
	}

	// 4. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will return errors", "provider", cfg.EmailProvider)
	}

	// 5. Setup Turnstile and scoring provider
	verifier := turnstile.NewClient(turnstile.Config{
		SecretKey: cfg.TurnstileSecretKey,
		SiteKey:   cfg.TurnstileSiteKey,
		VerifyURL: cfg.TurnstileVerifyURL,
		Bypass:    cfg.TurnstileBypass,
	})

	ctx := context.Background()
	completer, err := llm.New(ctx, llm.Config{
		Provider:      cfg.LLMProvider,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
	})
	if err != nil {
		logger.Log.Error("Failed to set up scoring provider", "error", err)
		os.Exit(1)
	}
	if !completer.Configured() {
		logger.Log.Warn("Scoring provider credential missing - fit checks will fail", "provider", completer.Name(), "env", completer.CredentialEnv())
	}

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(validation.New(), verifier, emailService, secLog)
	fitUC := usecase.NewFitUsecase(usecase.FitDeps{
		Verifier:     verifier,
		Extractor:    extract.New(),
		Completer:    completer,
		Notifier:     usecase.NewEmailFitNotifier(emailService),
		Policy:       usecase.NotifyPolicy{Enabled: cfg.FitNotifyEnabled, MinScore: cfg.FitNotifyMinScore},
		ScoreTimeout: cfg.FitScoreTimeout,
		SecLog:       secLog,
	})
	healthUC := usecase.NewHealthUsecase(redis.HealthCheck)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		FitUC:     fitUC,
		HealthUC:  healthUC,
		Config:    cfg,
		SecLog:    secLog,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
