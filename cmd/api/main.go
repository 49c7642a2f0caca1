package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contact-relay-backend/config"
	_ "contact-relay-backend/docs" // Important for Swagger
	v1 "contact-relay-backend/internal/delivery/http/v1"
	"contact-relay-backend/internal/usecase"
	"contact-relay-backend/pkg/logger"
	"contact-relay-backend/pkg/mailer"
	"contact-relay-backend/pkg/redis"
	"contact-relay-backend/pkg/validation"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// @title           Contact Relay API
// @version         1.0
// @description     Backend endpoint relaying contact form submissions by email.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting contact relay backend", "port", cfg.Port, "provider", cfg.MailProvider)

	// 3. Setup Redis (rate limiting); missing Redis degrades to in-memory
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 4. Setup Mail Transport
	sender := newSender(cfg)
	if sender == nil {
		logger.Log.Warn("Mail transport not fully configured - contact form will be unavailable")
	}

	// 5. Setup UseCases
	validate := validation.New()
	contactUC := usecase.NewContactUsecase(sender, validate, logger.Log, cfg)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	})

	// 7. Start Server
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

// newSender picks the configured mail transport. Returns nil when the
// transport cannot work, which the usecase reports as service unavailable.
func newSender(cfg *config.Config) mailer.Sender {
	switch cfg.MailProvider {
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Log.Error("Failed to load AWS config", "error", err)
			return nil
		}
		return mailer.NewSESSender(ses.NewFromConfig(awsCfg))
	case "smtp":
		sender, err := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		if err != nil {
			logger.Log.Error("Failed to create SMTP sender", "error", err)
			return nil
		}
		if !sender.IsConfigured() {
			return nil
		}
		return sender
	default:
		logger.Log.Error("Unknown mail provider", "provider", cfg.MailProvider)
		return nil
	}
}
