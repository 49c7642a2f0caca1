package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	// Mail transport selection: "smtp" or "ses"
	MailProvider string
	// SMTP Configuration (Brevo, Mailtrap, or any relay)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	// Envelope addresses
	MailFrom       string // Verified sender address (may differ from SMTP login)
	ContactEmailTo string // Site owner inbox receiving submissions
	// Acknowledgement flow
	AckEnabled bool // Send a confirmation email back to the submitter
	// AWS SES Configuration (only used when MailProvider == "ses")
	AWSRegion string
	// Redis/Upstash Configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitContactLimit  int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when no .env exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Mail transport
		MailProvider: strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
		SMTPHost:     getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		// Envelope addresses
		MailFrom:       getEnv("MAIL_FROM", "noreply@example.com"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// Acknowledgement flow
		AckEnabled: getEnvBool("ACK_ENABLED", true),
		// AWS SES
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		// Redis/Upstash
		RedisURL:      getEnv("REDIS_URL", getEnv("UPSTASH_REDIS_URL", "")),
		RedisPassword: getEnv("REDIS_PASSWORD", getEnv("UPSTASH_REDIS_PASSWORD", "")),
		// Rate Limiting (with sensible defaults)
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60), // 1 minute window
		RateLimitContactLimit:  getEnvInt("RATE_LIMIT_CONTACT_LIMIT", 5),  // 5 submissions per window per IP
	}

	// Surface misconfiguration at startup rather than on the first submission
	if cfg.ContactEmailTo == "" {
		log.Println("WARNING: CONTACT_EMAIL_TO is missing. Submissions have no destination inbox.")
	}
	if cfg.MailProvider == "smtp" && (cfg.SMTPUsername == "" || cfg.SMTPPassword == "") {
		log.Println("WARNING: SMTP credentials not configured. Contact form will be unavailable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
