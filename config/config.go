package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseJWTSecret string
	FrontendURL       string
	// AI provider (OpenAI-compatible chat completions endpoint)
	AIBaseURL     string
	AIAPIKey      string
	AIModel       string
	AITemperature float64
	// S3-compatible resume storage
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Endpoint        string
	ResumeBucket      string
	// Redis (rate limiting)
	RedisURL      string
	RedisPassword string
	// Symmetric key for SMTP password storage, 32 bytes hex-encoded
	SMTPEncryptionKey string
	// Telegram notifications (optional)
	TelegramToken  string
	TelegramChatID int64
	// Rate Limiting
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Uniform per-call budget for outbound collaborator calls
	CallTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when no .env exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBUrl:             getEnv("DATABASE_URL", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		AIBaseURL:     strings.TrimRight(getEnv("AI_BASE_URL", "https://api.groq.com/openai/v1"), "/"),
		AIAPIKey:      getEnv("AI_API_KEY", ""),
		AIModel:       getEnv("AI_MODEL", "llama-3.3-70b-versatile"),
		AITemperature: getEnvFloat("AI_TEMPERATURE", 0.3),

		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		ResumeBucket:      getEnv("RESUME_BUCKET", "resumes"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SMTPEncryptionKey: getEnv("SMTP_ENCRYPTION_KEY", ""),

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvInt64("TELEGRAM_CHAT_ID", 0),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		CallTimeout: time.Duration(getEnvInt("CALL_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.AIAPIKey == "" {
		log.Println("WARNING: AI_API_KEY not configured. Resume parsing and email generation will be unavailable.")
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

func getEnvInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}
