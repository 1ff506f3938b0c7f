package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

type Config struct {
	Port           string
	Environment    string
	SiteName       string
	AllowedOrigins []string
	// Client IP trust. Forwarding headers are ignored unless the peer is a trusted proxy
	// or the platform header is named.
	TrustedPlatform string // "cloudflare", "google" or empty
	TrustedProxies  []string
	// Email delivery
	EmailProvider string // "resend" or "smtp"
	ResendAPIKey  string
	ContactFrom   string
	ContactTo     string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	// Cloudflare Turnstile
	TurnstileSecretKey string
	TurnstileSiteKey   string
	TurnstileBypass    bool // TURNSTILE_DISABLED or NEXT_PUBLIC_TURNSTILE_DISABLED
	TurnstileVerifyURL string
	// Fit scoring
	LLMProvider     string // "openai" or "gemini"
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	GeminiAPIKey    string
	GeminiModel     string
	FitScoreTimeout time.Duration
	// Fit notifications
	FitNotifyEnabled  bool
	FitNotifyMinScore int
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitFitThreshold     int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    environment(),
		SiteName:       getEnv("SITE_NAME", "jasonflatford.com"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		// Client IP trust
		TrustedPlatform: strings.ToLower(strings.TrimSpace(getEnv("TRUSTED_PLATFORM", ""))),
		TrustedProxies:  splitList(getEnv("TRUSTED_PROXIES", "")),
		// Email
		EmailProvider: strings.ToLower(getEnv("EMAIL_PROVIDER", "resend")),
		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		ContactFrom:   getEnv("CONTACT_FROM", ""),
		ContactTo:     getEnv("CONTACT_TO", ""),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		// Turnstile
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),
		TurnstileSiteKey:   getEnv("TURNSTILE_SITE_KEY", getEnv("NEXT_PUBLIC_TURNSTILE_SITE_KEY", "")),
		TurnstileBypass:    getEnvBool("TURNSTILE_DISABLED", false) || getEnvBool("NEXT_PUBLIC_TURNSTILE_DISABLED", false),
		TurnstileVerifyURL: getEnv("TURNSTILE_VERIFY_URL", defaultTurnstileVerifyURL),
		// Scoring
		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   strings.TrimRight(getEnv("OPENAI_BASE_URL", ""), "/"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		FitScoreTimeout: time.Duration(getEnvInt("FIT_SCORE_TIMEOUT_SECONDS", 25)) * time.Second,
		// Notifications
		FitNotifyEnabled:  getEnvBool("FIT_NOTIFY_ENABLED", false),
		FitNotifyMinScore: getEnvInt("FIT_NOTIFY_MIN_SCORE", 80),
		// Redis/Upstash
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate limiting
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitFitThreshold:     getEnvInt("RATE_LIMIT_FIT_THRESHOLD", 10),
	}

	if cfg.TurnstileBypass {
		log.Println("WARNING: Turnstile verification is DISABLED. Do not run like this in production.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// RateLimitWindow returns the rate limit window as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
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
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func environment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
