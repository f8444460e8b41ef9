package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	ResendAPIKey  string
	MailTo        string // admin inbox for intake notifications
	MailFrom      string
	SubjectPrefix string
	MailTimeout   time.Duration

	SiteURL        string
	AllowedOrigins []string // CORS allow-list; empty means no browser origins configured

	AuthPassword  string   // shared portal secret; empty disables login
	AllowedUsers  []string // static login allow-list, lowercased emails
	SessionSecret string   // JWT signing key; falls back to AuthPassword
	SessionTTL    time.Duration
}

// Load reads all configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		MailTo:        getEnv("MAIL_TO", "admin@example.com"),
		MailFrom:      getEnv("MAIL_FROM", "Resource Hub <onboarding@resend.dev>"),
		SubjectPrefix: getEnv("SUBJECT_PREFIX", ""),
		MailTimeout:   time.Duration(getEnvInt("MAIL_TIMEOUT_SECONDS", 10)) * time.Second,

		SiteURL:        strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),

		AuthPassword:  getEnv("AUTH_PASSWORD", ""),
		AllowedUsers:  splitList(strings.ToLower(getEnv("ALLOWED_USERS", ""))),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 8)) * time.Hour,
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.AuthPassword
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
