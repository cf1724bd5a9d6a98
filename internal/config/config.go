package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	BackendBaseURL  string
	DBConnString    string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	SubmitTimeout   time.Duration
	SessionTTL      time.Duration
	CookieSecure    bool
}

// FromEnv builds Config with defaults, overridden by environment variables.
// DB_DSN is optional: when empty, sessions live in process memory only.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":3000"),
		BackendBaseURL:  envOrDefault("BACKEND_BASE_URL", "http://localhost:8080/api"),
		DBConnString:    os.Getenv("DB_DSN"),
		AllowedOrigins:  envList("ALLOWED_ORIGINS", nil),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		SubmitTimeout:   envDuration("SUBMIT_TIMEOUT_SECONDS", 15*time.Second),
		SessionTTL:      envHours("SESSION_TTL_HOURS", 48*time.Hour),
		CookieSecure:    envBool("COOKIE_SECURE", false),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envHours(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		hours, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(hours) * time.Hour
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err == nil {
			return parsed
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
