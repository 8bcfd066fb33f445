package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigin  []string
	DatabaseURL      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	ModelMode        string // "strict" or "degraded"
	ModelServiceURL  string
	ModelTimeout     time.Duration
	BatchConcurrency int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("cmd/.env")

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MODEL_MODE", "strict")
	v.SetDefault("MODEL_TIMEOUT", "30s")
	v.SetDefault("BATCH_CONCURRENCY", 4)

	return Config{
		Port:             v.GetString("PORT"),
		Env:              normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin:  splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		ModelMode:        normalizeModelMode(v.GetString("MODEL_MODE")),
		ModelServiceURL:  strings.TrimRight(v.GetString("MODEL_SERVICE_URL"), "/"),
		ModelTimeout:     v.GetDuration("MODEL_TIMEOUT"),
		BatchConcurrency: v.GetInt("BATCH_CONCURRENCY"),
	}
}

// IsDevLike reports whether the environment allows in-memory fallbacks.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeModelMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "degraded", "fallback":
		return "degraded"
	default:
		return "strict"
	}
}
