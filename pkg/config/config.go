package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	DatabaseURL string
	DBMaxConns  int32

	OpenRouterAPIKey      string
	OpenRouterBase        string
	OpenRouterModel       string
	OpenRouterVisionModel string
	OpenRouterAppTitle    string
	OpenRouterReferer     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	ChromePath  string
	MaxUploadMB int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "prod"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  int32(getEnvInt("DB_MAX_CONNS", 10)),

		OpenRouterAPIKey:      strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterBase:        getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterModel:       getEnv("OPENROUTER_MODEL", "qwen/qwen2.5-32b-instruct"),
		OpenRouterVisionModel: getEnv("OPENROUTER_VISION_MODEL", "openai/gpt-4.1-mini"),
		OpenRouterAppTitle:    getEnv("OPENROUTER_APP_TITLE", "cvstudio"),
		OpenRouterReferer:     os.Getenv("OPENROUTER_REFERER"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		ChromePath:  os.Getenv("CHROME_PATH"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 15),
	}
}

// LLMEnabled reports whether a model credential is configured. Without it the
// service runs on the heuristic parser only and images yield no text.
func (c Config) LLMEnabled() bool { return c.OpenRouterAPIKey != "" }

// CacheEnabled reports whether a Redis address is configured.
func (c Config) CacheEnabled() bool { return c.RedisAddr != "" }

// MaxUploadBytes is the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 15 << 20
	}
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
