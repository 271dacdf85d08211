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
	App       AppConfig
	Session   SessionConfig
	Keuzehulp KeuzehulpConfig
	Ai        AIConfig
	Otel      OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	DatabaseURL        string
	StaticDir          string
}

type SessionConfig struct {
	Secret string
	Store  string // "memory", "redis" or "postgres"
	TTL    time.Duration
}

type KeuzehulpConfig struct {
	Password       string
	CatalogPath    string
	ExposeProducts bool
}

type AIConfig struct {
	LLMProvider   string // "openai", "anthropic", "huggingface" or "ollama"
	LLMModel      string
	MaxTokens     int
	Temperature   float64
	HistoryLimit  int
	OpenAIKey     string
	OpenAIBaseURL string
	AnthropicKey  string
	OllamaBaseURL string
	HFKey         string
	HFBaseURL     string
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
	Environment string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

// LoginEnabled reports whether the shared-password gate is active
func (c *Config) LoginEnabled() bool {
	return c.Keuzehulp.Password != ""
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", getEnv("PORT", "8080")),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "keuzehulp.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			DatabaseURL:        getEnv("DB_CONNECTION_STRING", ""),
			StaticDir:          getEnv("STATIC_DIR", "./static"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "dev-secret-change-me"),
			Store:  strings.ToLower(getEnv("SESSION_STORE", "memory")),
			TTL:    time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		Keuzehulp: KeuzehulpConfig{
			Password:       getEnv("KEUZEHULP_PASSWORD", ""),
			CatalogPath:    getEnv("CATALOG_PATH", "data/tvs.csv"),
			ExposeProducts: getEnvAsBool("EXPOSE_PRODUCTS", true),
		},
		Ai: AIConfig{
			LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 600),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			HistoryLimit:  getEnvAsInt("LLM_HISTORY_LIMIT", 10),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			AnthropicKey:  getEnv("ANTHROPIC_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HFKey:         getEnv("HF_API_KEY", ""),
			HFBaseURL:     getEnv("HF_BASE_URL", ""),
		},
		Otel: OtelConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
			Environment: getEnv("GO_ENV", "development"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
