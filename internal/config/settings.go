package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings are read once at startup.
type Settings struct {
	Env            string
	RedisAddr      string
	RedisPassword  string
	AuthToken      string
	OCRCallTimeout time.Duration

	TextLayerFallback bool

	SummaryProvider string //"", "gemini" or "openai"
	GeminiAPIKey    string
	OpenAIAPIKey    string

	SimilarityEnabled  bool
	SimilarityMinScore float32
	QdrantHost         string
	QdrantAPIKey       string
}

// OCRSettings are read from the environment on every extraction call so a
// region or bucket change takes effect without a restart.
type OCRSettings struct {
	Region string
	Bucket string
}

func (s Settings) IsProd() bool {
	return strings.EqualFold(s.Env, "production")
}

// AuthEnabled reports whether bearer auth is enforced.
func (s Settings) AuthEnabled() bool {
	return s.AuthToken != ""
}

// LoadDotEnv loads a .env file when present. A missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}
}

func Load() Settings {
	return Settings{
		Env:                getEnv("APP_ENV", "development"),
		RedisAddr:          getEnv("REDIS_ADDR", RedisAddr),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		AuthToken:          getEnv("API_AUTH_TOKEN", ""),
		OCRCallTimeout:     getEnvAsDuration("OCR_CALL_TIMEOUT", DefaultOCRCallTimeout),
		TextLayerFallback:  getEnvAsBool("TEXT_LAYER_FALLBACK", false),
		SummaryProvider:    strings.ToLower(getEnv("SUMMARY_PROVIDER", "")),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		SimilarityEnabled:  getEnvAsBool("SIMILARITY_ENABLED", false),
		SimilarityMinScore: getEnvAsFloat32("SIMILARITY_MIN_SCORE", 0.92),
		QdrantHost:         getEnv("QDRANT_HOST", ""),
		QdrantAPIKey:       getEnv("QDRANT_API_KEY", ""),
	}
}

func OCR() OCRSettings {
	region := getEnv("OCR_REGION", "")
	if region == "" {
		region = getEnv("AWS_REGION", "")
	}
	return OCRSettings{
		Region: region,
		Bucket: getEnv("OCR_STAGING_BUCKET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
