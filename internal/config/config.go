package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/freshsense/spoilage-web/internal/form"
)

// Config holds process configuration read from the environment
type Config struct {
	Port         string
	PredictorURL string
	DatabaseURL  string
	KafkaBrokers []string
	KafkaTopic   string
	Env          string
	LogLevel     string
	Thresholds   form.Thresholds
}

// LoadDotEnv loads a .env file if present. The bool reports whether one was found.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		PredictorURL: getEnv("PREDICTOR_URL", "http://localhost:5000"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "spoilage.predictions"),
		Env:          getEnv("GO_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Thresholds:   form.DefaultThresholds(),
	}

	overrides := []struct {
		key string
		dst *float64
	}{
		{"TAG_PREDICTION_THRESHOLD", &cfg.Thresholds.Prediction},
		{"TAG_SPOILED_DANGER", &cfg.Thresholds.SpoiledDanger},
		{"TAG_SPOILED_WARNING", &cfg.Thresholds.SpoiledWarning},
		{"TAG_FRESH_DANGER", &cfg.Thresholds.FreshDanger},
		{"TAG_FRESH_WARNING", &cfg.Thresholds.FreshWarning},
	}
	for _, o := range overrides {
		raw := os.Getenv(o.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", o.key, err)
		}
		*o.dst = v
	}

	return cfg, nil
}

// IsProduction reports whether GO_ENV selects production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
