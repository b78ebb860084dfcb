package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the application configuration from the environment,
// optionally preloading one or more .env files.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found in current directory")
		}
	}
	for _, path := range envFilePath {
		if err := godotenv.Load(path); err != nil {
			logger.Warn("environment file not loaded", "path", path, "error", err)
		}
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("app config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"redis", maskValue(cfg.Redis.Url),
		"kafka_enabled", cfg.Kafka.Enabled,
		"price_cache_ttl", cfg.Pricing.PriceCacheTTL,
		"update_interval", cfg.Pricing.UpdateInterval,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
