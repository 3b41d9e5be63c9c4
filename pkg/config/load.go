package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the optional .env file and then the process environment
// into an App config.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) > 0 && envFilePath[0] != "" {
		if err := godotenv.Load(envFilePath[0]); err != nil {
			logger.Warn("Environment file not found", "path", envFilePath[0])
		}
	} else if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"jwt_expiry", cfg.Auth.Jwt.Expiry,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"quote_cache_ttl", cfg.QuoteCache.TTL,
		"predictor_script", cfg.Predictor.Script,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
