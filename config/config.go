// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"5300"`
	DatabaseURL    string   `env:"DATABASE_URL,required,notEmpty"`
	GatewayToken   string   `env:"GATEWAY_TOKEN,required,notEmpty"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RankingCacheTTL time.Duration `env:"RANKING_CACHE_TTL" envDefault:"5m"`

	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	CDNBaseURL        string `env:"CDN_BASE_URL"`

	RejectionRetention     time.Duration `env:"REJECTION_RETENTION" envDefault:"2160h"`
	RetentionSweepInterval time.Duration `env:"RETENTION_SWEEP_INTERVAL" envDefault:"1h"`

	BootstrapAdminEmail string `env:"BOOTSTRAP_ADMIN_EMAIL"`
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
	if cfg.RankingCacheTTL <= 0 {
		return nil, fmt.Errorf("RANKING_CACHE_TTL must be positive")
	}
	if cfg.RejectionRetention <= 0 || cfg.RetentionSweepInterval <= 0 {
		return nil, fmt.Errorf("REJECTION_RETENTION and RETENTION_SWEEP_INTERVAL must be positive")
	}
	return &cfg, nil
}

// R2Enabled reports whether every R2 setting needed for publishing is present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2BucketName != ""
}

// CacheEnabled reports whether rankings should be cached in Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Origins joins AllowedOrigins the way fiber's CORS middleware expects.
func (c *Config) Origins() string {
	return strings.Join(c.AllowedOrigins, ",")
}
