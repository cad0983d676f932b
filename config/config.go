package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Source     SourceConfig     `yaml:"source"`
	Refresh    RefreshConfig    `yaml:"refresh"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// SourceConfig describes the published sheet export the service polls.
type SourceConfig struct {
	CSVURL         string        `yaml:"csv_url"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"` // Derived from TimeoutSeconds
	MaxRetries     int           `yaml:"max_retries"`
	HTTPProxy      string        `yaml:"http_proxy"`
}

// RefreshConfig holds the refresh loop configuration. Location is resolved
// from Timezone at load time so the rest of the code never touches the host
// timezone.
type RefreshConfig struct {
	Enabled         bool           `yaml:"enabled"`
	IntervalSeconds int            `yaml:"interval_seconds"`
	Interval        time.Duration  `yaml:"-"` // Derived from IntervalSeconds
	Timezone        string         `yaml:"timezone"`
	Location        *time.Location `yaml:"-"` // Derived from Timezone
}

// DatabaseConfig holds the database connection configuration for the push
// subscription store.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// PushConfig holds the VAPID keys for web push notifications. Leaving the
// keys empty disables push entirely.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path. A .env file next to the
// binary is loaded first so secrets can be referenced as ${VAR} in the yaml.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	// Secrets may come from the environment rather than the file.
	cfg.Database.DSN = os.ExpandEnv(cfg.Database.DSN)
	cfg.Push.PublicKey = os.ExpandEnv(cfg.Push.PublicKey)
	cfg.Push.PrivateKey = os.ExpandEnv(cfg.Push.PrivateKey)

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Source.TimeoutSeconds <= 0 {
		cfg.Source.TimeoutSeconds = 30
	}
	cfg.Source.Timeout = time.Duration(cfg.Source.TimeoutSeconds) * time.Second
	if cfg.Source.MaxRetries <= 0 {
		cfg.Source.MaxRetries = 3
	}

	if cfg.Refresh.IntervalSeconds <= 0 {
		cfg.Refresh.IntervalSeconds = 300
	}
	cfg.Refresh.Interval = time.Duration(cfg.Refresh.IntervalSeconds) * time.Second

	if cfg.Refresh.Timezone == "" {
		cfg.Refresh.Timezone = "Asia/Bangkok"
	}
	loc, err := time.LoadLocation(cfg.Refresh.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Refresh.Timezone, err)
	}
	cfg.Refresh.Location = loc

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.DSN == "" {
		cfg.Database.DSN = "carpark.db"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
