package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FallbackPolicy values control what happens when a remote storage call fails.
const (
	FallbackBestEffort = "best_effort" // fall back to the local JSON store
	FallbackFailLoudly = "fail_loudly" // surface the storage error to the caller
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Supabase. Both URL and anon key must be set for remote mode;
	// otherwise the process runs against local JSON files.
	SupabaseURL     string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey string `mapstructure:"SUPABASE_ANON_KEY"`

	// Local storage
	DataDir string `mapstructure:"DATA_DIR"`

	// Redis (optional player-list cache)
	RedisURL string        `mapstructure:"REDIS_URL"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	// Storage behavior
	FallbackPolicy string        `mapstructure:"FALLBACK_POLICY"`
	RemoteTimeout  time.Duration `mapstructure:"REMOTE_TIMEOUT"`
	RemoteRateRPS  int           `mapstructure:"REMOTE_RATE_RPS"`

	// Background snapshot sync ("" disables, otherwise a cron spec)
	SyncSchedule string `mapstructure:"SYNC_SCHEDULE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_ANON_KEY", "")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("FALLBACK_POLICY", FallbackBestEffort)
	viper.SetDefault("REMOTE_TIMEOUT", "10s")
	viper.SetDefault("REMOTE_RATE_RPS", 10)
	viper.SetDefault("SYNC_SCHEDULE", "")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.FallbackPolicy != FallbackBestEffort && config.FallbackPolicy != FallbackFailLoudly {
		return nil, fmt.Errorf("invalid FALLBACK_POLICY %q", config.FallbackPolicy)
	}

	return &config, nil
}

// RemoteConfigured reports whether both Supabase values are present.
// Absence of either is not an error: the process simply runs in local mode.
func (c *Config) RemoteConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
