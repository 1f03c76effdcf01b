package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host" env:"GYMSTATS_HOST, overwrite"`
	Port        int    `toml:"port" env:"GYMSTATS_PORT, overwrite"`

	// browser origins allowed by CORS, non browser clients are not affected
	AllowedOrigins []string `toml:"allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level" env:"GYMSTATS_LOG_LEVEL, overwrite"`
	LogsPath      string `toml:"logs_path" env:"GYMSTATS_LOGS_PATH, overwrite"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	SentryDSN     string `toml:"-" env:"SENTRY_DSN"`

	// tracing
	HoneycombEnabled bool `toml:"honeycomb_enabled" env:"HONEYCOMB_ENABLED, overwrite"`

	// postgres
	PostgresHost     string `toml:"postgres_host" env:"GYMSTATS_POSTGRES_HOST, overwrite"`
	PostgresPort     string `toml:"postgres_port" env:"GYMSTATS_POSTGRES_PORT, overwrite"`
	PostgresDBName   string `toml:"postgres_db_name" env:"GYMSTATS_POSTGRES_DB, overwrite"`
	PostgresUser     string `toml:"postgres_user" env:"GYMSTATS_POSTGRES_USER, overwrite"`
	PostgresPassword string `toml:"-" env:"GYMSTATS_POSTGRES_PASS"`

	// redis
	RedisHost     string `toml:"redis_host" env:"GYMSTATS_REDIS_HOST, overwrite"`
	RedisPort     string `toml:"redis_port" env:"GYMSTATS_REDIS_PORT, overwrite"`
	RedisPassword string `toml:"-" env:"GYMSTATS_REDIS_PASS"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// gymstats
	HistoryCacheSizeMB      int    `toml:"history_cache_size_mb"`
	HistoryCacheTTLSeconds  int    `toml:"history_cache_ttl_seconds"`
	LibraryCacheTTLSeconds  int    `toml:"library_cache_ttl_seconds"`
	WriteRateLimitPerMin    int    `toml:"write_rate_limit_per_min"`
	CalendarTimezone        string `toml:"calendar_timezone" env:"GYMSTATS_CALENDAR_TZ, overwrite"`
	MCPEnabled              bool   `toml:"mcp_enabled"`
	NameNormalizationLocale string `toml:"name_normalization_locale"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML config for the given env and applies env var overrides on top.
func Load(env, path string) (*Config, error) {
	var tomlCfg Toml
	if _, err := toml.DecodeFile(path, &tomlCfg); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}
	return fromToml(&tomlCfg, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, data string) (*Config, error) {
	var tomlCfg Toml
	if _, err := toml.Decode(data, &tomlCfg); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}
	return fromToml(&tomlCfg, env)
}

func fromToml(tomlCfg *Toml, env string) (*Config, error) {
	cfg, err := tomlCfg.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.HistoryCacheSizeMB <= 0 {
		c.HistoryCacheSizeMB = 32
	}
	if c.HistoryCacheTTLSeconds <= 0 {
		c.HistoryCacheTTLSeconds = 600
	}
	if c.LibraryCacheTTLSeconds <= 0 {
		c.LibraryCacheTTLSeconds = 3600
	}
	if c.WriteRateLimitPerMin <= 0 {
		c.WriteRateLimitPerMin = 120
	}
	if c.CalendarTimezone == "" {
		c.CalendarTimezone = "Europe/Rome"
	}
	if c.NameNormalizationLocale == "" {
		c.NameNormalizationLocale = "it"
	}
}
