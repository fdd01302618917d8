package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// reference datasets (CSV files) directory
	DatasetsDir string `toml:"datasets_dir"`

	// fitness summary knobs;
	// the cohort age window is deliberately a named setting, the standalone
	// fitcheck tool uses a wider window (see its -window flag)
	CohortAgeWindow   int `toml:"cohort_age_window"`
	SummaryWindowDays int `toml:"summary_window_days"`

	// rate limiting
	WorkoutsRateLimitAllowedPerMin int `toml:"workouts_rate_limit_allowed_per_min"`

	SentryEnabled bool `toml:"sentry_enabled"`
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

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}

	cfg.Environment = env

	if cfg.CohortAgeWindow <= 0 {
		cfg.CohortAgeWindow = DefaultCohortAgeWindow
	}
	if cfg.SummaryWindowDays <= 0 {
		cfg.SummaryWindowDays = DefaultSummaryWindowDays
	}

	return cfg, nil
}

const (
	DefaultCohortAgeWindow   = 2
	DefaultSummaryWindowDays = 30
)
