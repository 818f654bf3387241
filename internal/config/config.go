package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is loaded from an optional YAML file, then overridden by
// environment variables. Secrets (API keys, database URL) come from the
// environment only.
type Config struct {
	Server struct {
		Port            string `yaml:"port"`
		WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	} `yaml:"server"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"-"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Postgres struct {
		URL string `yaml:"-"`
	} `yaml:"postgres"`

	Solver struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"-"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"solver"`

	Traffic struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"-"`
	} `yaml:"traffic"`

	Weather struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"-"`
	} `yaml:"weather"`

	Engine struct {
		CacheTTLSec      int     `yaml:"cache_ttl_sec"`
		FallbackSpeedKmh float64 `yaml:"fallback_speed_kmh"`
		PoolingRadiusKm  float64 `yaml:"pooling_radius_km"`
		RerouteBufferKm  float64 `yaml:"reroute_buffer_km"`
		CommitSlackMin   int     `yaml:"commit_slack_min"`
	} `yaml:"engine"`
}

// Load reads the YAML file at path (missing file is fine), then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// run on defaults + env
		case err != nil:
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("load config: parse %q: %w", path, err)
			}
		}
	}

	cfg.Server.Port = Get("PORT", cfg.Server.Port)
	cfg.Redis.Addr = Get("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = Get("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", cfg.Redis.DB)
	cfg.Postgres.URL = Get("DATABASE_URL", "")
	cfg.Solver.BaseURL = Get("SOLVER_BASE_URL", cfg.Solver.BaseURL)
	cfg.Solver.APIKey = Get("SOLVER_API_KEY", "")
	cfg.Solver.TimeoutSec = getInt("SOLVER_TIMEOUT_SEC", cfg.Solver.TimeoutSec)
	cfg.Traffic.BaseURL = Get("TRAFFIC_BASE_URL", cfg.Traffic.BaseURL)
	cfg.Traffic.APIKey = Get("TRAFFIC_API_KEY", "")
	cfg.Weather.BaseURL = Get("WEATHER_BASE_URL", cfg.Weather.BaseURL)
	cfg.Weather.APIKey = Get("WEATHER_API_KEY", "")

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Server.WriteTimeoutSec = 120
	cfg.Solver.TimeoutSec = 30
	cfg.Engine.CacheTTLSec = 300
	cfg.Engine.FallbackSpeedKmh = 60
	cfg.Engine.PoolingRadiusKm = 15
	cfg.Engine.RerouteBufferKm = 0.5
	cfg.Engine.CommitSlackMin = 30
	return cfg
}

// Get returns an environment variable or the fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
