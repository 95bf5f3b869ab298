package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrMissingAPIURL = errors.New("API_URL is not set")

// Config is built once at start and handed to every component that needs it.
type Config struct {
	APIURL         string        `yaml:"api_url"`
	APIKey         string        `yaml:"api_key"`
	Addr           string        `yaml:"addr"`
	AppEnv         string        `yaml:"app_env"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RedisAddr      string        `yaml:"redis_addr"`
	DatabaseURL    string        `yaml:"database_url"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	RateLimit      int           `yaml:"rate_limit"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		AppEnv:      "development",
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:3000"},
		RateLimit:   10,
		SessionTTL:  30 * time.Minute,
	}
}

// Load reads an optional YAML file, then the environment (and .env outside
// production). Environment values win over the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"API_URL":      &cfg.APIURL,
		"API_KEY":      &cfg.APIKey,
		"ADDR":         &cfg.Addr,
		"APP_ENV":      &cfg.AppEnv,
		"LOG_LEVEL":    &cfg.LogLevel,
		"REDIS_ADDR":   &cfg.RedisAddr,
		"DATABASE_URL": &cfg.DatabaseURL,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
		"SESSION_TTL":     &cfg.SessionTTL,
	}
	for key, dst := range durations {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = n
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	return nil
}

func (c Config) Validate() error {
	if c.APIURL == "" {
		return ErrMissingAPIURL
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
