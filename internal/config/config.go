// Package config loads server settings from an optional YAML file and
// environment variables. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DevJWTSecret is used when no secret is configured. Never use it in production.
const DevJWTSecret = "vibewalk-dev-secret-change-me"

// Config holds every tunable of the server.
type Config struct {
	Port       int    `yaml:"port"`
	DBPath     string `yaml:"db_path"`
	StaticPath string `yaml:"static_path"`
	PublicURL  string `yaml:"public_url"`
	LogLevel   string `yaml:"log_level"`

	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	SessionTTL time.Duration `yaml:"session_ttl"`

	OpenAI   OpenAIConfig   `yaml:"openai"`
	Unsplash UnsplashConfig `yaml:"unsplash"`
	Stripe   StripeConfig   `yaml:"stripe"`

	// GenerateRatePerMinute limits route generations and searches per caller.
	GenerateRatePerMinute float64 `yaml:"generate_rate_per_minute"`
	GenerateBurst         int     `yaml:"generate_burst"`
}

type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type UnsplashConfig struct {
	AccessKey string        `yaml:"access_key"`
	Timeout   time.Duration `yaml:"timeout"`
}

type StripeConfig struct {
	SecretKey string `yaml:"secret_key"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:       8080,
		DBPath:     "./data/vibewalk.db",
		StaticPath: "./static",
		PublicURL:  "http://localhost:8080",
		LogLevel:   "info",
		JWTSecret:  DevJWTSecret,
		TokenTTL:   24 * time.Hour,
		SessionTTL: 12 * time.Hour,
		OpenAI: OpenAIConfig{
			Model:   "gpt-4o",
			Timeout: 60 * time.Second,
		},
		Unsplash: UnsplashConfig{
			Timeout: 5 * time.Second,
		},
		GenerateRatePerMinute: 10,
		GenerateBurst:         3,
	}
}

// Load returns the defaults, overlaid by the YAML file at path (if non-empty)
// and then by environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PORT: %w", err))
		} else {
			cfg.Port = port
		}
	}
	str("DB_PATH", &cfg.DBPath)
	str("STATIC_PATH", &cfg.StaticPath)
	str("PUBLIC_URL", &cfg.PublicURL)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("JWT_SECRET", &cfg.JWTSecret)
	dur("TOKEN_TTL", &cfg.TokenTTL)
	dur("SESSION_TTL", &cfg.SessionTTL)
	str("OPENAI_API_KEY", &cfg.OpenAI.APIKey)
	str("OPENAI_MODEL", &cfg.OpenAI.Model)
	str("OPENAI_BASE_URL", &cfg.OpenAI.BaseURL)
	dur("OPENAI_TIMEOUT", &cfg.OpenAI.Timeout)
	str("UNSPLASH_ACCESS_KEY", &cfg.Unsplash.AccessKey)
	dur("IMAGE_TIMEOUT", &cfg.Unsplash.Timeout)
	str("STRIPE_API_KEY", &cfg.Stripe.SecretKey)

	if v, ok := lookup("GENERATE_RATE_PER_MINUTE"); ok && v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("GENERATE_RATE_PER_MINUTE: %w", err))
		} else {
			cfg.GenerateRatePerMinute = r
		}
	}
	if v, ok := lookup("GENERATE_BURST"); ok && v != "" {
		b, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("GENERATE_BURST: %w", err))
		} else {
			cfg.GenerateBurst = b
		}
	}

	return errors.Join(errs...)
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token_ttl must be positive"))
	}
	if c.GenerateRatePerMinute <= 0 || c.GenerateBurst <= 0 {
		errs = append(errs, errors.New("generation rate and burst must be positive"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
