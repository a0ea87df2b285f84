package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHOPDASH_"

// Config is the service configuration.
type Config struct {
	Server       ServerConfig                 `yaml:"server"`
	Backend      BackendConfig                `yaml:"backend"`
	Chart        ChartConfig                  `yaml:"chart"`
	Log          LogConfig                    `yaml:"log"`
	Translations map[string]map[string]string `yaml:"translations"`
}

// ServerConfig controls the HTTP listener and route layout.
type ServerConfig struct {
	Address   string `yaml:"address" validate:"required"`
	Namespace string `yaml:"namespace" validate:"required,excludesall=/ "`
	BasePath  string `yaml:"base_path"`
}

// BackendConfig points at the shopping backend.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	Mock    bool          `yaml:"mock"`
}

// ChartConfig tunes the history chart.
type ChartConfig struct {
	Theme      string        `yaml:"theme"`
	AssetsHost string        `yaml:"assets_host" validate:"omitempty,url"`
	Height     string        `yaml:"height"`
	CacheTTL   time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	RedisURL   string        `yaml:"redis_url" validate:"omitempty,url"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level    string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	File     string `yaml:"file"`
	NoColors bool   `yaml:"no_colors"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:   ":8080",
			Namespace: "shopping",
		},
		Backend: BackendConfig{
			Timeout: 10 * time.Second,
		},
		Chart: ChartConfig{
			CacheTTL: 5 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Override adjusts a loaded configuration before validation, e.g. from CLI flags.
type Override func(*Config)

// WithMockBackend forces the built-in fixtures when enabled.
func WithMockBackend(enabled bool) Override {
	return func(cfg *Config) {
		if enabled {
			cfg.Backend.Mock = true
		}
	}
}

// Load builds the configuration from defaults, an optional YAML file, optional
// .env files and SHOPDASH_* environment variables, in that order.
func Load(path string, envFiles ...string) (Config, error) {
	return LoadWithOverrides(path, envFiles)
}

// LoadWithOverrides is Load followed by overrides, which win over every other source.
func LoadWithOverrides(path string, envFiles []string, overrides ...Override) (Config, error) {
	cfg := Default()

	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	for _, override := range overrides {
		if override != nil {
			override(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !c.Backend.Mock && c.Backend.BaseURL == "" {
		return errors.New("config: backend.base_url is required unless backend.mock is set")
	}
	return nil
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, target *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*target = strings.TrimSpace(v)
		}
	}
	dur := func(key string, target *time.Duration) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = d
		return nil
	}
	boolean := func(key string, target *bool) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = b
		return nil
	}

	str("ADDRESS", &cfg.Server.Address)
	str("NAMESPACE", &cfg.Server.Namespace)
	str("BASE_PATH", &cfg.Server.BasePath)
	str("BACKEND_URL", &cfg.Backend.BaseURL)
	str("CHART_THEME", &cfg.Chart.Theme)
	str("CHART_ASSETS_HOST", &cfg.Chart.AssetsHost)
	str("CHART_HEIGHT", &cfg.Chart.Height)
	str("REDIS_URL", &cfg.Chart.RedisURL)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FILE", &cfg.Log.File)

	return errors.Join(
		dur("BACKEND_TIMEOUT", &cfg.Backend.Timeout),
		dur("CHART_CACHE_TTL", &cfg.Chart.CacheTTL),
		boolean("BACKEND_MOCK", &cfg.Backend.Mock),
		boolean("LOG_NO_COLORS", &cfg.Log.NoColors),
	)
}
