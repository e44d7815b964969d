package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultSecretKey     = "dev-secret-change-me"
	DefaultAdminPassword = "admin123"
)

// Config holds every runtime setting. All values come from the environment.
type Config struct {
	Env      string `env:"ENV" envDefault:"development"`
	Port     int    `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	SecretKey     string `env:"SECRET_KEY" envDefault:"dev-secret-change-me"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	DBPath         string `env:"DB_PATH" envDefault:"shop.db"`
	SeedDemo       bool   `env:"SEED_DEMO" envDefault:"true"`
	StaticDir      string `env:"STATIC_DIR" envDefault:"static"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"static/uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	return &cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// InsecureDefaults names the secrets that still carry their built-in values.
func (c *Config) InsecureDefaults() []string {
	var names []string
	if c.SecretKey == DefaultSecretKey {
		names = append(names, "SECRET_KEY")
	}
	if c.AdminPassword == DefaultAdminPassword {
		names = append(names, "ADMIN_PASSWORD")
	}
	return names
}
