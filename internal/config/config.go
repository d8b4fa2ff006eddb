package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Admin  AdminConfig
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"5000"`
}

type DBConfig struct {
	// DATABASE_URL wins when set; otherwise the DSN is assembled from parts.
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"storefront"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"720h"` // 30 days
}

type AdminConfig struct {
	// When SetupToken is set, /admin/create-first-admin requires a matching
	// X-Setup-Token header.
	SetupToken string `env:"SETUP_TOKEN"`
	Username   string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password   string `env:"ADMIN_PASSWORD" envDefault:"dadawear123"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
