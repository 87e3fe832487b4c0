package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type DatabaseConfig struct {
	Host     string `env:"DB_HOST"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Database string `env:"DB_NAME" envDefault:"tableside"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type RabbitMQConfig struct {
	Host     string `env:"RABBITMQ_HOST"`
	Port     int    `env:"RABBITMQ_PORT" envDefault:"5672"`
	User     string `env:"RABBITMQ_USER" envDefault:"guest"`
	Password string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	VHost    string `env:"RABBITMQ_VHOST" envDefault:"/"`
}

type Config struct {
	Port     int `env:"PORT" envDefault:"3000"`
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
}

// Load reads configuration from environment variables. An empty DB_HOST
// selects the in-memory backend; an empty RABBITMQ_HOST disables the
// broker and keeps fanout in-process.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// UseDatabase reports whether a Postgres backend is configured.
func (c *Config) UseDatabase() bool { return c.Database.Host != "" }

// UseBroker reports whether RabbitMQ fanout is configured.
func (c *Config) UseBroker() bool { return c.RabbitMQ.Host != "" }
