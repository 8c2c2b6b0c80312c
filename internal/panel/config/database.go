package config

import "fmt"

// DatabaseConfig представляет конфигурацию подключения к Postgres.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PANEL_DB_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PANEL_DB_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"PANEL_DB_USER" env-default:"panel"`
	Password       string `yaml:"password" env:"PANEL_DB_PASSWORD" env-default:""`
	Name           string `yaml:"name" env:"PANEL_DB_NAME" env-default:"panel"`
	SSLMode        string `yaml:"ssl_mode" env:"PANEL_DB_SSL_MODE" env-default:"disable"`
	MinConns       int    `yaml:"min_conns" env:"PANEL_DB_MIN_CONNS" env-default:"2"`
	MaxConns       int    `yaml:"max_conns" env:"PANEL_DB_MAX_CONNS" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"PANEL_DB_MIGRATIONS_PATH" env-default:"file://migrations/panel"`
}

// GetDSN возвращает строку подключения к базе данных.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}
