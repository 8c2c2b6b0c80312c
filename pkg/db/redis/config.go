// Package redis предоставляет общую реализацию клиента Redis.
package redis

import "time"

// Значения по умолчанию для подключения к Redis.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultPassword = ""
	DefaultDB       = 0
	DefaultPoolSize = 10
	DefaultTimeout  = 5 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Password: DefaultPassword,
		DB:       DefaultDB,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}

// PanelRedisConfig представляет источник настроек Redis из конфигурации сервиса.
type PanelRedisConfig interface {
	GetHost() string
	GetPort() int
	GetPassword() string
	GetDB() int
	GetPoolSize() int
}

// NewConfigFromPanelConfig создает конфигурацию Redis из конфигурации сервиса.
func NewConfigFromPanelConfig(cfg PanelRedisConfig) *Config {
	return &Config{
		Host:     cfg.GetHost(),
		Port:     cfg.GetPort(),
		Password: cfg.GetPassword(),
		DB:       cfg.GetDB(),
		PoolSize: cfg.GetPoolSize(),
		Timeout:  DefaultTimeout,
	}
}
