package config

import "strconv"

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host     string `yaml:"host" env:"PANEL_REDIS_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"PANEL_REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"PANEL_REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"PANEL_REDIS_DB" env-default:"0"`
	PoolSize int    `yaml:"pool_size" env:"PANEL_REDIS_POOL_SIZE" env-default:"10"`
}

// GetAddressString возвращает адрес Redis строкой.
func (c *RedisConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// GetHost возвращает хост Redis.
func (c *RedisConfig) GetHost() string { return c.Host }

// GetPort возвращает порт Redis.
func (c *RedisConfig) GetPort() int { return c.Port }

// GetPassword возвращает пароль Redis.
func (c *RedisConfig) GetPassword() string { return c.Password }

// GetDB возвращает номер базы Redis.
func (c *RedisConfig) GetDB() int { return c.DB }

// GetPoolSize возвращает размер пула соединений Redis.
func (c *RedisConfig) GetPoolSize() int { return c.PoolSize }
