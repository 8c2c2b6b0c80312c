package config

import "time"

// SessionConfig представляет конфигурацию сессий.
// IdleTTL - таймаут бездействия: каждый запрос взводит его заново.
type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" env:"PANEL_SESSION_COOKIE_NAME" env-default:"panel_session"`
	IdleTTL    time.Duration `yaml:"idle_ttl" env:"PANEL_SESSION_IDLE_TTL" env-default:"30m"`
}
