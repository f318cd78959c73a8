package config

import "time"

// JWTConfig содержит настройки JWT токенов.
type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key" env:"NOTESAI_JWT_SECRET_KEY" env-default:"notesai-dev-secret"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"NOTESAI_JWT_ACCESS_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"NOTESAI_JWT_REFRESH_TTL" env-default:"720h"`
}
