package config

import "time"

// GroqConfig содержит настройки доступа к Groq API.
// Ключ читается из GROQ_API_KEY; его отсутствие не мешает запуску сервиса,
// но первое обращение к суммаризации завершится ошибкой конфигурации.
type GroqConfig struct {
	APIKey    string        `yaml:"api_key" env:"GROQ_API_KEY" env-default:""`
	BaseURL   string        `yaml:"base_url" env:"NOTESAI_GROQ_BASE_URL" env-default:"https://api.groq.com"`
	Model     string        `yaml:"model" env:"NOTESAI_GROQ_MODEL" env-default:"llama3-70b-8192"`
	MaxTokens int           `yaml:"max_tokens" env:"NOTESAI_GROQ_MAX_TOKENS" env-default:"150"`
	Timeout   time.Duration `yaml:"timeout" env:"NOTESAI_GROQ_TIMEOUT" env-default:"60s"`
}
