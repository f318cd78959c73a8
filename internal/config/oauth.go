package config

// OAuthProviderConfig содержит учетные данные одного OAuth провайдера.
type OAuthProviderConfig struct {
	ClientID     string `yaml:"client_id" env:"CLIENT_ID" env-default:""`
	ClientSecret string `yaml:"client_secret" env:"CLIENT_SECRET" env-default:""`
	RedirectURL  string `yaml:"redirect_url" env:"REDIRECT_URL" env-default:""`
}

// OAuthConfig содержит настройки OAuth входа.
type OAuthConfig struct {
	Google OAuthProviderConfig `yaml:"google" env-prefix:"NOTESAI_OAUTH_GOOGLE_"`
	GitHub OAuthProviderConfig `yaml:"github" env-prefix:"NOTESAI_OAUTH_GITHUB_"`
}
