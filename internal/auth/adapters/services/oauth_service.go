package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"notesai/internal/auth/domain/services"
	svc "notesai/internal/auth/ports/services"
	"notesai/internal/config"
	"notesai/pkg/logger"
)

// Поддерживаемые OAuth провайдеры.
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// Константы для логирования.
const (
	LogExchangingCode  = "exchanging oauth code"
	LogFetchingProfile = "fetching oauth user profile"

	ErrorTokenExchange  = "oauth token exchange failed"
	ErrorProfileRequest = "oauth profile request failed"
)

// Endpoints задает адреса OAuth провайдеров. Переопределяется в тестах.
type Endpoints struct {
	GoogleAuthURL  string
	GoogleTokenURL string
	GoogleUserURL  string
	GitHubAuthURL  string
	GitHubTokenURL string
	GitHubUserURL  string
}

// DefaultEndpoints возвращает боевые адреса провайдеров.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		GoogleAuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
		GoogleTokenURL: "https://oauth2.googleapis.com/token",
		GoogleUserURL:  "https://openidconnect.googleapis.com/v1/userinfo",
		GitHubAuthURL:  "https://github.com/login/oauth/authorize",
		GitHubTokenURL: "https://github.com/login/oauth/access_token",
		GitHubUserURL:  "https://api.github.com/user",
	}
}

// ServiceOAuth реализует интерфейс OAuthService через resty.
type ServiceOAuth struct {
	http      *resty.Client
	cfg       *config.OAuthConfig
	endpoints Endpoints
}

// NewOAuth создает OAuth сервис с боевыми адресами провайдеров.
func NewOAuth(cfg *config.OAuthConfig) svc.OAuthService {
	return NewOAuthWithEndpoints(cfg, DefaultEndpoints())
}

// NewOAuthWithEndpoints создает OAuth сервис с указанными адресами провайдеров.
func NewOAuthWithEndpoints(cfg *config.OAuthConfig, endpoints Endpoints) svc.OAuthService {
	return &ServiceOAuth{
		http:      resty.New(),
		cfg:       cfg,
		endpoints: endpoints,
	}
}

// AuthURL возвращает URL для перенаправления пользователя к провайдеру.
func (s *ServiceOAuth) AuthURL(provider, state string) (string, error) {
	switch provider {
	case ProviderGoogle:
		q := url.Values{}
		q.Set("client_id", s.cfg.Google.ClientID)
		q.Set("redirect_uri", s.cfg.Google.RedirectURL)
		q.Set("response_type", "code")
		q.Set("scope", "openid email profile")
		q.Set("state", state)
		return s.endpoints.GoogleAuthURL + "?" + q.Encode(), nil
	case ProviderGitHub:
		q := url.Values{}
		q.Set("client_id", s.cfg.GitHub.ClientID)
		q.Set("redirect_uri", s.cfg.GitHub.RedirectURL)
		q.Set("scope", "read:user user:email")
		q.Set("state", state)
		return s.endpoints.GitHubAuthURL + "?" + q.Encode(), nil
	default:
		return "", fmt.Errorf("%w: %s", services.ErrUnknownOAuthProvider, provider)
	}
}

// Exchange обменивает код авторизации на данные пользователя у провайдера.
func (s *ServiceOAuth) Exchange(ctx context.Context, provider, code string) (*svc.OAuthUserInfo, error) {
	switch provider {
	case ProviderGoogle:
		return s.exchangeGoogle(ctx, code)
	case ProviderGitHub:
		return s.exchangeGitHub(ctx, code)
	default:
		return nil, fmt.Errorf("%w: %s", services.ErrUnknownOAuthProvider, provider)
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *ServiceOAuth) exchangeGoogle(ctx context.Context, code string) (*svc.OAuthUserInfo, error) {
	log := logger.Log(ctx).With(zap.String("provider", ProviderGoogle))
	log.Debug(ctx, LogExchangingCode)

	var token tokenResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     s.cfg.Google.ClientID,
			"client_secret": s.cfg.Google.ClientSecret,
			"redirect_uri":  s.cfg.Google.RedirectURL,
			"grant_type":    "authorization_code",
		}).
		SetResult(&token).
		Post(s.endpoints.GoogleTokenURL)
	if err != nil {
		log.Error(ctx, ErrorTokenExchange, zap.Error(err))
		return nil, fmt.Errorf("google token exchange: %w", err)
	}
	if !resp.IsSuccess() || token.AccessToken == "" {
		log.Error(ctx, ErrorTokenExchange, zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("google token exchange: status %d: %w", resp.StatusCode(), services.ErrInvalidCredentials)
	}

	log.Debug(ctx, LogFetchingProfile)

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	resp, err = s.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token.AccessToken).
		SetResult(&profile).
		Get(s.endpoints.GoogleUserURL)
	if err != nil {
		log.Error(ctx, ErrorProfileRequest, zap.Error(err))
		return nil, fmt.Errorf("google profile request: %w", err)
	}
	if !resp.IsSuccess() || profile.Email == "" {
		log.Error(ctx, ErrorProfileRequest, zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("google profile request: status %d: %w", resp.StatusCode(), services.ErrInvalidCredentials)
	}

	username := profile.Name
	if username == "" {
		username, _, _ = strings.Cut(profile.Email, "@")
	}

	return &svc.OAuthUserInfo{Provider: ProviderGoogle, Email: profile.Email, Username: username}, nil
}

func (s *ServiceOAuth) exchangeGitHub(ctx context.Context, code string) (*svc.OAuthUserInfo, error) {
	log := logger.Log(ctx).With(zap.String("provider", ProviderGitHub))
	log.Debug(ctx, LogExchangingCode)

	var token tokenResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     s.cfg.GitHub.ClientID,
			"client_secret": s.cfg.GitHub.ClientSecret,
			"redirect_uri":  s.cfg.GitHub.RedirectURL,
		}).
		SetResult(&token).
		Post(s.endpoints.GitHubTokenURL)
	if err != nil {
		log.Error(ctx, ErrorTokenExchange, zap.Error(err))
		return nil, fmt.Errorf("github token exchange: %w", err)
	}
	if !resp.IsSuccess() || token.AccessToken == "" {
		log.Error(ctx, ErrorTokenExchange, zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("github token exchange: status %d: %w", resp.StatusCode(), services.ErrInvalidCredentials)
	}

	log.Debug(ctx, LogFetchingProfile)

	var profile struct {
		Login string `json:"login"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	resp, err = s.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("Authorization", "Bearer "+token.AccessToken).
		SetResult(&profile).
		Get(s.endpoints.GitHubUserURL)
	if err != nil {
		log.Error(ctx, ErrorProfileRequest, zap.Error(err))
		return nil, fmt.Errorf("github profile request: %w", err)
	}
	if !resp.IsSuccess() || profile.Login == "" {
		log.Error(ctx, ErrorProfileRequest, zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("github profile request: status %d: %w", resp.StatusCode(), services.ErrInvalidCredentials)
	}

	// У части аккаунтов email скрыт; используем noreply-адрес GitHub.
	email := profile.Email
	if email == "" {
		email = profile.Login + "@users.noreply.github.com"
	}
	username := profile.Name
	if username == "" {
		username = profile.Login
	}

	return &svc.OAuthUserInfo{Provider: ProviderGitHub, Email: email, Username: username}, nil
}
