package client

import (
	"context"
	"fmt"
	"time"
)

// TokenPair - пара токенов, выданная сервером.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Profile - профиль пользователя.
type Profile struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	OAuthProvider string    `json:"oauth_provider,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SignUp регистрирует нового пользователя и сохраняет выданные токены.
func (c *Client) SignUp(ctx context.Context, email, username, password string) (*TokenPair, error) {
	var pair TokenPair
	resp, err := c.request(ctx).
		SetBody(map[string]string{
			"email":    email,
			"username": username,
			"password": password,
		}).
		SetResult(&pair).
		Post("/api/v1/auth/register")
	if err != nil {
		return nil, fmt.Errorf("sign up request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return &pair, nil
}

// SignIn выполняет вход по email и паролю и сохраняет выданные токены.
func (c *Client) SignIn(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair TokenPair
	resp, err := c.request(ctx).
		SetBody(map[string]string{
			"email":    email,
			"password": password,
		}).
		SetResult(&pair).
		Post("/api/v1/auth/login")
	if err != nil {
		return nil, fmt.Errorf("sign in request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return &pair, nil
}

// OAuthRedirectURL возвращает URL авторизации у внешнего провайдера.
func (c *Client) OAuthRedirectURL(ctx context.Context, provider, state string) (string, error) {
	var result struct {
		URL string `json:"url"`
	}
	resp, err := c.request(ctx).
		SetQueryParam("state", state).
		SetResult(&result).
		Get("/api/v1/auth/oauth/" + provider)
	if err != nil {
		return "", fmt.Errorf("oauth redirect request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return "", err
	}

	return result.URL, nil
}

// ExchangeOAuthCode обменивает код авторизации провайдера на пару токенов.
func (c *Client) ExchangeOAuthCode(ctx context.Context, provider, code string) (*TokenPair, error) {
	var pair TokenPair
	resp, err := c.request(ctx).
		SetBody(map[string]string{"code": code}).
		SetResult(&pair).
		Post("/api/v1/auth/oauth/" + provider + "/callback")
	if err != nil {
		return nil, fmt.Errorf("oauth callback request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return &pair, nil
}

// Refresh обменивает refresh-токен на новую пару и сохраняет ее.
func (c *Client) Refresh(ctx context.Context) (*TokenPair, error) {
	var pair TokenPair
	resp, err := c.request(ctx).
		SetBody(map[string]string{"refresh_token": c.RefreshToken()}).
		SetResult(&pair).
		Post("/api/v1/auth/refresh")
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return &pair, nil
}

// SignOut отзывает refresh-токен на сервере и сбрасывает локальные токены.
func (c *Client) SignOut(ctx context.Context) error {
	refreshToken := c.RefreshToken()
	c.SetTokens("", "")

	if refreshToken == "" {
		return nil
	}

	resp, err := c.request(ctx).
		SetBody(map[string]string{"refresh_token": refreshToken}).
		Post("/api/v1/auth/logout")
	if err != nil {
		return fmt.Errorf("sign out request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	return nil
}

// GetProfile возвращает профиль текущего пользователя.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	resp, err := c.request(ctx).
		SetResult(&profile).
		Get("/api/v1/user/profile")
	if err != nil {
		return nil, fmt.Errorf("profile request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &profile, nil
}
