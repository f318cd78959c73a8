// Package dto содержит структуры запросов и ответов HTTP-слоя.
package dto

import "time"

// RegisterRequest - запрос на регистрацию пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest - запрос на вход пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest - запрос на обновление пары токенов.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest - запрос на выход пользователя.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// OAuthCallbackRequest - запрос на обмен кода авторизации провайдера.
type OAuthCallbackRequest struct {
	Code string `json:"code"`
}

// TokenResponse - ответ с парой токенов.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// OAuthRedirectResponse - ответ с URL авторизации у внешнего провайдера.
type OAuthRedirectResponse struct {
	URL string `json:"url"`
}

// UserProfileResponse - ответ с профилем пользователя.
type UserProfileResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	OAuthProvider string    `json:"oauth_provider,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrorResponse - стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse - стандартный ответ с сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}
