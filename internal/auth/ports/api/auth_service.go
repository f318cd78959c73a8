// Package api defines application-level interfaces for authentication.
package api

import (
	"context"

	"notesai/internal/auth/domain/services"
)

// AuthUseCase определяет операции аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, email, username, password string) (*services.TokenPair, error)

	Login(ctx context.Context, email, password string) (*services.TokenPair, error)

	// LoginWithOAuth обменивает код авторизации провайдера на пару токенов,
	// создавая пользователя при первом входе.
	LoginWithOAuth(ctx context.Context, provider, code string) (*services.TokenPair, error)

	// OAuthRedirectURL возвращает URL для перенаправления к провайдеру.
	OAuthRedirectURL(provider, state string) (string, error)

	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	Logout(ctx context.Context, refreshToken string) error
}
