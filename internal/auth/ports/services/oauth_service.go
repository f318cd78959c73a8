package services

import "context"

// OAuthUserInfo содержит данные пользователя, полученные от OAuth провайдера.
type OAuthUserInfo struct {
	Provider string
	Email    string
	Username string
}

// OAuthService определяет интерфейс обмена OAuth кода на данные пользователя.
type OAuthService interface {
	// AuthURL возвращает URL для перенаправления пользователя к провайдеру.
	AuthURL(provider, state string) (string, error)

	// Exchange обменивает код авторизации на данные пользователя у провайдера.
	Exchange(ctx context.Context, provider, code string) (*OAuthUserInfo, error)
}
