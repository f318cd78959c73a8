// Package app implements application business logic for authentication.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"notesai/internal/auth/domain/entities"
	"notesai/internal/auth/domain/services"
	"notesai/internal/auth/ports/api"
	"notesai/internal/auth/ports/repositories"
	svc "notesai/internal/auth/ports/services"
	"notesai/pkg/logger"
)

// Константы для логирования.
const (
	msgStartRegistration   = "starting user registration"
	msgInvalidEmailFormat  = "invalid email format"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgOAuthLogin          = "oauth login"
	msgOAuthUserCreated    = "user created from oauth profile"
	msgRefreshingTokens    = "refreshing tokens"
	msgRevokedTokenAttempt = "attempt to use revoked token"
	msgExpiredTokenAttempt = "attempt to use expired token"
	msgTokensRefreshed     = "tokens refreshed successfully"
	msgUserLoggedOut       = "user logged out successfully"

	errCtxValidatingEmail     = "validating email"
	errCtxValidatingUsername  = "validating username"
	errCtxValidatingPassword  = "validating password"
	errCtxCheckingUser        = "checking existing user"
	errCtxEmailRegistered     = "email already registered"
	errCtxHashingPassword     = "hashing password"
	errCtxCreatingUser        = "creating user"
	errCtxGeneratingTokens    = "generating tokens"
	errCtxInvalidCredentials  = "invalid credentials"
	errCtxFindingUser         = "finding user"
	errCtxVerifyingPassword   = "verifying password"
	errCtxExchangingCode      = "exchanging oauth code"
	errCtxFindingRefreshToken = "finding refresh token"
	errCtxTokenRevoked        = "token revoked"
	errCtxTokenExpired        = "token expired"
	errCtxRevokingToken       = "revoking token"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthUseCaseImpl реализует интерфейс api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	tokenRepo   repositories.TokenRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	oauthSvc    svc.OAuthService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	oauthSvc svc.OAuthService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		oauthSvc:    oauthSvc,
	}
}

// Register создает нового пользователя с указанными учетными данными.
func (a *AuthUseCaseImpl) Register(ctx context.Context, email, username, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "Register"), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if username == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}
	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, err)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, "failed to check existing user", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, "failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		log.Error(ctx, "failed to create user", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	tokenPair, err := a.generateTokenPair(ctx, createdUser)
	if err != nil {
		log.Error(ctx, "failed to generate tokens for new user", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	return tokenPair, nil
}

// Login аутентифицирует пользователя по email и паролю.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "Login"), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, "error verifying password", zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, "failed to generate tokens on login", zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	return tokenPair, nil
}

// OAuthRedirectURL возвращает URL для перенаправления к провайдеру.
func (a *AuthUseCaseImpl) OAuthRedirectURL(provider, state string) (string, error) {
	authURL, err := a.oauthSvc.AuthURL(provider, state)
	if err != nil {
		return "", fmt.Errorf("building oauth redirect url: %w", err)
	}
	return authURL, nil
}

// LoginWithOAuth обменивает код авторизации провайдера на пару токенов.
// При первом входе пользователь создается по данным профиля провайдера.
func (a *AuthUseCaseImpl) LoginWithOAuth(ctx context.Context, provider, code string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "LoginWithOAuth"), zap.String("provider", provider))
	log.Debug(ctx, msgOAuthLogin)

	info, err := a.oauthSvc.Exchange(ctx, provider, code)
	if err != nil {
		log.Error(ctx, "oauth code exchange failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxExchangingCode, err)
	}

	user, err := a.userRepo.FindByEmail(ctx, info.Email)
	if err != nil {
		if !errors.Is(err, entities.ErrUserNotFound) {
			log.Error(ctx, "error finding user by email", zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
		}

		user, err = a.userRepo.Create(ctx, &entities.User{
			Email:         info.Email,
			Username:      info.Username,
			OAuthProvider: info.Provider,
		})
		if err != nil {
			log.Error(ctx, "failed to create oauth user", zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
		}
		log.Info(ctx, msgOAuthUserCreated, zap.String("userID", user.ID))
	}

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, "failed to generate tokens on oauth login", zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return tokenPair, nil
}

// RefreshTokens выпускает новую пару токенов, отзывая использованный refresh-токен.
func (a *AuthUseCaseImpl) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", "RefreshTokens"))
	log.Debug(ctx, msgRefreshingTokens)

	storedToken, err := a.tokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingRefreshToken, err)
	}

	if storedToken.IsRevoked {
		log.Warn(ctx, msgRevokedTokenAttempt, zap.String("userID", storedToken.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxTokenRevoked, services.ErrRevokedRefreshToken)
	}

	if time.Now().After(storedToken.ExpiresAt) {
		log.Warn(ctx, msgExpiredTokenAttempt, zap.String("userID", storedToken.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxTokenExpired, services.ErrInvalidRefreshToken)
	}

	user, err := a.userRepo.FindByID(ctx, storedToken.UserID)
	if err != nil {
		log.Error(ctx, "failed to find user for refresh token", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := a.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		log.Error(ctx, "failed to revoke old token", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	tokenPair, err := a.generateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, "failed to generate new tokens during refresh", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed, zap.String("userID", user.ID))
	return tokenPair, nil
}

// Logout отзывает refresh-токен пользователя.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", "Logout"))

	if err := a.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		log.Error(ctx, "failed to revoke refresh token", zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

func (a *AuthUseCaseImpl) generateTokenPair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	accessToken, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.tokenSvc.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	err = a.tokenRepo.StoreRefreshToken(ctx, &services.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: refreshExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &services.TokenPair{
		UserID:       user.ID,
		Username:     user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func validateEmail(email string) error {
	if !emailRegexp.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < services.MinPasswordLength {
		return entities.ErrPasswordTooShort
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return entities.ErrPasswordTooWeak
	}

	return nil
}
