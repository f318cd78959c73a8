// Package auth содержит HTTP-обработчики для аутентификации.
package auth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesai/internal/auth/domain/entities"
	"notesai/internal/auth/domain/services"
	"notesai/internal/auth/ports/api"
	"notesai/internal/gateway/adapters/http/middleware"
	"notesai/internal/gateway/app/dto"
	"notesai/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerRegister      = "handling register request"
	LogHandlerLogin         = "handling login request"
	LogHandlerRefresh       = "handling refresh tokens request"
	LogHandlerLogout        = "handling logout request"
	LogHandlerProfile       = "handling get profile request"
	LogHandlerOAuthRedirect = "handling oauth redirect request"
	LogHandlerOAuthCallback = "handling oauth callback request"

	ErrMsgInvalidRequestBody  = "invalid request body"
	ErrMsgEmailTaken          = "user with this email already exists"
	ErrMsgInvalidCredentials  = "invalid email or password"
	ErrMsgInvalidRefreshToken = "invalid or revoked refresh token"
	ErrMsgUnknownProvider     = "unknown oauth provider"
	ErrMsgMissingOAuthCode    = "authorization code is required"
	ErrMsgUserNotFound        = "user not found"
	ErrMsgInternal            = "internal server error"
)

// Handler обработчик HTTP-запросов аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Register"))
	log.Debug(userCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	pair, err := h.authUseCase.Register(userCtx, req.Email, req.Username, req.Password)
	if err != nil {
		log.Debug(userCtx, "registration failed", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(toTokenResponse(pair)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(userCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	pair, err := h.authUseCase.Login(userCtx, req.Email, req.Password)
	if err != nil {
		log.Debug(userCtx, "login failed", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(toTokenResponse(pair)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// RefreshTokens обрабатывает запрос на обновление пары токенов.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.RefreshTokens"))
	log.Debug(userCtx, LogHandlerRefresh)

	var req dto.RefreshTokenRequest
	if err := ctx.Bind().Body(&req); err != nil || req.RefreshToken == "" {
		log.Debug(userCtx, ErrMsgInvalidRequestBody)
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	pair, err := h.authUseCase.RefreshTokens(userCtx, req.RefreshToken)
	if err != nil {
		log.Debug(userCtx, "refresh failed", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(toTokenResponse(pair)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос на выход пользователя.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Logout"))
	log.Debug(userCtx, LogHandlerLogout)

	var req dto.LogoutRequest
	if err := ctx.Bind().Body(&req); err != nil || req.RefreshToken == "" {
		log.Debug(userCtx, ErrMsgInvalidRequestBody)
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	if err := h.authUseCase.Logout(userCtx, req.RefreshToken); err != nil {
		log.Debug(userCtx, "logout failed", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(dto.MessageResponse{Message: "logged out"}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetProfile"))
	log.Debug(userCtx, LogHandlerProfile)

	userID, _ := ctx.Locals(middleware.UserIDKey).(string)

	user, err := h.userUseCase.GetUserProfile(userCtx, userID)
	if err != nil {
		log.Debug(userCtx, "failed to get profile", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(dto.UserProfileResponse{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		OAuthProvider: user.OAuthProvider,
		CreatedAt:     user.CreatedAt,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// OAuthRedirect возвращает URL авторизации у внешнего провайдера.
func (h *Handler) OAuthRedirect(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.OAuthRedirect"))
	log.Debug(userCtx, LogHandlerOAuthRedirect)

	provider := ctx.Params("provider")
	state := ctx.Query("state")

	url, err := h.authUseCase.OAuthRedirectURL(provider, state)
	if err != nil {
		log.Debug(userCtx, "failed to build redirect url", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(dto.OAuthRedirectResponse{URL: url}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// OAuthCallback обменивает код авторизации провайдера на пару токенов.
func (h *Handler) OAuthCallback(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.OAuthCallback"))
	log.Debug(userCtx, LogHandlerOAuthCallback)

	provider := ctx.Params("provider")

	var req dto.OAuthCallbackRequest
	if err := ctx.Bind().Body(&req); err != nil || req.Code == "" {
		log.Debug(userCtx, ErrMsgMissingOAuthCode)
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgMissingOAuthCode)
	}

	pair, err := h.authUseCase.LoginWithOAuth(userCtx, provider, req.Code)
	if err != nil {
		log.Debug(userCtx, "oauth login failed", zap.Error(err))
		return handleAuthError(ctx, err)
	}

	if err := ctx.JSON(toTokenResponse(pair)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func toTokenResponse(pair *services.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Error: msg}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}

// handleAuthError преобразует доменные ошибки в HTTP-статусы.
func handleAuthError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return sendError(ctx, fiber.StatusConflict, ErrMsgEmailTaken)
	case errors.Is(err, services.ErrInvalidCredentials):
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgInvalidCredentials)
	case errors.Is(err, services.ErrInvalidRefreshToken),
		errors.Is(err, services.ErrRevokedRefreshToken):
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgInvalidRefreshToken)
	case errors.Is(err, services.ErrUnknownOAuthProvider):
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgUnknownProvider)
	case errors.Is(err, entities.ErrUserNotFound):
		return sendError(ctx, fiber.StatusNotFound, ErrMsgUserNotFound)
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyUsername),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, entities.ErrPasswordTooWeak):
		return sendError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
}
