package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notesai/internal/auth/domain/services"
	svc "notesai/internal/auth/ports/services"
	"notesai/pkg/logger"
)

// Константы для работы с JWT.
const (
	msgGeneratingAccessToken = "generating access token"
	msgValidatingToken       = "validating token"
	msgInvalidToken          = "invalid token"

	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
)

// ErrInvalidAlgorithm возвращается при неверном алгоритме подписи токена.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims адаптирует доменные claims к формату библиотеки JWT.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config services.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:       []byte(secretKey),
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
		},
	}
}

// GenerateAccessToken генерирует подписанный JWT токен доступа.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID, username string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", "GenerateAccessToken"), zap.String("userID", userID))
	log.Debug(ctx, msgGeneratingAccessToken)

	if len(s.config.SecretKey) == 0 {
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, "error signing token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	return signed, expiresAt, nil
}

// GenerateRefreshToken генерирует непрозрачный refresh-токен.
// Значение случайно и проверяется только по хранилищу токенов.
func (s *ServiceJWT) GenerateRefreshToken(_ context.Context, userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("%s: %w: empty user id", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	token := uuid.New().String() + "." + uuid.New().String()
	return token, time.Now().Add(s.config.RefreshTokenTTL), nil
}

// ValidateAccessToken проверяет JWT токен и возвращает ID пользователя.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "ValidateAccessToken"))
	log.Debug(ctx, msgValidatingToken)

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, t.Header["alg"])
		}
		return s.config.SecretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, "token has expired")
			return "", fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrInvalidJWTToken)
	}

	if !token.Valid || claims.UserID == "" {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w", errCtxParsingToken, services.ErrInvalidJWTToken)
	}

	return claims.UserID, nil
}
