package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notesai/internal/auth/domain/services"
	"notesai/pkg/logger"
)

// TokenRepository реализует интерфейс repositories.TokenRepository для работы с Postgres.
type TokenRepository struct {
	db DB
}

// NewTokenRepository создает новый экземпляр репозитория токенов.
func NewTokenRepository(db DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// StoreRefreshToken сохраняет refresh-токен.
func (r *TokenRepository) StoreRefreshToken(ctx context.Context, token *services.RefreshToken) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "StoreRefreshToken"))

	err := r.db.QueryRow(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at)
         VALUES ($1, $2, $3)
         RETURNING id, created_at`,
		token.UserID, token.Token, token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		log.Error(ctx, "error storing refresh token", zap.Error(err))
		return fmt.Errorf("error inserting refresh token: %w", err)
	}

	return nil
}

// FindByToken находит токен по его значению.
func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*services.RefreshToken, error) {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "FindByToken"))

	var refreshToken services.RefreshToken
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, created_at, is_revoked
         FROM refresh_tokens
         WHERE token = $1`,
		token,
	).Scan(
		&refreshToken.ID,
		&refreshToken.UserID,
		&refreshToken.Token,
		&refreshToken.ExpiresAt,
		&refreshToken.CreatedAt,
		&refreshToken.IsRevoked,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "token not found")
			return nil, services.ErrInvalidRefreshToken
		}
		log.Error(ctx, "error finding refresh token", zap.Error(err))
		return nil, fmt.Errorf("error querying refresh token: %w", err)
	}

	return &refreshToken, nil
}

// RevokeToken помечает токен как отозванный.
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "RevokeToken"))

	result, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		log.Error(ctx, "error revoking token", zap.Error(err))
		return fmt.Errorf("error revoking token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return services.ErrInvalidRefreshToken
	}

	return nil
}

// RevokeAllUserTokens отзывает все токены пользователя.
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "RevokeAllUserTokens"))

	if _, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = TRUE WHERE user_id = $1`, userID); err != nil {
		log.Error(ctx, "error revoking user tokens", zap.Error(err))
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

// CleanupExpiredTokens удаляет истекшие токены.
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "CleanupExpiredTokens"))

	if _, err := r.db.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < now()`); err != nil {
		log.Error(ctx, "error cleaning up expired tokens", zap.Error(err))
		return fmt.Errorf("error cleaning up expired tokens: %w", err)
	}

	return nil
}
