package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesai/internal/auth/adapters/services"
	domainservices "notesai/internal/auth/domain/services"
)

const testSecret = "test-secret-key"

func TestGenerateAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("generated token validates back to the user", func(t *testing.T) {
		svc := services.NewJWT(testSecret, 15*time.Minute, time.Hour)

		token, expiresAt, err := svc.GenerateAccessToken(ctx, "user-1", "alice")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

		userID, err := svc.ValidateAccessToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("empty secret is rejected", func(t *testing.T) {
		svc := services.NewJWT("", 15*time.Minute, time.Hour)

		_, _, err := svc.GenerateAccessToken(ctx, "user-1", "alice")
		require.ErrorIs(t, err, domainservices.ErrGeneratingJWTToken)
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh tokens are opaque and unique", func(t *testing.T) {
		svc := services.NewJWT(testSecret, 15*time.Minute, time.Hour)

		first, firstExpiry, err := svc.GenerateRefreshToken(ctx, "user-1")
		require.NoError(t, err)
		second, _, err := svc.GenerateRefreshToken(ctx, "user-1")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.WithinDuration(t, time.Now().Add(time.Hour), firstExpiry, 5*time.Second)
	})

	t.Run("empty user id is rejected", func(t *testing.T) {
		svc := services.NewJWT(testSecret, 15*time.Minute, time.Hour)

		_, _, err := svc.GenerateRefreshToken(ctx, "")
		require.ErrorIs(t, err, domainservices.ErrGeneratingJWTToken)
	})
}

func TestValidateAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("expired token maps to ErrExpiredJWTToken", func(t *testing.T) {
		svc := services.NewJWT(testSecret, -time.Minute, time.Hour)

		token, _, err := svc.GenerateAccessToken(ctx, "user-1", "alice")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrExpiredJWTToken)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		issuer := services.NewJWT("other-secret", 15*time.Minute, time.Hour)
		verifier := services.NewJWT(testSecret, 15*time.Minute, time.Hour)

		token, _, err := issuer.GenerateAccessToken(ctx, "user-1", "alice")
		require.NoError(t, err)

		_, err = verifier.ValidateAccessToken(ctx, token)
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := services.NewJWT(testSecret, 15*time.Minute, time.Hour)

		_, err := svc.ValidateAccessToken(ctx, "not.a.token")
		require.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
	})
}
