package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesai/pkg/client"
)

func newTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return client.New(client.Config{BaseURL: server.URL})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func tokenPairBody() map[string]any {
	return map[string]any{
		"access_token":  "access-1",
		"refresh_token": "refresh-1",
		"expires_at":    time.Now().Add(15 * time.Minute).Format(time.RFC3339),
	}
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("stores issued tokens", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice@example.com", body["email"])
			assert.Equal(t, "password123", body["password"])

			writeJSON(t, w, http.StatusOK, tokenPairBody())
		})

		c := newTestClient(t, mux)

		pair, err := c.SignIn(ctx, "alice@example.com", "password123")
		require.NoError(t, err)

		assert.Equal(t, "access-1", pair.AccessToken)
		assert.Equal(t, "access-1", c.AccessToken())
		assert.Equal(t, "refresh-1", c.RefreshToken())
	})

	t.Run("401 maps to ErrUnauthorized with server message", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}))

		_, err := c.SignIn(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, client.ErrUnauthorized)
		assert.Contains(t, err.Error(), "invalid credentials")
		assert.Empty(t, c.AccessToken())
	})
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("409 maps to ErrConflict", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusConflict, map[string]string{"error": "email already exists"})
		}))

		_, err := c.SignUp(ctx, "alice@example.com", "alice", "password123")
		require.ErrorIs(t, err, client.ErrConflict)
	})

	t.Run("registration stores tokens", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/auth/register", r.URL.Path)
			writeJSON(t, w, http.StatusCreated, tokenPairBody())
		}))

		_, err := c.SignUp(ctx, "alice@example.com", "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, "refresh-1", c.RefreshToken())
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-old", body["refresh_token"])

		writeJSON(t, w, http.StatusOK, tokenPairBody())
	}))
	c.SetTokens("access-old", "refresh-old")

	pair, err := c.Refresh(ctx)
	require.NoError(t, err)

	assert.Equal(t, "refresh-1", pair.RefreshToken)
	assert.Equal(t, "access-1", c.AccessToken())
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes token and clears local state", func(t *testing.T) {
		var revoked string
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			revoked = body["refresh_token"]

			writeJSON(t, w, http.StatusOK, map[string]string{"message": "logged out"})
		}))
		c.SetTokens("access-1", "refresh-1")

		require.NoError(t, c.SignOut(ctx))
		assert.Equal(t, "refresh-1", revoked)
		assert.Empty(t, c.AccessToken())
		assert.Empty(t, c.RefreshToken())
	})

	t.Run("without refresh token no request is made", func(t *testing.T) {
		called := false
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))

		require.NoError(t, c.SignOut(ctx))
		assert.False(t, called)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("sends bearer token", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

			writeJSON(t, w, http.StatusOK, map[string]string{
				"id":       "user-1",
				"email":    "alice@example.com",
				"username": "alice",
			})
		}))
		c.SetTokens("access-1", "refresh-1")

		profile, err := c.GetProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-1", profile.ID)
		assert.Equal(t, "alice", profile.Username)
	})

	t.Run("500 maps to ErrServer", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := c.GetProfile(ctx)
		require.ErrorIs(t, err, client.ErrServer)
	})
}

func TestOAuthRedirectURL(t *testing.T) {
	ctx := context.Background()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/oauth/google", r.URL.Path)
		assert.Equal(t, "state-1", r.URL.Query().Get("state"))

		writeJSON(t, w, http.StatusOK, map[string]string{"url": "https://accounts.google.com/auth"})
	}))

	url, err := c.OAuthRedirectURL(ctx, "google", "state-1")
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.google.com/auth", url)
}

func TestExchangeOAuthCode(t *testing.T) {
	ctx := context.Background()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/oauth/github/callback", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "auth-code", body["code"])

		writeJSON(t, w, http.StatusOK, tokenPairBody())
	}))

	pair, err := c.ExchangeOAuthCode(ctx, "github", "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "access-1", pair.AccessToken)
	assert.Equal(t, "access-1", c.AccessToken())
}
