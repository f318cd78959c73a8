package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesai/pkg/client"
)

// apiStub поднимает минимальный сервер с login/profile/logout.
func apiStub(t *testing.T) (*client.Client, *int) {
	t.Helper()

	profileCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, tokenPairBody())
	})
	mux.HandleFunc("/api/v1/auth/register", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusCreated, tokenPairBody())
	})
	mux.HandleFunc("/api/v1/auth/oauth/google/callback", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, tokenPairBody())
	})
	mux.HandleFunc("/api/v1/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "logged out"})
	})
	mux.HandleFunc("/api/v1/user/profile", func(w http.ResponseWriter, r *http.Request) {
		profileCalls++
		if r.Header.Get("Authorization") == "" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "authorization header is missing"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]string{
			"id":       "user-1",
			"email":    "alice@example.com",
			"username": "alice",
		})
	})

	return newTestClient(t, mux), &profileCalls
}

func TestSessionResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored token resolves to unauthenticated", func(t *testing.T) {
		c, profileCalls := apiStub(t)
		m := client.NewSessionManager(c)

		assert.Equal(t, client.StateLoading, m.State())
		assert.Equal(t, client.StateUnauthenticated, m.Resolve(ctx))
		assert.Zero(t, *profileCalls)
	})

	t.Run("valid token resolves to authenticated with profile", func(t *testing.T) {
		c, _ := apiStub(t)
		c.SetTokens("access-1", "refresh-1")
		m := client.NewSessionManager(c)

		require.Equal(t, client.StateAuthenticated, m.Resolve(ctx))
		require.NotNil(t, m.Profile())
		assert.Equal(t, "alice", m.Profile().Username)
	})

	t.Run("rejected token resolves to unauthenticated", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}))
		c.SetTokens("stale-access", "stale-refresh")
		m := client.NewSessionManager(c)

		assert.Equal(t, client.StateUnauthenticated, m.Resolve(ctx))
		assert.Nil(t, m.Profile())
	})

	t.Run("repeated resolve does not hit the server again", func(t *testing.T) {
		c, profileCalls := apiStub(t)
		c.SetTokens("access-1", "refresh-1")
		m := client.NewSessionManager(c)

		m.Resolve(ctx)
		m.Resolve(ctx)
		assert.Equal(t, 1, *profileCalls)
	})
}

func TestSessionSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("transitions to authenticated and fires hook", func(t *testing.T) {
		c, _ := apiStub(t)

		var hooked *client.Profile
		m := client.NewSessionManager(c, client.WithSignedInHook(func(p *client.Profile) {
			hooked = p
		}))

		profile, err := m.SignIn(ctx, "alice@example.com", "password123")
		require.NoError(t, err)

		assert.Equal(t, client.StateAuthenticated, m.State())
		assert.Equal(t, "user-1", profile.ID)
		require.NotNil(t, hooked)
		assert.Equal(t, "user-1", hooked.ID)
	})

	t.Run("failed sign in keeps current state", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}))
		m := client.NewSessionManager(c)

		_, err := m.SignIn(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, client.ErrUnauthorized)
		assert.Equal(t, client.StateLoading, m.State())
	})

	t.Run("sign up signs the new user in", func(t *testing.T) {
		c, _ := apiStub(t)
		m := client.NewSessionManager(c)

		profile, err := m.SignUp(ctx, "alice@example.com", "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		assert.Equal(t, client.StateAuthenticated, m.State())
	})

	t.Run("google code exchange signs the user in", func(t *testing.T) {
		c, _ := apiStub(t)
		m := client.NewSessionManager(c)

		profile, err := m.SignInWithGoogle(ctx, "auth-code")
		require.NoError(t, err)
		assert.Equal(t, "user-1", profile.ID)
		assert.Equal(t, client.StateAuthenticated, m.State())
	})
}

func TestSessionSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("transitions to unauthenticated and clears tokens", func(t *testing.T) {
		c, _ := apiStub(t)
		m := client.NewSessionManager(c)

		_, err := m.SignIn(ctx, "alice@example.com", "password123")
		require.NoError(t, err)

		require.NoError(t, m.SignOut(ctx))
		assert.Equal(t, client.StateUnauthenticated, m.State())
		assert.Nil(t, m.Profile())
		assert.Empty(t, c.AccessToken())
	})

	t.Run("local state resets even when revocation fails", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		c := newTestClient(t, mux)
		c.SetTokens("access-1", "refresh-1")
		m := client.NewSessionManager(c)

		require.Error(t, m.SignOut(ctx))
		assert.Equal(t, client.StateUnauthenticated, m.State())
	})
}

func TestSessionSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("subscriber receives transitions in order", func(t *testing.T) {
		c, _ := apiStub(t)
		m := client.NewSessionManager(c)

		var events []client.Event
		unsubscribe := m.Subscribe(func(e client.Event) {
			events = append(events, e)
		})
		defer unsubscribe()

		_, err := m.SignIn(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		require.NoError(t, m.SignOut(ctx))

		require.Len(t, events, 2)
		assert.Equal(t, client.StateAuthenticated, events[0].State)
		assert.Equal(t, "user-1", events[0].Profile.ID)
		assert.Equal(t, client.StateUnauthenticated, events[1].State)
		assert.Nil(t, events[1].Profile)
	})

	t.Run("unsubscribed callback is not invoked", func(t *testing.T) {
		c, _ := apiStub(t)
		m := client.NewSessionManager(c)

		calls := 0
		unsubscribe := m.Subscribe(func(client.Event) { calls++ })
		unsubscribe()

		_, err := m.SignIn(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.Zero(t, calls)
	})
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "loading", client.StateLoading.String())
	assert.Equal(t, "authenticated", client.StateAuthenticated.String())
	assert.Equal(t, "unauthenticated", client.StateUnauthenticated.String())
}
