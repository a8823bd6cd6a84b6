package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sanjay2518/FR/internal/repositories"
	"github.com/sanjay2518/FR/internal/services"
	"github.com/sanjay2518/FR/pkg/supabase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalIdentityProvider(t *testing.T) {
	ctx := context.Background()
	creds := repositories.NewMockCredentialRepository()
	tokens := services.NewTokenService("test_jwt_secret", time.Hour)
	provider := services.NewLocalIdentityProvider(creds, tokens)

	session, err := provider.SignUp(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.Equal(t, "bearer", session.TokenType)

	claims, err := tokens.Validate(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)

	stored, err := creds.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash, "password is hashed")

	_, err = provider.SignUp(ctx, "test@example.com", "another")
	assert.ErrorIs(t, err, services.ErrAlreadyExists)

	signedIn, err := provider.SignIn(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, signedIn.User.ID)

	_, err = provider.SignIn(ctx, "test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrAuthFailed)
	_, err = provider.SignIn(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrAuthFailed)

	require.NoError(t, provider.DeleteIdentity(ctx, session.User.ID))
	_, err = provider.SignIn(ctx, "test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrAuthFailed)
}

func newSupabaseProvider(t *testing.T, h http.HandlerFunc) *services.SupabaseIdentityProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client, err := supabase.New(supabase.Config{URL: srv.URL, APIKey: "key"})
	require.NoError(t, err)
	return services.NewSupabaseIdentityProvider(client)
}

func TestSupabaseIdentityProvider_NotConfigured(t *testing.T) {
	provider := services.NewSupabaseIdentityProvider(nil)

	_, err := provider.SignUp(context.Background(), "a@example.com", "x")
	assert.ErrorIs(t, err, repositories.ErrNotConfigured)
	_, err = provider.SignIn(context.Background(), "a@example.com", "x")
	assert.ErrorIs(t, err, repositories.ErrNotConfigured)
}

func TestSupabaseIdentityProvider_SignIn(t *testing.T) {
	provider := newSupabaseProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"at","token_type":"bearer","expires_in":3600,"refresh_token":"rt","user":{"id":"u1","email":"a@example.com"}}`))
	})

	session, err := provider.SignIn(context.Background(), "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "rt", session.RefreshToken)
	assert.Equal(t, "u1", session.User.ID)
}

func TestSupabaseIdentityProvider_SignInRejected(t *testing.T) {
	provider := newSupabaseProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := provider.SignIn(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrAuthFailed)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestSupabaseIdentityProvider_SignUpErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"duplicate", `{"code":422,"msg":"User already registered"}`, services.ErrAlreadyExists},
		{"weak password", `{"code":422,"msg":"Password should be at least 6 characters"}`, services.ErrRejected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := newSupabaseProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tc.body))
			})
			_, err := provider.SignUp(context.Background(), "a@example.com", "x")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSupabaseIdentityProvider_ServerErrorIsNotAuthFailure(t *testing.T) {
	provider := newSupabaseProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := provider.SignIn(context.Background(), "a@example.com", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrAuthFailed)
}
