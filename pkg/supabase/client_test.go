package supabase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sanjay2518/FR/pkg/supabase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := supabase.New(supabase.Config{URL: srv.URL, APIKey: "service-key"})
	require.NoError(t, err)
	return c
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := supabase.New(supabase.Config{URL: "https://x.supabase.co"})
	assert.ErrorIs(t, err, supabase.ErrMissingCredentials)

	_, err = supabase.New(supabase.Config{APIKey: "k"})
	assert.ErrorIs(t, err, supabase.ErrMissingCredentials)
}

func TestSelect_BuildsQuery(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/prompts", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "*", q.Get("select"))
		assert.Equal(t, "eq.active", q.Get("status"))
		assert.Equal(t, "created_at.desc", q.Get("order"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":"p1","title":"T"}]`))
	})

	resp, err := c.From("prompts").Select("*").Eq("status", "active").Order("created_at", false).Limit(1).Execute(context.Background())
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, resp.JSON(&rows))
	assert.Equal(t, "p1", rows[0]["id"])
}

func TestInsert_ReturnsRepresentation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		var row map[string]string
		require.NoError(t, json.Unmarshal(body, &row))
		assert.Equal(t, "T", row["title"])
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"p1","title":"T"}]`))
	})

	resp, err := c.From("prompts").ExecuteInsert(context.Background(), map[string]string{"title": "T"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestDelete_SendsFiltersOnly(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.p1", r.URL.Query().Get("id"))
		assert.Empty(t, r.URL.Query().Get("select"))
		w.Write([]byte(`[]`))
	})

	_, err := c.From("prompts").Select("*").Eq("id", "p1").ExecuteDelete(context.Background())
	require.NoError(t, err)
}

func TestAPIErrorMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"42P01","message":"relation \"prompts\" does not exist"}`))
	})

	_, err := c.From("prompts").Execute(context.Background())
	require.Error(t, err)

	var apiErr *supabase.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, `supabase API error 400: relation "prompts" does not exist`, err.Error())
}

func TestSignIn(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		w.Write([]byte(`{"access_token":"at","token_type":"bearer","expires_in":3600,"refresh_token":"rt","user":{"id":"u1","email":"a@b.c"}}`))
	})

	resp, err := c.Auth().SignIn(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "at", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := c.Auth().SignIn(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestSignUp_BareUserWhenConfirmationRequired(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.Write([]byte(`{"id":"u2","email":"new@b.c","role":"authenticated"}`))
	})

	resp, err := c.Auth().SignUp(context.Background(), "new@b.c", "secret")
	require.NoError(t, err)
	assert.Empty(t, resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u2", resp.User.ID)
}

func TestDeleteUser(t *testing.T) {
	called := false
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/auth/v1/admin/users/u1", r.URL.Path)
		w.Write([]byte(`{}`))
	})

	require.NoError(t, c.Auth().DeleteUser(context.Background(), "u1"))
	assert.True(t, called)
}
