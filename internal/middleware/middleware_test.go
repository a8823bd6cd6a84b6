package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sanjay2518/FR/internal/middleware"
	"github.com/sanjay2518/FR/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func protectedApp(tokens *services.TokenService) *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals(middleware.LocalUserID)})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", time.Hour)
	app := protectedApp(tokens)
	valid, _, err := tokens.Issue("id-1", "a@example.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tc.status == http.StatusOK {
				assert.Equal(t, "id-1", body["user_id"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFormatter(&log.JSONFormatter{})
	t.Cleanup(func() { log.SetOutput(io.Discard) })

	app := fiber.New()
	app.Use(requestid.New(), middleware.RequestLogger())
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTeapot).SendString("short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/7", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/items/7", entry["path"])
	assert.Equal(t, "/items/:id", entry["route"])
	assert.Equal(t, float64(fiber.StatusTeapot), entry["status"])
	assert.Equal(t, "warning", entry["level"])
	assert.NotEmpty(t, entry["request_id"])
}
