package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	for _, h := range handlers {
		app.Use(h)
	}
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/spec", func(c *fiber.Ctx) error { return c.SendString("spec") })
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp(AuthMiddleware("device-spec-key"))

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{"health check skips auth", "/", "", fiber.StatusOK},
		{"missing key", "/spec", "", fiber.StatusUnauthorized},
		{"wrong key", "/spec", "nope", fiber.StatusUnauthorized},
		{"valid key", "/spec", "device-spec-key", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_EmptyKeyDisablesAuth(t *testing.T) {
	app := newApp(AuthMiddleware(""))

	resp, err := app.Test(httptest.NewRequest("GET", "/spec", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_AllowedUserAgent(t *testing.T) {
	app := newApp(AuthMiddlewareWithConfig(AuthConfig{
		APIKey:            "device-spec-key",
		AllowedUserAgents: []string{"Cursor/"},
	}))

	req := httptest.NewRequest("GET", "/spec", nil)
	req.Header.Set("User-Agent", "Cursor/1.2")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "empty", maskAPIKey(""))
	assert.Equal(t, "***", maskAPIKey("short"))
	assert.Equal(t, "devi***-key", maskAPIKey("device-spec-key"))
}

func TestRequestLoggingMiddleware_RequestID(t *testing.T) {
	app := newApp(RequestLoggingMiddleware())

	resp, err := app.Test(httptest.NewRequest("GET", "/spec", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)

	req := httptest.NewRequest("GET", "/spec", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get(RequestIDHeader))
}

func TestLoggingMiddlewareWithConfig_SkipPathStillTagged(t *testing.T) {
	app := newApp(LoggingMiddlewareWithConfig(LoggingConfig{SkipPaths: []string{"/"}}))

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}
