package middleware

import (
	"crypto/subtle"
	"strings"

	"mcp-device-spec/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader заголовок с API ключом
const APIKeyHeader = "X-API-Key"

// AuthConfig конфигурация для middleware авторизации
type AuthConfig struct {
	// APIKey API ключ для доступа; пустой ключ отключает проверку
	APIKey string
	// AllowedUserAgents список User-Agent префиксов, которым ключ не нужен
	AllowedUserAgents []string
	// SkipPaths пути которые нужно пропустить при проверке авторизации
	SkipPaths []string
}

// AuthMiddleware создает middleware авторизации с ключом apiKey; статус сервера доступен без ключа
func AuthMiddleware(apiKey string) fiber.Handler {
	return AuthMiddlewareWithConfig(AuthConfig{
		APIKey: apiKey,
		SkipPaths: []string{
			"/", // Health check
		},
	})
}

// AuthMiddlewareWithConfig создает middleware для авторизации с настраиваемой конфигурацией
func AuthMiddlewareWithConfig(config AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if config.APIKey == "" {
			return c.Next()
		}

		path := c.Path()
		userAgent := c.Get("User-Agent")
		apiKey := c.Get(APIKeyHeader)

		authLogger := logger.HTTP.With().
			Str("method", c.Method()).
			Str("path", path).
			Str("remote_ip", c.IP()).
			Str("user_agent", userAgent).
			Logger()

		// Пропускаем проверку для определенных путей
		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				authLogger.Debug().
					Str("skip_reason", "path_in_skip_list").
					Msg("Auth check skipped")
				return c.Next()
			}
		}

		for _, allowedUA := range config.AllowedUserAgents {
			if strings.HasPrefix(userAgent, allowedUA) {
				authLogger.Debug().
					Str("skip_reason", "user_agent_allowed").
					Msg("Auth check skipped")
				return c.Next()
			}
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(config.APIKey)) != 1 {
			authLogger.Warn().
				Str("provided_api_key", maskAPIKey(apiKey)).
				Msg("Invalid API key")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "API key required",
				"code":    "AUTH_INVALID_API_KEY",
			})
		}

		authLogger.Debug().
			Msg("Client authorized with valid API key")

		return c.Next()
	}
}

// maskAPIKey маскирует API ключ для безопасного логгирования
func maskAPIKey(key string) string {
	if key == "" {
		return "empty"
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "***" + key[len(key)-4:]
}
