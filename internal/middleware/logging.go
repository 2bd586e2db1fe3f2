package middleware

import (
	"time"

	"mcp-device-spec/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-Id"

// LoggingConfig конфигурация для логгирования
type LoggingConfig struct {
	// SkipPaths пути которые нужно пропустить при логгировании
	SkipPaths []string
	// LogSlowRequests логгировать медленные запросы
	LogSlowRequests bool
	// SlowRequestThreshold порог для медленных запросов
	SlowRequestThreshold time.Duration
}

// RequestLoggingMiddleware создает middleware для логгирования HTTP запросов с настройками по умолчанию
func RequestLoggingMiddleware() fiber.Handler {
	return LoggingMiddlewareWithConfig(LoggingConfig{
		LogSlowRequests: true,
	})
}

// LoggingMiddlewareWithConfig создает настраиваемый middleware для логгирования
func LoggingMiddlewareWithConfig(config LoggingConfig) fiber.Handler {
	if config.SlowRequestThreshold == 0 {
		config.SlowRequestThreshold = 2 * time.Second
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()

		// Идентификатор запроса нужен даже для пропущенных путей
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		// Пропускаем определенные пути
		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				return c.Next()
			}
		}

		method := c.Method()
		requestLogger := logger.GetHTTPLogger(method, path, requestID).With().
			Str("user_agent", c.Get("User-Agent")).
			Str("remote_ip", c.IP()).
			Logger()

		requestLogger.Debug().
			Msg("Request started")

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()
		responseSize := len(c.Response().Body())

		// Определяем уровень логгирования
		var logEvent *zerolog.Event
		if err != nil {
			logEvent = requestLogger.Error().Err(err)
		} else if status >= 500 {
			logEvent = requestLogger.Error()
		} else if status >= 400 {
			logEvent = requestLogger.Warn()
		} else if config.LogSlowRequests && duration > config.SlowRequestThreshold {
			logEvent = requestLogger.Warn().Bool("slow", true)
		} else {
			logEvent = requestLogger.Info()
		}

		logEvent.
			Int("status", status).
			Dur("duration", duration).
			Int("response_size", responseSize).
			Msg("Request completed")

		return err
	}
}
