package logger

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// Глобальные логгеры для разных компонентов
	Main    zerolog.Logger = zerolog.Nop()
	HTTP    zerolog.Logger = zerolog.Nop()
	MCP     zerolog.Logger = zerolog.Nop()
	Tools   zerolog.Logger = zerolog.Nop()
	SysInfo zerolog.Logger = zerolog.Nop()
	Render  zerolog.Logger = zerolog.Nop()
)

// Options управляет инициализацией логгеров
type Options struct {
	// Level уровень логгирования (trace, debug, info, warn, error, ...)
	Level string
	// Environment режим окружения; пустое значение и dev считаются разработкой
	Environment string
	// Out куда писать логи; по умолчанию stderr, stdout занят stdio транспортом MCP
	Out io.Writer
}

// InitLogger инициализирует логгеры по настройкам
func InitLogger(opts Options) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return file + ":" + strconv.Itoa(line)
	}

	level := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	development := IsDevelopment(opts.Environment)
	if development {
		writer := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    out != os.Stderr,
		}
		writer.FormatLevel = func(i interface{}) string {
			s, _ := i.(string)
			return strings.ToUpper(s)
		}
		log.Logger = zerolog.New(writer).With().Timestamp().Caller().Logger()
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Caller().Logger()
	}

	Main = log.Logger.With().Str("component", "main").Logger()
	HTTP = log.Logger.With().Str("component", "http").Logger()
	MCP = log.Logger.With().Str("component", "mcp").Logger()
	Tools = log.Logger.With().Str("component", "tools").Logger()
	SysInfo = log.Logger.With().Str("component", "sysinfo").Logger()
	Render = log.Logger.With().Str("component", "render").Logger()

	Main.Debug().
		Str("level", level.String()).
		Bool("development", development).
		Msg("Logger initialized")
}

// ParseLevel переводит строку уровня в zerolog.Level; неизвестные значения дают info
func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// IsDevelopment проверяет режим разработки
func IsDevelopment(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "development" || env == "dev" || env == ""
}

// GetHTTPLogger создает логгер для HTTP запросов с контекстными полями
func GetHTTPLogger(method, path, requestID string) zerolog.Logger {
	return HTTP.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()
}

// GetMCPLogger создает логгер для MCP операций
func GetMCPLogger(method string) zerolog.Logger {
	return MCP.With().
		Str("rpc_method", method).
		Logger()
}
