package handlers

import (
	"bytes"
	"encoding/json"

	"mcp-device-spec/internal/devspec"
	"mcp-device-spec/internal/logger"
	"mcp-device-spec/internal/tools"

	"github.com/gofiber/fiber/v2"
	"github.com/mark3labs/mcp-go/server"
)

// ServerInfo describes the running service in status responses.
type ServerInfo struct {
	Name    string
	Version string
}

type FiberHandler struct {
	server   *server.MCPServer
	provider tools.SpecProvider
	info     ServerInfo
}

func NewFiberHandler(mcpServer *server.MCPServer, provider tools.SpecProvider, info ServerInfo) *FiberHandler {
	return &FiberHandler{
		server:   mcpServer,
		provider: provider,
		info:     info,
	}
}

func (h *FiberHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.HandleStatus)

	// REST доступ к характеристикам
	app.Get("/spec", h.HandleSpec)
	app.Get("/spec/:field", h.HandleSpecField)

	// MCP JSON-RPC поверх HTTP
	app.Post("/mcp", h.HandleMCP)
}

// HandleStatus возвращает информацию о сервере
func (h *FiberHandler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "MCP Device Spec Server is running",
		"name":    h.info.Name,
		"version": h.info.Version,
		"endpoints": fiber.Map{
			"spec":  "/spec",
			"field": "/spec/:field",
			"mcp":   "/mcp",
		},
		"tiers": fiber.Map{
			"storage_gb": devspec.StorageTiers(),
			"memory_gb":  devspec.MemoryTiers(),
		},
	})
}

// HandleSpec возвращает все характеристики устройства
func (h *FiberHandler) HandleSpec(c *fiber.Ctx) error {
	spec := h.provider.Spec(c.UserContext())
	return c.JSON(spec)
}

// HandleSpecField возвращает одно поле характеристик
func (h *FiberHandler) HandleSpecField(c *fiber.Ctx) error {
	name := c.Params("field")

	field, err := devspec.ParseField(name)
	if err != nil {
		logger.HTTP.Debug().
			Str("field", name).
			Msg("Unknown spec field requested")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": err.Error(),
			"code":    "SPEC_UNKNOWN_FIELD",
		})
	}

	value, _ := h.provider.Spec(c.UserContext()).Get(field)
	return c.JSON(fiber.Map{
		"field": field.String(),
		"value": value,
	})
}

// HandleMCP обрабатывает одиночные и пакетные JSON-RPC сообщения MCP
func (h *FiberHandler) HandleMCP(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())

	var messages []json.RawMessage
	batch := len(body) > 0 && body[0] == '['
	if batch {
		if err := json.Unmarshal(body, &messages); err != nil {
			return h.parseError(c, err)
		}
	} else {
		if !json.Valid(body) {
			return h.parseError(c, nil)
		}
		messages = []json.RawMessage{json.RawMessage(body)}
	}

	responses := make([]interface{}, 0, len(messages))
	for _, message := range messages {
		method := peekMethod(message)
		mcpLogger := logger.GetMCPLogger(method)
		mcpLogger.Debug().Msg("Processing JSON-RPC message")

		// Копия нужна, fasthttp переиспользует буфер тела запроса
		response := h.server.HandleMessage(c.UserContext(), append(json.RawMessage(nil), message...))
		if response == nil {
			mcpLogger.Debug().Msg("Notification accepted")
			continue
		}
		responses = append(responses, response)
	}

	switch {
	case len(responses) == 0:
		return c.SendStatus(fiber.StatusAccepted)
	case !batch:
		return c.JSON(responses[0])
	default:
		return c.JSON(responses)
	}
}

func (h *FiberHandler) parseError(c *fiber.Ctx, err error) error {
	event := logger.MCP.Warn()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("JSON-RPC parse error")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"jsonrpc": "2.0",
		"id":      nil,
		"error": fiber.Map{
			"code":    -32700,
			"message": "Parse error",
		},
	})
}

func peekMethod(message json.RawMessage) string {
	var envelope struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(message, &envelope); err != nil || envelope.Method == "" {
		return "unknown"
	}
	return envelope.Method
}
