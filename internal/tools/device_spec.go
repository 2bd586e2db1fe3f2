package tools

import (
	"context"
	"fmt"

	"mcp-device-spec/internal/devspec"
	"mcp-device-spec/internal/logger"
	"mcp-device-spec/internal/render"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	DeviceSpecToolName      = "get_device_spec"
	DeviceSpecFieldToolName = "get_device_spec_field"
)

// SpecProvider resolves the current device spec.
type SpecProvider interface {
	Spec(ctx context.Context) devspec.ResolvedSpec
}

func fieldNames() []string {
	names := make([]string, 0, len(devspec.Fields()))
	for _, f := range devspec.Fields() {
		names = append(names, f.String())
	}
	return names
}

func DeviceSpecTool() mcp.Tool {
	return mcp.NewTool(DeviceSpecToolName,
		mcp.WithDescription("Gets the device specification: processor, memory, storage, battery and screen"),
		mcp.WithString("format",
			mcp.Description("Output format: text (default), json or yaml"),
			mcp.Enum(string(render.FormatText), string(render.FormatJSON), string(render.FormatYAML)),
		),
	)
}

func DeviceSpecFieldTool() mcp.Tool {
	return mcp.NewTool(DeviceSpecFieldToolName,
		mcp.WithDescription("Gets a single line of the device specification"),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("Field name"),
			mcp.Enum(fieldNames()...),
		),
	)
}

// NewDeviceSpecHandler возвращает обработчик get_device_spec
func NewDeviceSpecHandler(provider SpecProvider) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger.Tools.Debug().Msg("Getting device specification")

		requested := request.GetString("format", "")
		format, err := render.ParseFormat(requested)
		// Карточка с ANSI стилями не подходит для MCP клиентов
		if err != nil || format == render.FormatCard {
			logger.Tools.Warn().
				Str("format", requested).
				Msg("Unsupported output format requested")
			return mcp.NewToolResultError(fmt.Sprintf("Unsupported format: %q", requested)), nil
		}

		spec := provider.Spec(ctx)

		text, err := render.String(spec, format)
		if err != nil {
			logger.Tools.Error().
				Err(err).
				Msg("Failed to render device specification")
			return mcp.NewToolResultError(fmt.Sprintf("Error rendering device specification: %v", err)), nil
		}

		logger.Tools.Debug().
			Str("format", string(format)).
			Str("processor", spec.Processor).
			Str("storage_and_memory", spec.StorageAndMemory).
			Msg("Device specification retrieved successfully")

		return mcp.NewToolResultText(text), nil
	}
}

// NewDeviceSpecFieldHandler возвращает обработчик get_device_spec_field
func NewDeviceSpecFieldHandler(provider SpecProvider) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("field", "")

		field, err := devspec.ParseField(name)
		if err != nil {
			logger.Tools.Warn().
				Str("field", name).
				Msg("Unknown field requested")
			return mcp.NewToolResultError(err.Error()), nil
		}

		value, _ := provider.Spec(ctx).Get(field)

		logger.Tools.Debug().
			Str("field", field.String()).
			Str("value", value).
			Msg("Device specification field retrieved")

		return mcp.NewToolResultText(value), nil
	}
}

// Register adds the device spec tools to s.
func Register(s *server.MCPServer, provider SpecProvider) {
	s.AddTool(DeviceSpecTool(), NewDeviceSpecHandler(provider))
	s.AddTool(DeviceSpecFieldTool(), NewDeviceSpecFieldHandler(provider))
}
