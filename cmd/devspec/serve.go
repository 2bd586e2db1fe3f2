package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mcp-device-spec/internal/config"
	"mcp-device-spec/internal/handlers"
	"mcp-device-spec/internal/logger"
	"mcp-device-spec/internal/middleware"
	"mcp-device-spec/internal/tools"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over HTTP when a port is configured, stdio otherwise",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serveStdio(newMCPServer(newProvider(cmd.Context())))
	},
}

func newMCPServer(provider tools.SpecProvider) *server.MCPServer {
	mcpServer := server.NewMCPServer(config.DefaultServerName, config.DefaultServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	tools.Register(mcpServer, provider)
	return mcpServer
}

func runServe(cmd *cobra.Command, _ []string) error {
	provider := newProvider(cmd.Context())
	mcpServer := newMCPServer(provider)

	if cfg.Server.Port == 0 {
		return serveStdio(mcpServer)
	}
	return serveHTTP(cmd.Context(), mcpServer, provider, cfg.Server)
}

func serveStdio(mcpServer *server.MCPServer) error {
	logger.Main.Info().Msg("Starting MCP server in stdio mode")
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Main.Error().
			Err(err).
			Msg("Error running MCP server in stdio mode")
		return err
	}
	return nil
}

func newFiberApp(mcpServer *server.MCPServer, provider tools.SpecProvider, serverCfg config.ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "MCP Device Spec Server",
	})

	app.Use(middleware.RequestLoggingMiddleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,X-API-Key,X-Request-Id",
		ExposeHeaders:    "X-Request-Id",
		AllowCredentials: false,
	}))

	app.Use(middleware.AuthMiddleware(serverCfg.APIKey))

	handlers.NewFiberHandler(mcpServer, provider, handlers.ServerInfo{
		Name:    config.DefaultServerName,
		Version: config.DefaultServerVersion,
	}).RegisterRoutes(app)

	return app
}

func serveHTTP(ctx context.Context, mcpServer *server.MCPServer, provider tools.SpecProvider, serverCfg config.ServerConfig) error {
	app := newFiberApp(mcpServer, provider, serverCfg)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Main.Info().Msg("Shutting down Fiber server")
		if err := app.Shutdown(); err != nil {
			logger.Main.Error().Err(err).Msg("Error shutting down Fiber server")
		}
	}()

	addr := fmt.Sprintf(":%d", serverCfg.Port)
	logger.Main.Info().
		Int("port", serverCfg.Port).
		Str("addr", addr).
		Bool("auth", serverCfg.APIKey != "").
		Msg("Starting Fiber server")

	if err := app.Listen(addr); err != nil {
		logger.Main.Error().
			Err(err).
			Str("addr", addr).
			Msg("Error starting Fiber server")
		return err
	}
	return nil
}
