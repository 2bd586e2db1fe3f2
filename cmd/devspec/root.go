package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"mcp-device-spec/internal/config"
	"mcp-device-spec/internal/logger"
	"mcp-device-spec/internal/sysinfo"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
	cfg     *config.Config

	rootCmd = &cobra.Command{
		Use:   "devspec",
		Short: "Resolve marketed device specifications from raw hardware readings",
		Long: `devspec reports a device's storage, memory, processor, battery and screen
the way a settings "about" page shows them: raw readings are snapped to
marketed capacities and any configured override string wins.

Without a subcommand devspec serves MCP: over HTTP when a port is configured
(PORT or --port), over stdio otherwise.

Examples:
  devspec                        # MCP over stdio
  devspec --port 8080            # HTTP: /spec, /spec/:field, /mcp
  devspec show                   # print the spec
  devspec show -o card           # print the spec as a styled card
  devspec show storage_and_memory`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE:              runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/devspec/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration, if present")
	rootCmd.PersistentFlags().Int("port", 0, "HTTP port; 0 serves MCP over stdio")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("data-path", "", "mount point of the data partition to measure")
	rootCmd.PersistentFlags().StringSlice("props-file", nil, "build.prop style property file (repeatable)")
	rootCmd.PersistentFlags().String("power-profile", "", "path to power_profile.xml")

	rootCmd.AddCommand(serveCmd, stdioCmd, showCmd)
}

// flagBindings maps persistent flags to config keys.
var flagBindings = map[string]string{
	"port":          "server.port",
	"log-level":     "logging.level",
	"data-path":     "sources.data_path",
	"props-file":    "sources.props_files",
	"power-profile": "sources.power_profile",
}

// loadConfig reads .env, the config file, the environment and flags, then
// initializes logging.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err = config.Decode(v)
	if err != nil {
		return err
	}

	logger.InitLogger(logger.Options{
		Level:       cfg.Logging.Level,
		Environment: cfg.Logging.Environment,
	})

	logger.Main.Debug().
		Str("config_file", v.ConfigFileUsed()).
		Int("port", cfg.Server.Port).
		Str("data_path", cfg.Sources.DataPath).
		Msg("Configuration loaded")

	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range flagBindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// newProvider wires the host collectors with the configured overrides.
func newProvider(ctx context.Context) *sysinfo.Provider {
	return sysinfo.NewProvider(sysinfo.NewCollector(ctx, cfg), cfg.Overrides)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
