package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mcp-device-spec/internal/devspec"

	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultDataPath      = "/"
	DefaultSysfsRoot     = "/sys"
	DefaultLogLevel      = "info"
	DefaultServerName    = "mcp-device-spec"
	DefaultServerVersion = "1.0.0"
)

// ServerConfig configures the HTTP transport. A zero port selects stdio.
type ServerConfig struct {
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"`
}

// DisplayConfig fixes the display geometry. Zero width or height means
// "probe sysfs". UsableHeight, when set, derives the inset from the
// probed or configured height.
type DisplayConfig struct {
	Width        int `mapstructure:"width"`
	Height       int `mapstructure:"height"`
	Inset        int `mapstructure:"inset"`
	UsableHeight int `mapstructure:"usable_height"`
}

// SourcesConfig points the collectors at their data.
type SourcesConfig struct {
	DataPath   string   `mapstructure:"data_path"`
	PropsFiles []string `mapstructure:"props_files"`
	// Properties are inline build.prop lines ("ro.board.platform=sm8550").
	// Property keys contain dots, so they cannot be yaml map keys under viper.
	Properties     []string `mapstructure:"properties"`
	PowerProfile   string   `mapstructure:"power_profile"`
	SysfsRoot      string   `mapstructure:"sysfs_root"`
	HostProperties bool     `mapstructure:"host_properties"`
}

// Config is the application configuration.
type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	Logging   LoggingConfig     `mapstructure:"logging"`
	Sources   SourcesConfig     `mapstructure:"sources"`
	Display   DisplayConfig     `mapstructure:"display"`
	Overrides devspec.Overrides `mapstructure:"overrides"`
}

// envBindings keeps the plain variable names used by deployments of the
// service; overrides use the resource names of the original settings app.
var envBindings = map[string][]string{
	"server.port":           {"PORT"},
	"server.api_key":        {"API_KEY"},
	"logging.level":         {"LOG_LEVEL"},
	"logging.environment":   {"ENVIRONMENT", "ENV"},
	"sources.data_path":     {"DATA_PATH"},
	"sources.power_profile": {"POWER_PROFILE"},
	"sources.sysfs_root":    {"SYSFS_ROOT"},
	"display.width":         {"DISPLAY_WIDTH"},
	"display.height":        {"DISPLAY_HEIGHT"},
	"display.inset":         {"DISPLAY_INSET"},
	"overrides.storage":     {"CUSTOM_STORAGE_INFO"},
	"overrides.memory":      {"CUSTOM_RAM_INFO"},
	"overrides.processor":   {"CUSTOM_CPU_MODEL"},
	"overrides.battery":     {"CUSTOM_BATTERY_INFO"},
	"overrides.screen":      {"CUSTOM_SCREEN_RESOLUTION"},
}

// New returns a viper instance with defaults, env bindings and, if found,
// the config file applied. An explicit path must exist; the default
// locations are optional.
func New(path string) (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "devspec"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "devspec"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// Load reads configuration from path (or the default locations) and the
// environment.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Decode unmarshals a prepared viper instance into a Config.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Display.Width < 0 || c.Display.Height < 0 || c.Display.Inset < 0 || c.Display.UsableHeight < 0 {
		return errors.New("display dimensions must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 0)
	v.SetDefault("server.api_key", "")
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.environment", "")
	v.SetDefault("sources.data_path", DefaultDataPath)
	v.SetDefault("sources.props_files", []string{})
	v.SetDefault("sources.properties", []string{})
	v.SetDefault("sources.power_profile", "")
	v.SetDefault("sources.sysfs_root", DefaultSysfsRoot)
	v.SetDefault("sources.host_properties", true)
	v.SetDefault("display.width", 0)
	v.SetDefault("display.height", 0)
	v.SetDefault("display.inset", 0)
	v.SetDefault("display.usable_height", 0)
	v.SetDefault("overrides.storage", "")
	v.SetDefault("overrides.memory", "")
	v.SetDefault("overrides.processor", "")
	v.SetDefault("overrides.battery", "")
	v.SetDefault("overrides.screen", "")
}
