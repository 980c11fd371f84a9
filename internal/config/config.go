// Package config provides configuration management for the bantu-devstack CLI.
//
// It implements the disciplined Viper pattern where Viper stays contained
// in this package and the rest of the codebase receives explicit Config structs.
// Configuration sources are resolved in this order: flags > env > config file > defaults.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	StackDir     string
	ComposeFiles []string
	Services     []string
	EnvTemplate  string
	EnvFile      string
	AuthKey      string
	AuthValue    string
	ReadyURL     string
	WaitSeconds  int
	PullOnStart  bool
	OpenBrowser  bool
}

// Init initializes viper with defaults and config file paths
func Init() error {
	// Set config file name and type
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config file search paths
	viper.AddConfigPath("$HOME/.bantu-devstack")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("stack-dir", "deployment/docker_compose")
	viper.SetDefault("compose-files", []string{"docker-compose.yml", "docker-compose.dev.yml"})
	viper.SetDefault("services", []string{"api_server", "web_server", "background", "relational_db", "index"})
	viper.SetDefault("env-template", "env.dev.template")
	viper.SetDefault("env-file", ".env")
	viper.SetDefault("auth-key", "AUTH_TYPE")
	viper.SetDefault("auth-value", "disabled")
	viper.SetDefault("ready-url", "http://localhost:3000")
	viper.SetDefault("wait-seconds", 600)
	viper.SetDefault("pull-on-start", false)
	viper.SetDefault("open-browser", true)

	// Bind environment variables with prefix
	viper.SetEnvPrefix("BANTU_DEVSTACK")
	viper.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := &Config{
		StackDir:     viper.GetString("stack-dir"),
		ComposeFiles: viper.GetStringSlice("compose-files"),
		Services:     viper.GetStringSlice("services"),
		EnvTemplate:  viper.GetString("env-template"),
		EnvFile:      viper.GetString("env-file"),
		AuthKey:      viper.GetString("auth-key"),
		AuthValue:    viper.GetString("auth-value"),
		ReadyURL:     viper.GetString("ready-url"),
		WaitSeconds:  viper.GetInt("wait-seconds"),
		PullOnStart:  viper.GetBool("pull-on-start"),
		OpenBrowser:  viper.GetBool("open-browser"),
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if c.StackDir == "" {
		return fmt.Errorf("stack-dir must not be empty")
	}

	if len(c.ComposeFiles) == 0 {
		return fmt.Errorf("at least one compose file is required")
	}

	if len(c.Services) == 0 {
		return fmt.Errorf("at least one service is required")
	}

	if c.AuthKey == "" {
		return fmt.Errorf("auth-key must not be empty")
	}

	u, err := url.Parse(c.ReadyURL)
	if err != nil {
		return fmt.Errorf("invalid ready-url %q: %w", c.ReadyURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid ready-url %q: scheme must be http or https", c.ReadyURL)
	}

	if c.WaitSeconds < 1 {
		return fmt.Errorf("invalid wait-seconds: %d (must be at least 1)", c.WaitSeconds)
	}

	return nil
}

// Save writes current config to file
func Save(cfg *Config) error {
	viper.Set("stack-dir", cfg.StackDir)
	viper.Set("compose-files", cfg.ComposeFiles)
	viper.Set("services", cfg.Services)
	viper.Set("env-template", cfg.EnvTemplate)
	viper.Set("env-file", cfg.EnvFile)
	viper.Set("auth-key", cfg.AuthKey)
	viper.Set("auth-value", cfg.AuthValue)
	viper.Set("ready-url", cfg.ReadyURL)
	viper.Set("wait-seconds", cfg.WaitSeconds)
	viper.Set("pull-on-start", cfg.PullOnStart)
	viper.Set("open-browser", cfg.OpenBrowser)

	return viper.WriteConfig()
}

// Display shows current config (for bantu-devstack config show)
func Display() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(not found)"
	}

	return fmt.Sprintf(`Configuration:
  stack-dir:          %s
  compose-files:      %s
  services:           %s
  env-template:       %s
  env-file:           %s
  auth-key:           %s
  auth-value:         %s
  ready-url:          %s
  wait-seconds:       %d
  pull-on-start:      %t
  open-browser:       %t

Sources:
  Config file:        %s
  Environment:        BANTU_DEVSTACK_*
  Flags:              (per command)
`,
		cfg.StackDir,
		strings.Join(cfg.ComposeFiles, ", "),
		strings.Join(cfg.Services, ", "),
		cfg.EnvTemplate,
		cfg.EnvFile,
		cfg.AuthKey,
		cfg.AuthValue,
		cfg.ReadyURL,
		cfg.WaitSeconds,
		cfg.PullOnStart,
		cfg.OpenBrowser,
		configFile,
	), nil
}
