package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config defines server configuration.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Worklog   WorklogConfig   `yaml:"worklog"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AuthConfig guards the HTTP transport with a static bearer token.
type AuthConfig struct {
	Token string `yaml:"token"`
}

func (a AuthConfig) Enabled() bool {
	return a.Token != ""
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type WorklogConfig struct {
	// LogsDir holds the worklog-YYYY-MM-DD.md files.
	LogsDir string `yaml:"logs_dir"`
	// Timezone is an IANA zone name; empty or "Local" uses the process zone.
	Timezone string `yaml:"timezone"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Transport: TransportConfig{
			Mode: TransportStdio,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Worklog: WorklogConfig{
			LogsDir:  "logs",
			Timezone: "Local",
		},
	}
}

// Load reads configuration from the YAML file named by WORKLOG_CONFIG_PATH,
// if any, and environment variables.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("WORKLOG_CONFIG_PATH"))
}

// LoadFrom layers defaults, the YAML file at path (skipped when empty) and
// environment variables, in that order.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("WORKLOG_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if host := os.Getenv("WORKLOG_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("WORKLOG_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WORKLOG_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if token := os.Getenv("WORKLOG_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if level := os.Getenv("WORKLOG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("WORKLOG_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if dir := os.Getenv("WORKLOG_LOGS_DIR"); dir != "" {
		cfg.Worklog.LogsDir = dir
	}
	if tz := os.Getenv("WORKLOG_TIMEZONE"); tz != "" {
		cfg.Worklog.Timezone = tz
	}

	return cfg, nil
}

// LoadFile merges the YAML file at path into cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport mode %q (want %s or %s)", c.Transport.Mode, TransportStdio, TransportHTTP)
	}
	if c.Transport.Mode == TransportHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Worklog.LogsDir == "" {
		return fmt.Errorf("worklog logs_dir must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured worklog time zone.
func (c Config) Location() (*time.Location, error) {
	tz := c.Worklog.Timezone
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}
