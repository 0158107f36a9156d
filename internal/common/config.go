// Package common provides shared utilities for krxdata
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for krxdata
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	MCP         MCPConfig     `toml:"mcp"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// MCPConfig holds MCP adapter configuration
type MCPConfig struct {
	Name      string `toml:"name"`
	Transport string `toml:"transport"` // "stdio" or "http"
	Path      string `toml:"path"`      // mount path of the streamable HTTP endpoint
	ServerURL string `toml:"server_url"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	KRX KRXConfig `toml:"krx"`
}

// KRXConfig holds KRX market data portal configuration
type KRXConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *KRXConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "localhost",
			Port: 8000,
		},
		MCP: MCPConfig{
			Name:      "pykrx-mcp",
			Transport: "stdio",
			Path:      "/mcp",
		},
		Clients: ClientsConfig{
			KRX: KRXConfig{
				BaseURL:   "http://data.krx.co.kr",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from files, later files overriding earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// DefaultConfigPaths returns the candidate config files in load order:
// config/krx.toml next to the binary, then the working directory, then KRX_CONFIG.
func DefaultConfigPaths() []string {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "config", "krx.toml"))
	}
	paths = append(paths, filepath.Join("config", "krx.toml"))
	if p := os.Getenv("KRX_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	return paths
}

func applyEnvOverrides(config *Config) {
	if env := os.Getenv("KRX_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("KRX_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("KRX_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("KRX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("KRX_LOG_FORMAT"); format != "" {
		config.Logging.Format = strings.ToLower(format)
	}

	if url := os.Getenv("KRX_BASE_URL"); url != "" {
		config.Clients.KRX.BaseURL = url
	}

	if rl := os.Getenv("KRX_RATE_LIMIT"); rl != "" {
		if n, err := strconv.Atoi(rl); err == nil && n > 0 {
			config.Clients.KRX.RateLimit = n
		}
	}

	if transport := os.Getenv("MCP_TRANSPORT"); transport != "" {
		config.MCP.Transport = strings.ToLower(transport)
	}

	if url := os.Getenv("KRX_SERVER_URL"); url != "" {
		config.MCP.ServerURL = url
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}
