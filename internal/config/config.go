// Package config loads runtime configuration. Defaults live in code, an
// optional TOML file at ~/.reelsearch/config.toml overlays them, and
// environment variables have the last word. A .env file in the working
// directory is read first so local setups don't have to export anything.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Server transport modes.
const (
	TransportSSE   = "sse"
	TransportStdio = "stdio"
)

// Embedding providers.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Qdrant configures the vector index connection.
type Qdrant struct {
	Host       string `toml:"host" envconfig:"QDRANT_HOST"`
	Port       int    `toml:"port" envconfig:"QDRANT_PORT"`
	APIKey     string `toml:"api_key" envconfig:"QDRANT_API_KEY"`
	Collection string `toml:"collection" envconfig:"QDRANT_COLLECTION"`
}

// MCP configures the tool server transport.
type MCP struct {
	ServerType string `toml:"server_type" envconfig:"MCP_SERVER_TYPE"`
	Host       string `toml:"host" envconfig:"MCP_HOST"`
	Port       int    `toml:"port" envconfig:"MCP_PORT"`
}

// Addr returns the host:port listen address for HTTP transports.
func (m MCP) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// URI returns the URL clients connect to in HTTP mode.
func (m MCP) URI() string {
	return fmt.Sprintf("http://%s", m.Addr())
}

// Embedding configures the embedding provider.
type Embedding struct {
	Provider    string `toml:"provider" envconfig:"EMBEDDING_PROVIDER"`
	BaseURL     string `toml:"base_url" envconfig:"EMBEDDING_BASE_URL"`
	Model       string `toml:"model" envconfig:"EMBEDDING_MODEL"`
	APIKey      string `toml:"api_key" envconfig:"EMBEDDING_API_KEY"`
	TimeoutSecs int    `toml:"timeout_secs" envconfig:"EMBEDDING_TIMEOUT_SECS"`
}

// Timeout returns the embedding request timeout.
func (e Embedding) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// Kaggle configures dataset downloads. Public datasets need no
// credentials.
type Kaggle struct {
	Username string `toml:"username" envconfig:"KAGGLE_USERNAME"`
	Key      string `toml:"key" envconfig:"KAGGLE_KEY"`
}

// Config is the full application configuration.
type Config struct {
	Qdrant    Qdrant    `toml:"qdrant"`
	MCP       MCP       `toml:"mcp"`
	Embedding Embedding `toml:"embedding"`
	Kaggle    Kaggle    `toml:"kaggle"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Qdrant: Qdrant{
			Host:       "localhost",
			Port:       6333,
			Collection: "movie_reviews",
		},
		MCP: MCP{
			ServerType: TransportSSE,
			Host:       "0.0.0.0",
			Port:       5000,
		},
		Embedding: Embedding{
			Provider:    ProviderOllama,
			TimeoutSecs: 120,
		},
	}
}

// Load builds the effective configuration: defaults, then the config
// file if present, then environment variables. A missing config file is
// not an error.
func Load() (Config, error) {
	// Ignore a missing .env; it is purely a convenience.
	_ = godotenv.Load()

	cfg := Default()

	path, err := filePath()
	if err == nil {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that enum fields hold known values.
func (c Config) Validate() error {
	switch c.MCP.ServerType {
	case TransportSSE, TransportStdio:
	default:
		return fmt.Errorf("invalid MCP server type %q (want %q or %q)",
			c.MCP.ServerType, TransportSSE, TransportStdio)
	}

	switch c.Embedding.Provider {
	case ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("invalid embedding provider %q (want %q or %q)",
			c.Embedding.Provider, ProviderOllama, ProviderOpenAI)
	}

	if c.Qdrant.Port <= 0 || c.Qdrant.Port > 65535 {
		return fmt.Errorf("invalid qdrant port %d", c.Qdrant.Port)
	}
	if c.MCP.Port <= 0 || c.MCP.Port > 65535 {
		return fmt.Errorf("invalid MCP port %d", c.MCP.Port)
	}
	return nil
}

// filePath returns the config file location (~/.reelsearch/config.toml).
func filePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".reelsearch", "config.toml"), nil
}

// overlayFile merges a TOML config file over cfg. Only keys present in
// the file change; a missing file is ignored.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
