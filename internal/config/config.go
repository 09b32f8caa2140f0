// Package config loads application configuration from defaults and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	API     APIConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

type StorageConfig struct {
	DataDir string
}

type APIConfig struct {
	// Token enables bearer auth on the HTTP surface when non-empty.
	Token string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4400,
		},
		Gemini: GeminiConfig{
			Model:           "gemini-2.5-pro",
			Temperature:     0.4,
			MaxOutputTokens: 2048,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "roadmap-agent")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".roadmap-agent"
	}
	return filepath.Join(home, ".local", "share", "roadmap-agent")
}

// Load reads configuration from defaults and environment variables.
// GEMINI_API_KEY carries the model credential; ROADMAP_* variables override
// everything else. The API key is validated by commands that need it, not
// here, so offline commands keep working without one.
func Load() Config {
	return loadWith(os.Getenv)
}

func loadWith(getenv func(string) string) Config {
	cfg := defaults()

	if v := getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := getenv("ROADMAP_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := getenv("ROADMAP_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Gemini.Temperature = float32(f)
		}
	}
	if v := getenv("ROADMAP_MAX_OUTPUT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Gemini.MaxOutputTokens = int32(n)
		}
	}
	if v := getenv("ROADMAP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}
	if v := getenv("ROADMAP_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := getenv("ROADMAP_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := getenv("ROADMAP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	return cfg
}

// RequireAPIKey returns an error when no Gemini API key is configured.
func (c Config) RequireAPIKey() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return fmt.Errorf("missing required config: Gemini API key. Set the GEMINI_API_KEY environment variable (a .env file in the working directory is also read)")
	}
	return nil
}
