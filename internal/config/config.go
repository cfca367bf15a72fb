// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	DatabasePath string
	UploadDir    string

	// AI provider credentials. A provider with an empty key is simply
	// not registered; Ollama needs no credential.
	VolcengineAPIKey string
	DeepseekAPIKey   string
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	OllamaEndpoint   string

	// DefaultProvider is used when a send-message request names none.
	DefaultProvider string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		Environment:      env,
		DatabasePath:     getEnv("DATABASE_PATH", "health_advisor.db"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		VolcengineAPIKey: getEnv("VOLCENGINE_API_KEY", ""),
		DeepseekAPIKey:   getEnv("DEEPSEEK_API_KEY", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		OllamaEndpoint:   getEnv("OLLAMA_API_ENDPOINT", "http://localhost:11434"),
		DefaultProvider:  getEnv("DEFAULT_PROVIDER", "volcengine"),
	}

	// In production at least one hosted provider key should normally be
	// present; Ollama alone is a valid (local) configuration, so this is
	// a warning rather than a fatal error.
	if strings.ToLower(env) == "production" {
		if cfg.VolcengineAPIKey == "" && cfg.DeepseekAPIKey == "" &&
			cfg.OpenAIAPIKey == "" && cfg.AnthropicAPIKey == "" {
			log.Println("Warning: no hosted AI provider credentials configured; only Ollama will be available")
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
