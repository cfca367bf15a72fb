// File: internal/services/provider/config.go
package provider

import "time"

// Config carries the per-backend credentials and endpoints read from the
// environment at process start. It is constructed once and dependency-
// injected; there is no package-level singleton.
type Config struct {
    VolcengineAPIKey string
    DeepseekAPIKey   string
    OpenAIAPIKey     string
    AnthropicAPIKey  string
    OllamaEndpoint   string

    // Timeout is the caller-side bound on a single outbound call. The
    // upstream protocol specifies none, so the registry enforces one.
    Timeout time.Duration
}

func DefaultConfig() *Config {
    return &Config{
        OllamaEndpoint: "http://localhost:11434",
        Timeout:        120 * time.Second,
    }
}
