// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
    // DefaultProvider is used when a send-message request names none.
    DefaultProvider string

    // MaxTitleLength bounds conversation titles before storage.
    MaxTitleLength int
}

func (c *Config) Validate() error {
    if c.DefaultProvider == "" {
        return fmt.Errorf("default_provider is required")
    }
    if c.MaxTitleLength <= 0 {
        return fmt.Errorf("max_title_length must be positive")
    }
    return nil
}

func DefaultConfig() *Config {
    return &Config{
        DefaultProvider: "volcengine",
        MaxTitleLength:  100,
    }
}
