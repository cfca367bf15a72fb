// File: internal/services/provider/registry.go
package provider

import (
    "context"
    "log"
    "net/http"
    "time"
)

// Registry maps provider ids to configured backends. Exactly one backend
// serves each outbound call; there is no failover between providers.
type Registry struct {
    providers map[string]Provider
    order     []string
    timeout   time.Duration
}

// NewRegistry builds the registry from config. Providers with an empty
// credential are skipped; Ollama is always registered since it needs none.
func NewRegistry(cfg *Config) *Registry {
    if cfg == nil {
        cfg = DefaultConfig()
    }

    timeout := cfg.Timeout
    if timeout <= 0 {
        timeout = 120 * time.Second
    }

    // The per-call context deadline governs; the transport timeout is a
    // backstop for body reads after the deadline handling.
    httpClient := &http.Client{Timeout: timeout}

    r := &Registry{
        providers: make(map[string]Provider),
        timeout:   timeout,
    }

    if cfg.VolcengineAPIKey != "" {
        r.Register(newCompletionProvider(
            "volcengine", "火山方舟", cfg.VolcengineAPIKey,
            "https://ark.cn-beijing.volces.com/api/v3",
            "deepseek-r1-250120", 0.7, 2000,
        ))
    }
    if cfg.DeepseekAPIKey != "" {
        r.Register(newCompletionProvider(
            "deepseek", "DeepSeek", cfg.DeepseekAPIKey,
            "https://api.deepseek.com/v1",
            "deepseek-chat", 0, 0,
        ))
    }
    if cfg.OpenAIAPIKey != "" {
        r.Register(newCompletionProvider(
            "openai", "OpenAI", cfg.OpenAIAPIKey,
            "", // library default endpoint
            "gpt-3.5-turbo", 0, 0,
        ))
    }
    if cfg.AnthropicAPIKey != "" {
        r.Register(newAnthropicProvider(cfg.AnthropicAPIKey, "", httpClient))
    }

    endpoint := cfg.OllamaEndpoint
    if endpoint == "" {
        endpoint = "http://localhost:11434"
    }
    r.Register(newOllamaProvider(endpoint, httpClient))

    log.Printf("[ProviderRegistry] %d AI providers configured", len(r.order))
    return r
}

// Register adds a provider under its own id. Later registrations replace
// earlier ones, which is how tests install fakes.
func (r *Registry) Register(p Provider) {
    if _, exists := r.providers[p.ID()]; !exists {
        r.order = append(r.order, p.ID())
    }
    r.providers[p.ID()] = p
}

// Send routes messages to the named provider and returns the assistant
// text. The registry applies the caller-side timeout here since no bound
// is specified upstream.
func (r *Registry) Send(ctx context.Context, providerID string, messages []ChatMessage) (string, error) {
    p, ok := r.providers[providerID]
    if !ok {
        return "", &UnsupportedProviderError{ID: providerID}
    }

    ctx, cancel := context.WithTimeout(ctx, r.timeout)
    defer cancel()

    return p.Complete(ctx, messages)
}

// Has reports whether a provider id is configured.
func (r *Registry) Has(providerID string) bool {
    _, ok := r.providers[providerID]
    return ok
}

// List returns id and display name pairs in registration order.
// Credentials are never exposed.
func (r *Registry) List() []Info {
    infos := make([]Info, 0, len(r.order))
    for _, id := range r.order {
        infos = append(infos, Info{ID: id, Name: r.providers[id].DisplayName()})
    }
    return infos
}
