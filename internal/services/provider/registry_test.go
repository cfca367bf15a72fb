// File: internal/services/provider/registry_test.go
package provider

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

var history = []ChatMessage{
    {Role: "system", Content: "你是一个健康顾问"},
    {Role: "user", Content: "我头疼"},
    {Role: "assistant", Content: "持续多久了？"},
    {Role: "user", Content: "三天"},
}

func TestCompletionProvider_RoundTrip(t *testing.T) {
    var got struct {
        Model    string        `json:"model"`
        Messages []ChatMessage `json:"messages"`
    }
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "/chat/completions", r.URL.Path)
        require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"建议多休息"}}]}`))
    }))
    defer srv.Close()

    p := newCompletionProvider("volcengine", "火山方舟", "test-key", srv.URL, "deepseek-r1-250120", 0.7, 2000)

    reply, err := p.Complete(context.Background(), history)
    require.NoError(t, err)
    assert.Equal(t, "建议多休息", reply)
    assert.Equal(t, "deepseek-r1-250120", got.Model)
    // Roles pass through verbatim, system turn included.
    require.Len(t, got.Messages, 4)
    assert.Equal(t, "system", got.Messages[0].Role)
    assert.Equal(t, "user", got.Messages[3].Role)
}

func TestCompletionProvider_EmptyChoices(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"choices":[]}`))
    }))
    defer srv.Close()

    p := newCompletionProvider("openai", "OpenAI", "k", srv.URL, "gpt-3.5-turbo", 0, 0)

    _, err := p.Complete(context.Background(), history)
    var provErr *ProviderError
    require.ErrorAs(t, err, &provErr)
    assert.Equal(t, "openai", provErr.Provider)
}

func TestAnthropicProvider_LiftsSystemAndCollapsesRoles(t *testing.T) {
    var got anthropicRequest
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "k", r.Header.Get("x-api-key"))
        require.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        _, _ = w.Write([]byte(`{"content":[{"text":"注意补水"}]}`))
    }))
    defer srv.Close()

    p := newAnthropicProvider("k", srv.URL, srv.Client())

    reply, err := p.Complete(context.Background(), history)
    require.NoError(t, err)
    assert.Equal(t, "注意补水", reply)

    // The leading system turn moves to the top-level field, not history.
    assert.Equal(t, "你是一个健康顾问", got.System)
    require.Len(t, got.Messages, 3)
    assert.Equal(t, "user", got.Messages[0].Role)
    assert.Equal(t, "assistant", got.Messages[1].Role)
    assert.Equal(t, "user", got.Messages[2].Role)
    assert.Equal(t, 2000, got.MaxTokens)
}

func TestAnthropicProvider_HTTPFailure(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "overloaded", http.StatusServiceUnavailable)
    }))
    defer srv.Close()

    p := newAnthropicProvider("k", srv.URL, srv.Client())

    _, err := p.Complete(context.Background(), history)
    var provErr *ProviderError
    require.ErrorAs(t, err, &provErr)
    assert.Contains(t, provErr.Message, "503")
}

func TestOllamaProvider_RoundTrip(t *testing.T) {
    var got ollamaRequest
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "/api/chat", r.URL.Path)
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        _, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"local reply"}}`))
    }))
    defer srv.Close()

    // Trailing slash on the endpoint must not produce a double slash.
    p := newOllamaProvider(srv.URL+"/", srv.Client())

    reply, err := p.Complete(context.Background(), history)
    require.NoError(t, err)
    assert.Equal(t, "local reply", reply)
    assert.Equal(t, "llama2", got.Model)
    assert.False(t, got.Stream)
    assert.Len(t, got.Messages, 4)
}

func TestNewRegistry_SkipsProvidersWithoutCredentials(t *testing.T) {
    r := NewRegistry(&Config{OpenAIAPIKey: "k"})

    assert.True(t, r.Has("openai"))
    assert.True(t, r.Has("ollama"), "ollama needs no credential and is always present")
    assert.False(t, r.Has("volcengine"))
    assert.False(t, r.Has("deepseek"))
    assert.False(t, r.Has("anthropic"))
}

func TestRegistry_SendUnknownProvider(t *testing.T) {
    r := NewRegistry(&Config{})

    _, err := r.Send(context.Background(), "grok", history)
    var unsupported *UnsupportedProviderError
    require.ErrorAs(t, err, &unsupported)
    assert.Equal(t, "不支持的AI模型类型: grok", err.Error())
}

func TestRegistry_ListOmitsCredentials(t *testing.T) {
    r := NewRegistry(&Config{
        VolcengineAPIKey: "vk",
        OpenAIAPIKey:     "ok",
        Timeout:          time.Second,
    })

    infos := r.List()
    require.Len(t, infos, 3)
    assert.Equal(t, Info{ID: "volcengine", Name: "火山方舟"}, infos[0])
    assert.Equal(t, Info{ID: "openai", Name: "OpenAI"}, infos[1])
    assert.Equal(t, Info{ID: "ollama", Name: "Ollama"}, infos[2])
}

func TestRegistry_RegisterReplaces(t *testing.T) {
    r := NewRegistry(&Config{})
    require.True(t, r.Has("ollama"))

    fake := &ollamaProvider{endpoint: "http://example.invalid", model: "llama2", client: http.DefaultClient}
    r.Register(fake)

    infos := r.List()
    assert.Len(t, infos, 1, "replacement keeps the registration order stable")
}
