// File: internal/services/provider/anthropic.go
package provider

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
)

const anthropicVersion = "2023-06-01"

// anthropicProvider speaks the messages endpoint. Its protocol only
// distinguishes user and assistant within message history: every other
// role is sent as "user". A leading system turn is not dropped, though:
// it is lifted into the request's top-level system field. The in-history
// collapsing mirrors the upstream behavior and is kept for compatibility.
type anthropicProvider struct {
    apiKey   string
    endpoint string
    model    string
    client   *http.Client
}

func newAnthropicProvider(apiKey, endpoint string, client *http.Client) *anthropicProvider {
    if endpoint == "" {
        endpoint = "https://api.anthropic.com/v1/messages"
    }
    return &anthropicProvider{
        apiKey:   apiKey,
        endpoint: endpoint,
        model:    "claude-2",
        client:   client,
    }
}

func (p *anthropicProvider) ID() string          { return "anthropic" }
func (p *anthropicProvider) DisplayName() string { return "Anthropic" }

type anthropicMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

type anthropicRequest struct {
    Model     string             `json:"model"`
    System    string             `json:"system,omitempty"`
    MaxTokens int                `json:"max_tokens"`
    Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
    Content []struct {
        Text string `json:"text"`
    } `json:"content"`
}

func (p *anthropicProvider) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
    reqBody := anthropicRequest{
        Model:     p.model,
        MaxTokens: 2000,
    }

    history := messages
    if len(history) > 0 && history[0].Role == "system" {
        reqBody.System = history[0].Content
        history = history[1:]
    }

    for _, m := range history {
        role := "user"
        if m.Role == "assistant" {
            role = "assistant"
        }
        reqBody.Messages = append(reqBody.Messages, anthropicMessage{Role: role, Content: m.Content})
    }

    body, err := json.Marshal(reqBody)
    if err != nil {
        return "", newCallError(p.ID(), "completion", "could not encode request", err)
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
    if err != nil {
        return "", newCallError(p.ID(), "completion", "could not build request", err)
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("x-api-key", p.apiKey)
    req.Header.Set("anthropic-version", anthropicVersion)

    resp, err := p.client.Do(req)
    if err != nil {
        return "", newCallError(p.ID(), "completion", "request failed", err)
    }
    defer resp.Body.Close()

    if resp.StatusCode >= 300 {
        detail, _ := io.ReadAll(resp.Body)
        return "", newCallError(p.ID(), "completion",
            fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(detail)), nil)
    }

    var parsed anthropicResponse
    if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
        return "", newCallError(p.ID(), "completion", "could not decode response", err)
    }

    if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
        return "", &ProviderError{
            Provider:  p.ID(),
            Operation: "completion",
            Message:   "empty completion response",
        }
    }

    return parsed.Content[0].Text, nil
}
