// File: internal/services/provider/ollama.go
package provider

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "strings"
)

// ollamaProvider posts to the /api/chat sub-route of a local or
// self-hosted instance. No credential is required.
type ollamaProvider struct {
    endpoint string
    model    string
    client   *http.Client
}

func newOllamaProvider(endpoint string, client *http.Client) *ollamaProvider {
    return &ollamaProvider{
        endpoint: strings.TrimSuffix(endpoint, "/"),
        model:    "llama2",
        client:   client,
    }
}

func (p *ollamaProvider) ID() string          { return "ollama" }
func (p *ollamaProvider) DisplayName() string { return "Ollama" }

type ollamaRequest struct {
    Model    string        `json:"model"`
    Messages []ChatMessage `json:"messages"`
    Stream   bool          `json:"stream"`
}

type ollamaResponse struct {
    Message struct {
        Content string `json:"content"`
    } `json:"message"`
}

func (p *ollamaProvider) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
    body, err := json.Marshal(ollamaRequest{
        Model:    p.model,
        Messages: messages,
        Stream:   false,
    })
    if err != nil {
        return "", newCallError(p.ID(), "completion", "could not encode request", err)
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/api/chat", bytes.NewReader(body))
    if err != nil {
        return "", newCallError(p.ID(), "completion", "could not build request", err)
    }
    req.Header.Set("Content-Type", "application/json")

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

    var parsed ollamaResponse
    if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
        return "", newCallError(p.ID(), "completion", "could not decode response", err)
    }

    if parsed.Message.Content == "" {
        return "", &ProviderError{
            Provider:  p.ID(),
            Operation: "completion",
            Message:   "empty completion response",
        }
    }

    return parsed.Message.Content, nil
}
