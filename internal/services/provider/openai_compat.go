// File: internal/services/provider/openai_compat.go
package provider

import (
    "context"

    openai "github.com/sashabaranov/go-openai"
)

// completionProvider serves every backend that speaks the OpenAI
// chat-completions shape (volcengine, deepseek, openai): messages pass
// through verbatim as {role, content} pairs and the reply is read from
// choices[0].message.content.
type completionProvider struct {
    id          string
    displayName string
    model       string
    temperature float32
    maxTokens   int
    client      *openai.Client
}

func newCompletionProvider(id, displayName, apiKey, baseURL, model string, temperature float32, maxTokens int) *completionProvider {
    cfg := openai.DefaultConfig(apiKey)
    if baseURL != "" {
        cfg.BaseURL = baseURL
    }
    return &completionProvider{
        id:          id,
        displayName: displayName,
        model:       model,
        temperature: temperature,
        maxTokens:   maxTokens,
        client:      openai.NewClientWithConfig(cfg),
    }
}

func (p *completionProvider) ID() string          { return p.id }
func (p *completionProvider) DisplayName() string { return p.displayName }

func (p *completionProvider) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
    outbound := make([]openai.ChatCompletionMessage, 0, len(messages))
    for _, m := range messages {
        outbound = append(outbound, openai.ChatCompletionMessage{
            Role:    m.Role,
            Content: m.Content,
        })
    }

    resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
        Model:       p.model,
        Messages:    outbound,
        Temperature: p.temperature,
        MaxTokens:   p.maxTokens,
    })
    if err != nil {
        return "", newCallError(p.id, "completion", "failed to create completion", err)
    }

    if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
        return "", &ProviderError{
            Provider:  p.id,
            Operation: "completion",
            Message:   "empty completion response",
        }
    }

    return resp.Choices[0].Message.Content, nil
}
