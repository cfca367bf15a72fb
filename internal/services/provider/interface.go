// File: internal/services/provider/interface.go

// Package provider routes conversation payloads to interchangeable AI
// backends. Each backend speaks its own wire shape, so every Provider
// implementation owns its request construction and response extraction;
// the registry only does the lookup.
package provider

import "context"

// ChatMessage is the provider-neutral message form handed to Send.
type ChatMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

// Provider is one configured AI backend.
type Provider interface {
    ID() string
    DisplayName() string
    Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// Info is the credential-free listing form of a provider.
type Info struct {
    ID   string `json:"id"`
    Name string `json:"name"`
}
