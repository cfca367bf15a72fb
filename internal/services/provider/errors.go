// File: internal/services/provider/errors.go
package provider

import "fmt"

// UnsupportedProviderError is returned when a provider id matches no
// configured backend.
type UnsupportedProviderError struct {
    ID string
}

func (e *UnsupportedProviderError) Error() string {
    return fmt.Sprintf("不支持的AI模型类型: %s", e.ID)
}

// ProviderError wraps any transport, HTTP or response-shape failure from
// a configured backend.
type ProviderError struct {
    Provider  string
    Operation string
    Message   string
    Cause     error
}

func (e *ProviderError) Error() string {
    if e.Cause != nil {
        return fmt.Sprintf("AI provider %s error in %s: %s (caused by: %v)",
            e.Provider, e.Operation, e.Message, e.Cause)
    }
    return fmt.Sprintf("AI provider %s error in %s: %s", e.Provider, e.Operation, e.Message)
}

func (e *ProviderError) Unwrap() error {
    return e.Cause
}

func newCallError(providerID, operation, msg string, cause error) *ProviderError {
    return &ProviderError{Provider: providerID, Operation: operation, Message: msg, Cause: cause}
}
