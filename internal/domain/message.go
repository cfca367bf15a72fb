// File: internal/domain/message.go
package domain

import "time"

// Message roles.
const (
    MessageRoleUser      = "user"
    MessageRoleAssistant = "assistant"
    MessageRoleSystem    = "system"
)

// Message represents a single turn within a conversation. Messages are
// append-only: once written they are never edited. Error marks assistant
// turns that carry a degraded failure notice instead of genuine output.
type Message struct {
    ID             uint      `json:"id" gorm:"primarykey"`
    ConversationID uint      `json:"conversation_id" gorm:"not null;index"`
    UserID         uint      `json:"user_id,omitempty"` // zero for assistant/system turns
    Role           string    `json:"role" gorm:"not null"`
    Content        string    `json:"content" gorm:"not null"`
    Error          bool      `json:"error"`
    CreatedAt      time.Time `json:"timestamp"`
}
