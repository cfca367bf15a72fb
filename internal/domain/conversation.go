// File: internal/domain/conversation.go
package domain

import "time"

// Conversation represents a single advisor session owned by a user.
type Conversation struct {
    ID          uint      `json:"id" gorm:"primarykey"`
    UserID      uint      `json:"user_id" gorm:"not null;index"`
    Title       string    `json:"title" gorm:"not null"`
    CreatedAt   time.Time `json:"created_at"`
    LastUpdated time.Time `json:"last_updated" gorm:"index"`
    IsArchived  bool      `json:"is_archived"`
}
