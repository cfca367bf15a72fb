// File: internal/repository/conversation/interface.go
package conversation

import (
    "context"

    "github.com/wellpath/health-advisor/internal/domain"
)

// ConversationRepository handles conversation persistence.
type ConversationRepository interface {
    Create(ctx context.Context, conversation *domain.Conversation) (*domain.Conversation, error)
    FindByID(ctx context.Context, id uint) (*domain.Conversation, error)
    FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error)
    UpdateTitle(ctx context.Context, id uint, title string) (*domain.Conversation, error)
    TouchLastUpdated(ctx context.Context, id uint) error
    Delete(ctx context.Context, id uint) error
}
