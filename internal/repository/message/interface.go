// File: internal/repository/message/interface.go
package message

import (
    "context"

    "github.com/wellpath/health-advisor/internal/domain"
)

// MessageRepository handles message persistence. Messages are append-only;
// there is no update operation and deletion happens only as part of a
// conversation cascade.
type MessageRepository interface {
    Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
    FindByConversationID(ctx context.Context, conversationID uint) ([]domain.Message, error)
    CountByConversationID(ctx context.Context, conversationID uint) (int64, error)
    DeleteByConversationID(ctx context.Context, conversationID uint) error
}
