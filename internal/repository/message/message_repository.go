// File: internal/repository/message/message_repository.go
package message

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"

    "github.com/wellpath/health-advisor/internal/domain"
    "gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type gormMessageRepository struct {
    db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
    return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
    if err := r.validateMessageInput(message); err != nil {
        log.Printf("[MessageRepository] Validation failed: %v", err)
        return nil, fmt.Errorf("validation failed: %w", err)
    }

    err := r.db.WithContext(ctx).Create(message).Error
    if err != nil {
        // Secure logging - no medical content exposed
        log.Printf("[MessageRepository] Database error during message creation for conversation ID %d: %v", message.ConversationID, err)
        return nil, errors.New("database error creating message")
    }

    log.Printf("[MessageRepository] Message created successfully with ID: %d for conversation: %d", message.ID, message.ConversationID)
    return message, nil
}

// FindByConversationID returns the full ordered history. Ordering is by
// timestamp then ID, so concurrent appends that land on the same
// timestamp still read back in insertion order.
func (r *gormMessageRepository) FindByConversationID(ctx context.Context, conversationID uint) ([]domain.Message, error) {
    if conversationID == 0 {
        return nil, errors.New("invalid conversation ID")
    }

    var messages []domain.Message
    err := r.db.WithContext(ctx).
        Where("conversation_id = ?", conversationID).
        Order("created_at ASC, id ASC").
        Find(&messages).Error

    if err != nil {
        log.Printf("[MessageRepository] Database error finding messages for conversation ID %d: %v", conversationID, err)
        return nil, errors.New("database error fetching messages")
    }

    return messages, nil
}

func (r *gormMessageRepository) CountByConversationID(ctx context.Context, conversationID uint) (int64, error) {
    if conversationID == 0 {
        return 0, errors.New("invalid conversation ID")
    }

    var count int64
    err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("conversation_id = ?", conversationID).Count(&count).Error
    if err != nil {
        log.Printf("[MessageRepository] Database error counting messages for conversation ID %d: %v", conversationID, err)
        return 0, errors.New("database error counting messages")
    }

    return count, nil
}

// DeleteByConversationID performs the bulk deletion behind a conversation
// delete cascade.
func (r *gormMessageRepository) DeleteByConversationID(ctx context.Context, conversationID uint) error {
    if conversationID == 0 {
        return errors.New("invalid conversation ID")
    }

    result := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Delete(&domain.Message{})
    if result.Error != nil {
        log.Printf("[MessageRepository] Database error deleting messages for conversation ID %d: %v", conversationID, result.Error)
        return errors.New("database error deleting messages by conversation ID")
    }

    log.Printf("[MessageRepository] Deleted %d messages for conversation %d", result.RowsAffected, conversationID)
    return nil
}

// ===== VALIDATION HELPERS =====

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
    if message == nil {
        return errors.New("message cannot be nil")
    }

    if message.ConversationID == 0 {
        return errors.New("conversation ID is required")
    }

    if strings.TrimSpace(message.Content) == "" {
        return errors.New("message content cannot be empty")
    }

    if err := r.validateRole(message.Role); err != nil {
        return fmt.Errorf("role validation: %w", err)
    }

    return nil
}

func (r *gormMessageRepository) validateRole(role string) error {
    switch role {
    case domain.MessageRoleUser, domain.MessageRoleAssistant, domain.MessageRoleSystem:
        return nil
    }
    return errors.New("invalid message role")
}
