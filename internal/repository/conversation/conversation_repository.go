// File: internal/repository/conversation/conversation_repository.go
package conversation

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/wellpath/health-advisor/internal/domain"
    "gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("conversation not found")

type gormConversationRepository struct {
    db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
    return &gormConversationRepository{db: db}
}

func (r *gormConversationRepository) Create(ctx context.Context, conversation *domain.Conversation) (*domain.Conversation, error) {
    if err := r.validateConversationInput(conversation); err != nil {
        log.Printf("[ConversationRepository] Validation failed: %v", err)
        return nil, fmt.Errorf("validation failed: %w", err)
    }

    now := time.Now()
    if conversation.CreatedAt.IsZero() {
        conversation.CreatedAt = now
    }
    if conversation.LastUpdated.IsZero() {
        conversation.LastUpdated = now
    }

    err := r.db.WithContext(ctx).Create(conversation).Error
    if err != nil {
        log.Printf("[ConversationRepository] Database error during conversation creation for user ID %d: %v", conversation.UserID, err)
        return nil, errors.New("database error creating conversation")
    }

    log.Printf("[ConversationRepository] Conversation created successfully with ID: %d for user: %d", conversation.ID, conversation.UserID)
    return conversation, nil
}

func (r *gormConversationRepository) FindByID(ctx context.Context, id uint) (*domain.Conversation, error) {
    if id == 0 {
        return nil, errors.New("invalid conversation ID")
    }

    var conversation domain.Conversation
    err := r.db.WithContext(ctx).First(&conversation, id).Error
    return r.handleFindError(err, &conversation, "FindByID")
}

// FindByUserID returns the user's conversations ordered by most recent
// activity first.
func (r *gormConversationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error) {
    if userID == 0 {
        return nil, errors.New("invalid user ID")
    }

    var conversations []domain.Conversation
    err := r.db.WithContext(ctx).
        Where("user_id = ?", userID).
        Order("last_updated DESC, id DESC").
        Find(&conversations).Error

    if err != nil {
        log.Printf("[ConversationRepository] Database error finding conversations for user ID %d: %v", userID, err)
        return nil, errors.New("database error fetching conversations")
    }

    return conversations, nil
}

// UpdateTitle renames the conversation and bumps its LastUpdated stamp.
func (r *gormConversationRepository) UpdateTitle(ctx context.Context, id uint, title string) (*domain.Conversation, error) {
    if id == 0 {
        return nil, errors.New("invalid conversation ID")
    }
    if err := r.validateTitle(title); err != nil {
        return nil, fmt.Errorf("title validation: %w", err)
    }

    result := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("id = ?", id).
        Updates(map[string]interface{}{
            "title":        title,
            "last_updated": time.Now(),
        })

    if result.Error != nil {
        log.Printf("[ConversationRepository] Database error updating title for conversation ID %d: %v", id, result.Error)
        return nil, errors.New("database error updating conversation title")
    }

    if result.RowsAffected == 0 {
        return nil, ErrConversationNotFound
    }

    return r.FindByID(ctx, id)
}

func (r *gormConversationRepository) TouchLastUpdated(ctx context.Context, id uint) error {
    if id == 0 {
        return errors.New("invalid conversation ID")
    }

    result := r.db.WithContext(ctx).
        Model(&domain.Conversation{}).
        Where("id = ?", id).
        Update("last_updated", time.Now())

    if result.Error != nil {
        log.Printf("[ConversationRepository] Database error updating timestamp for conversation ID %d: %v", id, result.Error)
        return errors.New("database error updating conversation timestamp")
    }

    if result.RowsAffected == 0 {
        return ErrConversationNotFound
    }

    return nil
}

// Delete removes the conversation row only. Cascading message deletion is
// the orchestrator's job so both repositories stay single-entity.
func (r *gormConversationRepository) Delete(ctx context.Context, id uint) error {
    if id == 0 {
        return errors.New("invalid conversation ID")
    }

    result := r.db.WithContext(ctx).Delete(&domain.Conversation{}, id)
    if result.Error != nil {
        log.Printf("[ConversationRepository] Database error deleting conversation ID %d: %v", id, result.Error)
        return errors.New("database error deleting conversation")
    }

    if result.RowsAffected == 0 {
        return ErrConversationNotFound
    }

    log.Printf("[ConversationRepository] Conversation deleted successfully: ID %d", id)
    return nil
}

// ===== VALIDATION HELPERS =====

func (r *gormConversationRepository) validateConversationInput(conversation *domain.Conversation) error {
    if conversation == nil {
        return errors.New("conversation cannot be nil")
    }

    if conversation.UserID == 0 {
        return errors.New("user ID is required")
    }

    if err := r.validateTitle(conversation.Title); err != nil {
        return fmt.Errorf("title validation: %w", err)
    }

    return nil
}

func (r *gormConversationRepository) validateTitle(title string) error {
    if strings.TrimSpace(title) == "" {
        return errors.New("title cannot be empty")
    }

    if len(title) > 200 {
        return errors.New("title must be 200 characters or less")
    }

    return nil
}

// ===== ERROR HANDLING HELPERS =====

func (r *gormConversationRepository) handleFindError(err error, conversation *domain.Conversation, operation string) (*domain.Conversation, error) {
    if err == nil {
        return conversation, nil
    }

    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, ErrConversationNotFound
    }

    log.Printf("[ConversationRepository] %s database error: %v", operation, err)
    return nil, errors.New("database query failed")
}
