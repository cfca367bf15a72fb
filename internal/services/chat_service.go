// File: internal/services/chat_service.go
package services

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/wellpath/health-advisor/internal/domain"
    "github.com/wellpath/health-advisor/internal/repository/conversation"
    "github.com/wellpath/health-advisor/internal/repository/message"
    chatservice "github.com/wellpath/health-advisor/internal/services/chat"
    "github.com/wellpath/health-advisor/internal/services/provider"
)

// Fixed advisor persona; the assembled record context is appended when
// the user has records.
const systemPersona = "你是一个专业的健康顾问AI助手。请基于用户提供的病历资料，给出专业、准确的健康建议。"

// ChatService coordinates a conversation turn end to end: persistence of
// the user message, context assembly, provider dispatch, and persistence
// of the outcome (genuine reply or degraded error turn).
type ChatService struct {
    config           *chatservice.Config
    conversationRepo conversation.ConversationRepository
    messageRepo      message.MessageRepository
    assembler        *chatservice.ContextAssembler
    providers        *provider.Registry
}

func NewChatService(
    conversationRepo conversation.ConversationRepository,
    messageRepo message.MessageRepository,
    assembler *chatservice.ContextAssembler,
    providers *provider.Registry,
    defaultProvider string,
) (*ChatService, error) {
    if conversationRepo == nil {
        return nil, chatservice.NewValidationError("constructor", "conversation repository is required")
    }
    if messageRepo == nil {
        return nil, chatservice.NewValidationError("constructor", "message repository is required")
    }
    if assembler == nil {
        return nil, chatservice.NewValidationError("constructor", "context assembler is required")
    }
    if providers == nil {
        return nil, chatservice.NewValidationError("constructor", "provider registry is required")
    }

    config := chatservice.DefaultConfig()
    if defaultProvider != "" {
        config.DefaultProvider = defaultProvider
    }
    if err := config.Validate(); err != nil {
        return nil, chatservice.NewValidationError("config", err.Error())
    }

    return &ChatService{
        config:           config,
        conversationRepo: conversationRepo,
        messageRepo:      messageRepo,
        assembler:        assembler,
        providers:        providers,
    }, nil
}

// CreateConversation starts a new session, defaulting the title the way
// the web client expects.
func (s *ChatService) CreateConversation(ctx context.Context, userID uint, title string) (*domain.Conversation, error) {
    if userID == 0 {
        return nil, chatservice.NewValidationError("create_conversation", "缺少用户ID")
    }

    if strings.TrimSpace(title) == "" {
        title = fmt.Sprintf("对话 %s", time.Now().Format("2006-01-02 15:04:05"))
    }
    if len(title) > s.config.MaxTitleLength {
        title = title[:s.config.MaxTitleLength]
    }

    conv := &domain.Conversation{UserID: userID, Title: title}
    created, err := s.conversationRepo.Create(ctx, conv)
    if err != nil {
        return nil, chatservice.NewStorageError("create_conversation", "could not create conversation", err)
    }
    return created, nil
}

// GetUserConversations lists the user's sessions, most recently active
// first.
func (s *ChatService) GetUserConversations(ctx context.Context, userID uint) ([]domain.Conversation, error) {
    if userID == 0 {
        return nil, chatservice.NewValidationError("list_conversations", "缺少用户ID")
    }

    conversations, err := s.conversationRepo.FindByUserID(ctx, userID)
    if err != nil {
        return nil, chatservice.NewStorageError("list_conversations", "could not fetch conversations", err)
    }
    return conversations, nil
}

// GetConversationMessages returns the full ordered history.
func (s *ChatService) GetConversationMessages(ctx context.Context, conversationID uint) ([]domain.Message, error) {
    messages, err := s.messageRepo.FindByConversationID(ctx, conversationID)
    if err != nil {
        return nil, chatservice.NewStorageError("list_messages", "could not fetch messages", err)
    }
    return messages, nil
}

// UpdateTitle renames a conversation.
func (s *ChatService) UpdateTitle(ctx context.Context, conversationID uint, title string) (*domain.Conversation, error) {
    if strings.TrimSpace(title) == "" {
        return nil, chatservice.NewValidationError("update_title", "标题不能为空")
    }
    if len(title) > s.config.MaxTitleLength {
        title = title[:s.config.MaxTitleLength]
    }

    updated, err := s.conversationRepo.UpdateTitle(ctx, conversationID, title)
    if err != nil {
        if errors.Is(err, conversation.ErrConversationNotFound) {
            return nil, chatservice.NewNotFoundError("update_title", "对话不存在")
        }
        return nil, chatservice.NewStorageError("update_title", "could not update title", err)
    }
    return updated, nil
}

// DeleteConversation removes the conversation and cascades to all its
// messages.
func (s *ChatService) DeleteConversation(ctx context.Context, conversationID uint) error {
    if err := s.conversationRepo.Delete(ctx, conversationID); err != nil {
        if errors.Is(err, conversation.ErrConversationNotFound) {
            return chatservice.NewNotFoundError("delete_conversation", "对话不存在")
        }
        return chatservice.NewStorageError("delete_conversation", "could not delete conversation", err)
    }

    if err := s.messageRepo.DeleteByConversationID(ctx, conversationID); err != nil {
        return chatservice.NewStorageError("delete_conversation", "could not delete conversation messages", err)
    }

    return nil
}

// ListProviders returns the configured AI backends, credentials omitted.
func (s *ChatService) ListProviders() []provider.Info {
    return s.providers.List()
}

// SendResult pairs the two messages persisted by one send-message call.
type SendResult struct {
    UserMessage      *domain.Message `json:"userMessage"`
    AssistantMessage *domain.Message `json:"aiMessage"`
}

// SendMessage runs the conversation turn state machine:
//
//  1. validate content,
//  2. persist the user turn (durable even if everything after fails),
//  3. touch the conversation,
//  4. fetch history, 5. assemble record context,
//  6. build the outbound array (system persona + context, then history),
//  7. dispatch to the selected provider,
//  8. persist the assistant turn, genuine reply or error-flagged notice.
//
// Provider failures are absorbed into an error-flagged assistant message;
// they never fail the operation itself.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, userID uint, content, providerID string) (*SendResult, error) {
    if strings.TrimSpace(content) == "" {
        return nil, chatservice.NewValidationError("send_message", "消息内容不能为空")
    }

    if providerID == "" {
        providerID = s.config.DefaultProvider
    }

    if _, err := s.conversationRepo.FindByID(ctx, conversationID); err != nil {
        if errors.Is(err, conversation.ErrConversationNotFound) {
            return nil, chatservice.NewNotFoundError("send_message", "对话不存在")
        }
        return nil, chatservice.NewStorageError("send_message", "could not fetch conversation", err)
    }

    userMessage, err := s.messageRepo.Create(ctx, &domain.Message{
        ConversationID: conversationID,
        UserID:         userID,
        Role:           domain.MessageRoleUser,
        Content:        content,
    })
    if err != nil {
        return nil, chatservice.NewStorageError("send_message", "could not persist user message", err)
    }

    if err := s.conversationRepo.TouchLastUpdated(ctx, conversationID); err != nil {
        // Not fatal: the user message is already durable.
        log.Printf("[ChatService] Could not touch conversation %d: %v", conversationID, err)
    }

    history, err := s.messageRepo.FindByConversationID(ctx, conversationID)
    if err != nil {
        return nil, chatservice.NewStorageError("send_message", "could not fetch history", err)
    }

    contextBlock, err := s.assembler.BuildContext(ctx, userID)
    if err != nil {
        return nil, err
    }

    outbound := make([]provider.ChatMessage, 0, len(history)+1)
    systemContent := systemPersona
    if contextBlock != "" {
        systemContent = systemPersona + "\n" + contextBlock
    }
    outbound = append(outbound, provider.ChatMessage{Role: domain.MessageRoleSystem, Content: systemContent})
    for _, m := range history {
        outbound = append(outbound, provider.ChatMessage{Role: m.Role, Content: m.Content})
    }

    assistantMessage := &domain.Message{
        ConversationID: conversationID,
        Role:           domain.MessageRoleAssistant,
    }

    reply, err := s.providers.Send(ctx, providerID, outbound)
    if err != nil {
        // Terminal but recoverable: the conversation continues with a
        // visible error turn instead of a hard failure.
        log.Printf("[ChatService] Provider %s failed for conversation %d: %v", providerID, conversationID, err)
        assistantMessage.Error = true
        assistantMessage.Content = "AI服务暂时不可用: " + err.Error()
    } else {
        assistantMessage.Content = reply
    }

    persisted, err := s.messageRepo.Create(ctx, assistantMessage)
    if err != nil {
        return nil, chatservice.NewStorageError("send_message", "could not persist assistant message", err)
    }

    return &SendResult{UserMessage: userMessage, AssistantMessage: persisted}, nil
}
