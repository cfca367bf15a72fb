// File: internal/services/mocks_test.go
package services

import (
    "context"
    "errors"
    "sync/atomic"

    "github.com/wellpath/health-advisor/internal/domain"
    "github.com/wellpath/health-advisor/internal/repository/conversation"
    "github.com/wellpath/health-advisor/internal/repository/message"
    "github.com/wellpath/health-advisor/internal/repository/record"
)

var _ record.RecordRepository = (*MockRecordRepository)(nil)

// MockRecordRepository is a func-field mock of record.RecordRepository.
type MockRecordRepository struct {
    CreateFunc        func(ctx context.Context, rec *domain.Record) (*domain.Record, error)
    FindByIDFunc      func(ctx context.Context, id uint) (*domain.Record, error)
    FindByUserIDFunc  func(ctx context.Context, userID uint) ([]domain.Record, error)
    DeleteFunc        func(ctx context.Context, id uint) error
    CountByUserIDFunc func(ctx context.Context, userID uint) (int64, error)

    CreateCallCount int32
    DeleteCallCount int32
}

func (m *MockRecordRepository) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
    atomic.AddInt32(&m.CreateCallCount, 1)
    if m.CreateFunc != nil {
        return m.CreateFunc(ctx, rec)
    }
    created := *rec
    created.ID = 1
    return &created, nil
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uint) (*domain.Record, error) {
    if m.FindByIDFunc != nil {
        return m.FindByIDFunc(ctx, id)
    }
    return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockRecordRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Record, error) {
    if m.FindByUserIDFunc != nil {
        return m.FindByUserIDFunc(ctx, userID)
    }
    return nil, nil
}

func (m *MockRecordRepository) Delete(ctx context.Context, id uint) error {
    atomic.AddInt32(&m.DeleteCallCount, 1)
    if m.DeleteFunc != nil {
        return m.DeleteFunc(ctx, id)
    }
    return nil
}

func (m *MockRecordRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
    if m.CountByUserIDFunc != nil {
        return m.CountByUserIDFunc(ctx, userID)
    }
    return 0, nil
}

var _ conversation.ConversationRepository = (*MockConversationRepository)(nil)

// MockConversationRepository is a func-field mock of
// conversation.ConversationRepository.
type MockConversationRepository struct {
    CreateFunc           func(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
    FindByIDFunc         func(ctx context.Context, id uint) (*domain.Conversation, error)
    FindByUserIDFunc     func(ctx context.Context, userID uint) ([]domain.Conversation, error)
    UpdateTitleFunc      func(ctx context.Context, id uint, title string) (*domain.Conversation, error)
    TouchLastUpdatedFunc func(ctx context.Context, id uint) error
    DeleteFunc           func(ctx context.Context, id uint) error

    CreateCallCount int32
    DeleteCallCount int32
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
    atomic.AddInt32(&m.CreateCallCount, 1)
    if m.CreateFunc != nil {
        return m.CreateFunc(ctx, conv)
    }
    created := *conv
    created.ID = 1
    return &created, nil
}

func (m *MockConversationRepository) FindByID(ctx context.Context, id uint) (*domain.Conversation, error) {
    if m.FindByIDFunc != nil {
        return m.FindByIDFunc(ctx, id)
    }
    return &domain.Conversation{ID: id, UserID: 1, Title: "mock"}, nil
}

func (m *MockConversationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error) {
    if m.FindByUserIDFunc != nil {
        return m.FindByUserIDFunc(ctx, userID)
    }
    return nil, nil
}

func (m *MockConversationRepository) UpdateTitle(ctx context.Context, id uint, title string) (*domain.Conversation, error) {
    if m.UpdateTitleFunc != nil {
        return m.UpdateTitleFunc(ctx, id, title)
    }
    return &domain.Conversation{ID: id, Title: title}, nil
}

func (m *MockConversationRepository) TouchLastUpdated(ctx context.Context, id uint) error {
    if m.TouchLastUpdatedFunc != nil {
        return m.TouchLastUpdatedFunc(ctx, id)
    }
    return nil
}

func (m *MockConversationRepository) Delete(ctx context.Context, id uint) error {
    atomic.AddInt32(&m.DeleteCallCount, 1)
    if m.DeleteFunc != nil {
        return m.DeleteFunc(ctx, id)
    }
    return nil
}

var _ message.MessageRepository = (*MockMessageRepository)(nil)

// MockMessageRepository is a func-field mock of message.MessageRepository.
// The default Create appends into Stored so tests can inspect the persisted
// turns without wiring a database.
type MockMessageRepository struct {
    CreateFunc                 func(ctx context.Context, msg *domain.Message) (*domain.Message, error)
    FindByConversationIDFunc   func(ctx context.Context, conversationID uint) ([]domain.Message, error)
    CountByConversationIDFunc  func(ctx context.Context, conversationID uint) (int64, error)
    DeleteByConversationIDFunc func(ctx context.Context, conversationID uint) error

    Stored                       []domain.Message
    CreateCallCount              int32
    DeleteByConversationIDCalled int32
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
    atomic.AddInt32(&m.CreateCallCount, 1)
    if m.CreateFunc != nil {
        return m.CreateFunc(ctx, msg)
    }
    created := *msg
    created.ID = uint(len(m.Stored) + 1)
    m.Stored = append(m.Stored, created)
    return &created, nil
}

func (m *MockMessageRepository) FindByConversationID(ctx context.Context, conversationID uint) ([]domain.Message, error) {
    if m.FindByConversationIDFunc != nil {
        return m.FindByConversationIDFunc(ctx, conversationID)
    }
    var out []domain.Message
    for _, msg := range m.Stored {
        if msg.ConversationID == conversationID {
            out = append(out, msg)
        }
    }
    return out, nil
}

func (m *MockMessageRepository) CountByConversationID(ctx context.Context, conversationID uint) (int64, error) {
    if m.CountByConversationIDFunc != nil {
        return m.CountByConversationIDFunc(ctx, conversationID)
    }
    return int64(len(m.Stored)), nil
}

func (m *MockMessageRepository) DeleteByConversationID(ctx context.Context, conversationID uint) error {
    atomic.AddInt32(&m.DeleteByConversationIDCalled, 1)
    if m.DeleteByConversationIDFunc != nil {
        return m.DeleteByConversationIDFunc(ctx, conversationID)
    }
    m.Stored = nil
    return nil
}
