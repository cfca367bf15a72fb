// File: internal/repository/message/message_repository_test.go
package message

import (
    "context"
    "testing"
    "time"

    "github.com/glebarez/sqlite"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/wellpath/health-advisor/internal/domain"
)

func newTestRepo(t *testing.T) MessageRepository {
    t.Helper()

    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, db.AutoMigrate(&domain.Message{}))
    return NewMessageRepository(db)
}

func TestCreateAndFindByConversationID(t *testing.T) {
    repo := newTestRepo(t)
    ctx := context.Background()

    first, err := repo.Create(ctx, &domain.Message{
        ConversationID: 1,
        UserID:         7,
        Role:           domain.MessageRoleUser,
        Content:        "我头疼",
    })
    require.NoError(t, err)
    assert.NotZero(t, first.ID)

    _, err = repo.Create(ctx, &domain.Message{
        ConversationID: 1,
        Role:           domain.MessageRoleAssistant,
        Content:        "持续多久了？",
    })
    require.NoError(t, err)

    // A different conversation must not leak into the history.
    _, err = repo.Create(ctx, &domain.Message{
        ConversationID: 2,
        UserID:         7,
        Role:           domain.MessageRoleUser,
        Content:        "另一个话题",
    })
    require.NoError(t, err)

    messages, err := repo.FindByConversationID(ctx, 1)
    require.NoError(t, err)
    require.Len(t, messages, 2)
    assert.Equal(t, "我头疼", messages[0].Content)
    assert.Equal(t, "持续多久了？", messages[1].Content)
}

func TestFindByConversationID_OrdersByTimestampThenID(t *testing.T) {
    repo := newTestRepo(t)
    ctx := context.Background()

    // Same timestamp on every row forces the ID tie-break.
    stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
    for _, content := range []string{"one", "two", "three"} {
        _, err := repo.Create(ctx, &domain.Message{
            ConversationID: 1,
            Role:           domain.MessageRoleUser,
            Content:        content,
            CreatedAt:      stamp,
        })
        require.NoError(t, err)
    }

    messages, err := repo.FindByConversationID(ctx, 1)
    require.NoError(t, err)
    require.Len(t, messages, 3)
    assert.Equal(t, "one", messages[0].Content)
    assert.Equal(t, "two", messages[1].Content)
    assert.Equal(t, "three", messages[2].Content)
}

func TestCreate_Validation(t *testing.T) {
    repo := newTestRepo(t)
    ctx := context.Background()

    _, err := repo.Create(ctx, &domain.Message{ConversationID: 1, Role: domain.MessageRoleUser, Content: "  "})
    assert.Error(t, err, "blank content rejected")

    _, err = repo.Create(ctx, &domain.Message{ConversationID: 1, Role: "moderator", Content: "hi"})
    assert.Error(t, err, "unknown role rejected")

    _, err = repo.Create(ctx, &domain.Message{Role: domain.MessageRoleUser, Content: "hi"})
    assert.Error(t, err, "conversation ID required")
}

func TestDeleteByConversationID(t *testing.T) {
    repo := newTestRepo(t)
    ctx := context.Background()

    for conv := uint(1); conv <= 2; conv++ {
        _, err := repo.Create(ctx, &domain.Message{
            ConversationID: conv,
            Role:           domain.MessageRoleUser,
            Content:        "hello",
        })
        require.NoError(t, err)
    }

    require.NoError(t, repo.DeleteByConversationID(ctx, 1))

    count, err := repo.CountByConversationID(ctx, 1)
    require.NoError(t, err)
    assert.Zero(t, count)

    count, err = repo.CountByConversationID(ctx, 2)
    require.NoError(t, err)
    assert.EqualValues(t, 1, count, "other conversations untouched")
}
