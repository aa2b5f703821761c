package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"company-system/internal/entities"
	"company-system/pkg/constants"
)

func TestMessageRepository_Integration_RoomHistory(t *testing.T) {
	require.NotNil(t, testPool, "testPool не инициализирован")
	cleanupTables(t, testPool)
	repo := NewMessageRepository(testPool, zap.NewNop())

	for _, content := range []string{"первое", "второе", "третье"} {
		_, err := repo.CreateMessage(context.Background(), entities.Message{
			Content:  content,
			ChatType: constants.ChatTypePrivate,
			Room:     "standup",
		})
		require.NoError(t, err)
	}
	_, err := repo.CreateMessage(context.Background(), entities.Message{
		Content:  "чужая комната",
		ChatType: constants.ChatTypeDepartment,
		Room:     "7",
	})
	require.NoError(t, err)

	messages, err := repo.GetRoomMessages(context.Background(), constants.ChatTypePrivate, "standup", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Последние сообщения первыми
	assert.Equal(t, "третье", messages[0].Content)
	assert.Equal(t, "второе", messages[1].Content)

	other, err := repo.GetRoomMessages(context.Background(), constants.ChatTypeDepartment, "7", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestMessageRepository_Integration_SharedRoomNumberIsolation(t *testing.T) {
	cleanupTables(t, testPool)
	repo := NewMessageRepository(testPool, zap.NewNop())

	// Приватная комната "7" и чат отдела 7 делят один номер комнаты,
	// истории смешиваться не должны
	_, err := repo.CreateMessage(context.Background(), entities.Message{
		Content:  "личное",
		ChatType: constants.ChatTypePrivate,
		Room:     "7",
	})
	require.NoError(t, err)
	_, err = repo.CreateMessage(context.Background(), entities.Message{
		Content:  "отдельское",
		ChatType: constants.ChatTypeDepartment,
		Room:     "7",
	})
	require.NoError(t, err)

	private, err := repo.GetRoomMessages(context.Background(), constants.ChatTypePrivate, "7", 10)
	require.NoError(t, err)
	require.Len(t, private, 1)
	assert.Equal(t, "личное", private[0].Content)

	department, err := repo.GetRoomMessages(context.Background(), constants.ChatTypeDepartment, "7", 10)
	require.NoError(t, err)
	require.Len(t, department, 1)
	assert.Equal(t, "отдельское", department[0].Content)
}
