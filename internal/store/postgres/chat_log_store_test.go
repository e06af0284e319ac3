package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackform/feedback-backend/types"
)

var chatRowColumns = []string{"id", "session_id", "user_id", "user_email", "role", "content", "created_at"}

func newMockChatLog(t *testing.T) (*ChatLogStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &ChatLogStore{db: mock}, mock
}

func TestChatLogStore_Append(t *testing.T) {
	s, mock := newMockChatLog(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO chat_messages").
		WithArgs("m-1", "s-1", "u-1", "u@example.com", types.ChatRoleUser, "hello", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.Append(context.Background(), &types.ChatMessage{
		ID:        "m-1",
		SessionID: "s-1",
		UserID:    "u-1",
		UserEmail: "u@example.com",
		Role:      types.ChatRoleUser,
		Content:   "hello",
		CreatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatLogStore_ListBySession(t *testing.T) {
	s, mock := newMockChatLog(t)
	now := time.Now().UTC()

	mock.ExpectQuery("(?s)SELECT (.+) FROM (.+) WHERE session_id").
		WithArgs("s-1", 20).
		WillReturnRows(pgxmock.NewRows(chatRowColumns).
			AddRow("m-1", "s-1", "", "", types.ChatRoleUser, "first", now.Add(-time.Minute)).
			AddRow("m-2", "s-1", "", "", types.ChatRoleAssistant, "second", now))

	items, err := s.ListBySession(context.Background(), "s-1", 20)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Content)
	assert.Equal(t, "second", items[1].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatLogStore_ListByUser(t *testing.T) {
	s, mock := newMockChatLog(t)
	now := time.Now().UTC()

	mock.ExpectQuery("(?s)SELECT (.+) FROM chat_messages(.+)WHERE user_id").
		WithArgs("u-1", 50).
		WillReturnRows(pgxmock.NewRows(chatRowColumns).
			AddRow("m-1", "s-1", "u-1", "u@example.com", types.ChatRoleUser, "hello", now))

	items, err := s.ListByUser(context.Background(), "u-1", 50)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "u-1", items[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
