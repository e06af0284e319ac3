package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedbackform/feedback-backend/internal/store"
	"github.com/feedbackform/feedback-backend/types"
)

var _ store.ChatLogStore = (*ChatLogStore)(nil)

// ChatLogStore implements store.ChatLogStore using PostgreSQL.
type ChatLogStore struct {
	db querier
}

// NewChatLogStore creates a chat log store backed by a pgx pool.
func NewChatLogStore(pool *pgxpool.Pool) *ChatLogStore {
	return &ChatLogStore{db: pool}
}

const chatColumns = "id, session_id, COALESCE(user_id, ''), COALESCE(user_email, ''), role, content, created_at"

// Append inserts one logged chat message.
func (s *ChatLogStore) Append(ctx context.Context, msg *types.ChatMessage) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO chat_messages (id, session_id, user_id, user_email, role, content, created_at)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)`,
		msg.ID, msg.SessionID, msg.UserID, msg.UserEmail, msg.Role, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// ListBySession returns up to limit of the most recent messages for a
// session, in chronological order. The inner query selects the newest rows;
// the outer one restores ascending order for prompt building.
func (s *ChatLogStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]*types.ChatMessage, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+chatColumns+` FROM (
		   SELECT id, session_id, user_id, user_email, role, content, created_at
		   FROM chat_messages
		   WHERE session_id = $1
		   ORDER BY created_at DESC
		   LIMIT $2
		 ) recent ORDER BY created_at ASC`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list session messages: %w", err)
	}
	defer rows.Close()
	return scanChatMessages(rows)
}

// ListByUser returns up to limit of a user's messages, oldest first.
func (s *ChatLogStore) ListByUser(ctx context.Context, userID string, limit int) ([]*types.ChatMessage, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+chatColumns+` FROM chat_messages
		 WHERE user_id = $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user messages: %w", err)
	}
	defer rows.Close()
	return scanChatMessages(rows)
}

func scanChatMessages(rows pgx.Rows) ([]*types.ChatMessage, error) {
	var items []*types.ChatMessage
	for rows.Next() {
		msg := &types.ChatMessage{}
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.UserID, &msg.UserEmail, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		items = append(items, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
