package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/feedbackform/feedback-backend/errors"
	"github.com/feedbackform/feedback-backend/internal/store"
	"github.com/feedbackform/feedback-backend/logger"
	"github.com/feedbackform/feedback-backend/types"
)

const (
	// historyWindow is how many of a session's most recent messages are
	// replayed into the prompt.
	historyWindow = 20

	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// Completer is the single-call completion contract: one synchronous request,
// no streaming, no retries.
type Completer interface {
	Complete(ctx context.Context, messages []types.PromptMessage) (string, error)
}

// ChatService forwards a user message (with bounded session history) to the
// completion provider and logs both sides of the exchange.
type ChatService struct {
	completer    Completer
	chatLog      store.ChatLogStore
	systemPrompt string
	log          *zap.SugaredLogger
}

// NewChatService creates a ChatService.
func NewChatService(completer Completer, chatLog store.ChatLogStore, systemPrompt string) *ChatService {
	return &ChatService{
		completer:    completer,
		chatLog:      chatLog,
		systemPrompt: systemPrompt,
		log:          logger.GetLogger(),
	}
}

// Send logs the user message, builds a prompt from the session's recent
// history and returns the assistant reply. The identity may be zero for
// anonymous callers; logging the assistant reply is best-effort.
func (s *ChatService) Send(ctx context.Context, sessionID, message string, identity types.Identity) (string, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", "", apperrors.ValidationFailed("Message is required", "")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	userMsg := &types.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    identity.Subject,
		UserEmail: identity.Email,
		Role:      types.ChatRoleUser,
		Content:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chatLog.Append(ctx, userMsg); err != nil {
		return "", "", apperrors.NewStorageError(err)
	}

	history, err := s.chatLog.ListBySession(ctx, sessionID, historyWindow)
	if err != nil {
		return "", "", apperrors.NewStorageError(err)
	}

	prompt := make([]types.PromptMessage, 0, len(history)+1)
	prompt = append(prompt, types.PromptMessage{Role: types.ChatRoleSystem, Content: s.systemPrompt})
	for _, msg := range history {
		prompt = append(prompt, types.PromptMessage{Role: msg.Role, Content: msg.Content})
	}

	answer, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", "", apperrors.NewUpstreamError("completion", err)
	}

	assistantMsg := &types.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    identity.Subject,
		UserEmail: identity.Email,
		Role:      types.ChatRoleAssistant,
		Content:   answer,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chatLog.Append(ctx, assistantMsg); err != nil {
		s.log.Warnw("Failed to log assistant reply", "session", sessionID, "error", err)
	}

	return answer, sessionID, nil
}

// History returns the authenticated user's logged messages, oldest first.
// The limit defaults to 50 and is capped at 200.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]*types.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	items, err := s.chatLog.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	if items == nil {
		items = []*types.ChatMessage{}
	}
	return items, nil
}
