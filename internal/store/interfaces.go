// Package store defines the storage-agnostic persistence contracts. The
// postgres, badger and file subpackages provide interchangeable
// implementations selected at startup.
package store

import (
	"context"

	"github.com/feedbackform/feedback-backend/types"
)

// FeedbackStore is the record store contract for feedback entries.
//
// List returns records matching the filter sorted by CreatedAt descending,
// sliced to the pagination window, together with the total count of matching
// records before slicing. Update and Delete report a missing id as
// (false, nil) rather than an error; backends that cannot mutate records
// return ErrUnsupported.
type FeedbackStore interface {
	Create(ctx context.Context, fb *types.Feedback) (string, error)
	Get(ctx context.Context, id string) (*types.Feedback, error)
	List(ctx context.Context, filter types.FeedbackFilter, page types.Pagination) ([]*types.Feedback, int, error)
	Update(ctx context.Context, id string, update types.FeedbackUpdate) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ChatLogStore persists chat exchanges. Only the postgres backend provides
// an implementation; without one the chat endpoints stay disabled.
type ChatLogStore interface {
	Append(ctx context.Context, msg *types.ChatMessage) error
	// ListBySession returns up to limit of the most recent messages for a
	// session, in chronological order.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*types.ChatMessage, error)
	// ListByUser returns up to limit of a user's messages, oldest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*types.ChatMessage, error)
}
