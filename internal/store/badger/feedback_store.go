// Package badger implements the feedback store on an embedded BadgerDB.
// Records are encoded as JSON values under a key prefix; listing is a full
// prefix scan with in-process filtering, which is fine for the volumes a
// feedback form sees.
package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/feedbackform/feedback-backend/internal/store"
	"github.com/feedbackform/feedback-backend/types"
)

const feedbackKeyPrefix = "feedback:"

var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements store.FeedbackStore on BadgerDB.
type FeedbackStore struct {
	db *badger.DB
}

// NewFeedbackStore wraps an open badger database.
func NewFeedbackStore(db *badger.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Open opens (or creates) a badger database at dir with logging silenced.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", dir, err)
	}
	return db, nil
}

func feedbackKey(id string) []byte {
	return []byte(feedbackKeyPrefix + id)
}

// Create stores a fully-formed feedback record.
func (s *FeedbackStore) Create(ctx context.Context, fb *types.Feedback) (string, error) {
	data, err := json.Marshal(fb)
	if err != nil {
		return "", fmt.Errorf("marshal feedback: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(feedbackKey(fb.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to create feedback: %w", err)
	}
	return fb.ID, nil
}

// Get retrieves a record by id.
func (s *FeedbackStore) Get(ctx context.Context, id string) (*types.Feedback, error) {
	var fb types.Feedback
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(feedbackKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get feedback: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &fb)
		})
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// List scans all records, filters and sorts in process, then slices to the
// pagination window.
func (s *FeedbackStore) List(ctx context.Context, filter types.FeedbackFilter, page types.Pagination) ([]*types.Feedback, int, error) {
	var matched []*types.Feedback
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(feedbackKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var fb types.Feedback
				if err := json.Unmarshal(val, &fb); err != nil {
					return err
				}
				if filter.Matches(&fb) {
					matched = append(matched, &fb)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Update applies the non-nil fields inside a single read-modify-write
// transaction. Missing ids report (false, nil).
func (s *FeedbackStore) Update(ctx context.Context, id string, update types.FeedbackUpdate) (bool, error) {
	found := false
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(feedbackKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get feedback: %w", err)
		}

		var fb types.Feedback
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &fb)
		}); err != nil {
			return err
		}

		if update.Name != nil {
			fb.Name = *update.Name
		}
		if update.Email != nil {
			fb.Email = *update.Email
		}
		if update.Message != nil {
			fb.Message = *update.Message
		}

		data, err := json.Marshal(&fb)
		if err != nil {
			return fmt.Errorf("marshal feedback: %w", err)
		}
		found = true
		return txn.Set(feedbackKey(id), data)
	})
	if err != nil {
		return false, fmt.Errorf("failed to update feedback: %w", err)
	}
	return found, nil
}

// Delete removes a record, reporting whether it existed.
func (s *FeedbackStore) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(feedbackKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get feedback: %w", err)
		}
		found = true
		return txn.Delete(feedbackKey(id))
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete feedback: %w", err)
	}
	return found, nil
}

// Ping reports whether the database is usable.
func (s *FeedbackStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}
