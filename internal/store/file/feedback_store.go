// Package file implements the feedback store as an append-only JSONL file.
// This is the degraded backend: inserts append one JSON line per record,
// listing is a full scan with in-process filtering, and Update/Delete return
// store.ErrUnsupported. A mutex serializes appends so concurrent submissions
// never interleave partial lines.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/feedbackform/feedback-backend/internal/store"
	"github.com/feedbackform/feedback-backend/types"
)

var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements store.FeedbackStore on a JSONL file.
type FeedbackStore struct {
	path string
	mu   sync.Mutex
}

// NewFeedbackStore creates the store, ensuring the parent directory exists.
func NewFeedbackStore(path string) (*FeedbackStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return &FeedbackStore{path: path}, nil
}

// Create appends one JSON line under the writer lock.
func (s *FeedbackStore) Create(ctx context.Context, fb *types.Feedback) (string, error) {
	data, err := json.Marshal(fb)
	if err != nil {
		return "", fmt.Errorf("marshal feedback: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("failed to append feedback: %w", err)
	}
	return fb.ID, nil
}

// Get scans the file for the record with the given id.
func (s *FeedbackStore) Get(ctx context.Context, id string) (*types.Feedback, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, fb := range records {
		if fb.ID == id {
			return fb, nil
		}
	}
	return nil, store.ErrNotFound
}

// List loads the whole file and performs the filter/sort/paginate logic in
// the adapter.
func (s *FeedbackStore) List(ctx context.Context, filter types.FeedbackFilter, page types.Pagination) ([]*types.Feedback, int, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, 0, err
	}

	matched := records[:0:0]
	for _, fb := range records {
		if filter.Matches(fb) {
			matched = append(matched, fb)
		}
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

// Update is not supported by the append-only backend.
func (s *FeedbackStore) Update(ctx context.Context, id string, update types.FeedbackUpdate) (bool, error) {
	return false, store.ErrUnsupported
}

// Delete is not supported by the append-only backend.
func (s *FeedbackStore) Delete(ctx context.Context, id string) (bool, error) {
	return false, store.ErrUnsupported
}

// Ping reports whether the data directory is accessible.
func (s *FeedbackStore) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

func (s *FeedbackStore) readAll() ([]*types.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer f.Close()

	var records []*types.Feedback
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		fb := &types.Feedback{}
		if err := json.Unmarshal(line, fb); err != nil {
			return nil, fmt.Errorf("corrupt feedback line: %w", err)
		}
		records = append(records, fb)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback file: %w", err)
	}
	return records, nil
}
