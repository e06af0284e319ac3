package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackform/feedback-backend/internal/store"
	"github.com/feedbackform/feedback-backend/types"
)

func newTestStore(t *testing.T) *FeedbackStore {
	t.Helper()
	s, err := NewFeedbackStore(filepath.Join(t.TempDir(), "data", "feedback.jsonl"))
	require.NoError(t, err)
	return s
}

func TestFeedbackStore_CreateGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := s.Create(ctx, &types.Feedback{
		ID: "fb-1", Name: "Ann", Email: "ann@example.com", Message: "hello", CreatedAt: now,
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.True(t, got.CreatedAt.Equal(now))

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFeedbackStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, &types.Feedback{
			ID:        fmt.Sprintf("fb-%d", i),
			Name:      fmt.Sprintf("User %d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			Message:   fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	t.Run("newest first", func(t *testing.T) {
		items, total, err := s.List(ctx, types.FeedbackFilter{}, types.Pagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 3)
		assert.Equal(t, "fb-2", items[0].ID)
	})

	t.Run("search filters", func(t *testing.T) {
		items, total, err := s.List(ctx, types.FeedbackFilter{Search: "user1"}, types.Pagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "fb-1", items[0].ID)
	})

	t.Run("empty file lists nothing", func(t *testing.T) {
		fresh := newTestStore(t)
		items, total, err := fresh.List(ctx, types.FeedbackFilter{}, types.Pagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, items)
	})
}

func TestFeedbackStore_MutationsUnsupported(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	name := "x"

	_, err := s.Update(ctx, "any", types.FeedbackUpdate{Name: &name})
	assert.ErrorIs(t, err, store.ErrUnsupported)

	_, err = s.Delete(ctx, "any")
	assert.ErrorIs(t, err, store.ErrUnsupported)
}

func TestFeedbackStore_ConcurrentCreates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := s.Create(ctx, &types.Feedback{
				ID:        fmt.Sprintf("fb-%02d", i),
				Name:      "User",
				Email:     "user@example.com",
				Message:   "hello",
				CreatedAt: time.Now().UTC(),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	_, total, err := s.List(ctx, types.FeedbackFilter{}, types.Pagination{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, n, total, "no appends may be lost or interleaved")
}

func TestFeedbackStore_Ping(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
