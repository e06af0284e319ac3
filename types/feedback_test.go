package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fb(name, email, message string, createdAt time.Time) *Feedback {
	return &Feedback{Name: name, Email: email, Message: message, CreatedAt: createdAt}
}

func TestFeedbackFilter_Matches(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	record := fb("Ann", "a@x.com", "hello world", now)

	t.Run("empty filter matches everything", func(t *testing.T) {
		f := FeedbackFilter{}
		assert.True(t, f.Matches(record))
	})

	t.Run("search is case-insensitive across all three fields", func(t *testing.T) {
		assert.True(t, (&FeedbackFilter{Search: "ANN"}).Matches(record))
		assert.True(t, (&FeedbackFilter{Search: "A@X"}).Matches(record))
		assert.True(t, (&FeedbackFilter{Search: "WORLD"}).Matches(record))
		assert.False(t, (&FeedbackFilter{Search: "zzz"}).Matches(record))
	})

	t.Run("date bounds are inclusive", func(t *testing.T) {
		from := now
		to := now
		f := FeedbackFilter{DateFrom: &from, DateTo: &to}
		assert.True(t, f.Matches(record))

		before := now.Add(-time.Second)
		f = FeedbackFilter{DateTo: &before}
		assert.False(t, f.Matches(record))

		after := now.Add(time.Second)
		f = FeedbackFilter{DateFrom: &after}
		assert.False(t, f.Matches(record))
	})
}

func TestPagination(t *testing.T) {
	t.Run("offset", func(t *testing.T) {
		assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
		assert.Equal(t, 20, Pagination{Page: 3, Limit: 10}.Offset())
	})

	t.Run("total pages", func(t *testing.T) {
		p := Pagination{Page: 1, Limit: 10}
		assert.Equal(t, 0, p.TotalPages(0))
		assert.Equal(t, 1, p.TotalPages(1))
		assert.Equal(t, 1, p.TotalPages(10))
		assert.Equal(t, 3, p.TotalPages(25))
	})
}

func TestFeedbackUpdate_IsEmpty(t *testing.T) {
	assert.True(t, (&FeedbackUpdate{}).IsEmpty())

	name := "Bob"
	assert.False(t, (&FeedbackUpdate{Name: &name}).IsEmpty())
}
