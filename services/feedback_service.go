// Package services contains the stateless application services sitting
// between the HTTP handlers and the persistence adapters.
package services

import (
	"context"
	"errors"
	"strconv"
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
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// FeedbackService validates input, derives server-set fields and delegates
// persistence to the configured store. It holds no state beyond the store
// reference and is safe to share across concurrent requests.
type FeedbackService struct {
	store store.FeedbackStore
	log   *zap.SugaredLogger
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(feedbackStore store.FeedbackStore) *FeedbackService {
	return &FeedbackService{
		store: feedbackStore,
		log:   logger.GetLogger(),
	}
}

// Submit validates the submission, assigns id and timestamp, attaches the
// request-derived metadata and persists the record. Validation failures
// happen before any storage call.
func (s *FeedbackService) Submit(ctx context.Context, input types.FeedbackCreate, meta types.RequestMeta) (*types.Feedback, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)

	if name == "" || email == "" || message == "" {
		return nil, apperrors.ValidationFailed("Missing required fields", "name, email and message must be non-empty")
	}

	fb := &types.Feedback{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.store.Create(ctx, fb); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.log.Infow("Feedback submitted",
		"id", fb.ID,
		"email", logger.MaskEmail(fb.Email),
	)
	return fb, nil
}

// List translates the raw query parameters into a filter and pagination,
// then delegates to the store. Unparseable dates are a validation error;
// out-of-range page/limit values are clamped.
func (s *FeedbackService) List(ctx context.Context, query types.ListFeedbackQuery) (*types.FeedbackPage, error) {
	page := types.Pagination{
		Page:  clampInt(query.Page, defaultPage, 1, 0),
		Limit: clampInt(query.Limit, defaultLimit, 1, maxLimit),
	}

	filter := types.FeedbackFilter{
		Search: strings.TrimSpace(query.Search),
	}

	var err error
	if filter.DateFrom, err = parseDate(query.DateFrom); err != nil {
		return nil, apperrors.ValidationFailed("Invalid dateFrom", err.Error())
	}
	if filter.DateTo, err = parseDate(query.DateTo); err != nil {
		return nil, apperrors.ValidationFailed("Invalid dateTo", err.Error())
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, apperrors.ValidationFailed("Invalid date range", "dateFrom must not be after dateTo")
	}

	items, total, err := s.store.List(ctx, filter, page)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	if items == nil {
		items = []*types.Feedback{}
	}

	return &types.FeedbackPage{
		Items:      items,
		Total:      total,
		TotalPages: page.TotalPages(total),
		Page:       page.Page,
		Limit:      page.Limit,
	}, nil
}

// Patch applies a partial update and returns the updated record. An update
// carrying no recognized field is rejected before any storage call, for
// every id including non-existent ones.
func (s *FeedbackService) Patch(ctx context.Context, id string, update types.FeedbackUpdate) (*types.Feedback, error) {
	if update.IsEmpty() {
		return nil, apperrors.ValidationFailed("Nothing to update", "at least one of name, email, message is required")
	}

	found, err := s.store.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, store.ErrUnsupported) {
			return nil, apperrors.Unsupported("update")
		}
		return nil, apperrors.NewStorageError(err)
	}
	if !found {
		return nil, apperrors.NotFound("Feedback", id)
	}

	fb, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Feedback", id)
		}
		return nil, apperrors.NewStorageError(err)
	}
	return fb, nil
}

// Remove deletes a record, failing with NotFound when the store reports no
// match.
func (s *FeedbackService) Remove(ctx context.Context, id string) error {
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUnsupported) {
			return apperrors.Unsupported("delete")
		}
		return apperrors.NewStorageError(err)
	}
	if !found {
		return apperrors.NotFound("Feedback", id)
	}
	return nil
}

// clampInt parses s, falling back to def when empty or unparseable, then
// clamps to [min, max]. max <= 0 means no upper bound.
func clampInt(s string, def, min, max int) int {
	n := def
	if s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			n = parsed
		}
	}
	if n < min {
		n = min
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}

// parseDate accepts RFC 3339 timestamps or bare dates (2006-01-02, as sent
// by HTML date inputs). Bare dates are interpreted as midnight UTC.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, errors.New("expected RFC 3339 timestamp or YYYY-MM-DD date")
	}
	t = t.UTC()
	return &t, nil
}
