// Package postgres implements the store interfaces on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedbackform/feedback-backend/internal/store"
	"github.com/feedbackform/feedback-backend/types"
)

// querier is the subset of pgxpool.Pool used by the stores. pgxmock satisfies
// it, which keeps the stores testable without a live database.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Ensure FeedbackStore implements store.FeedbackStore.
var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements store.FeedbackStore using PostgreSQL.
type FeedbackStore struct {
	db querier
}

// NewFeedbackStore creates a feedback store backed by a pgx pool.
func NewFeedbackStore(pool *pgxpool.Pool) *FeedbackStore {
	return &FeedbackStore{db: pool}
}

const feedbackColumns = "id, name, email, message, COALESCE(ip, ''), COALESCE(user_agent, ''), created_at"

// Create inserts a fully-formed feedback record. The caller has already
// assigned the id and created_at.
func (s *FeedbackStore) Create(ctx context.Context, fb *types.Feedback) (string, error) {
	_, err := s.db.Exec(ctx,
		`INSERT INTO feedback (id, name, email, message, ip, user_agent, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)`,
		fb.ID, fb.Name, fb.Email, fb.Message, fb.IP, fb.UserAgent, fb.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create feedback: %w", err)
	}
	return fb.ID, nil
}

// Get retrieves a feedback record by id.
func (s *FeedbackStore) Get(ctx context.Context, id string) (*types.Feedback, error) {
	fb := &types.Feedback{}
	row := s.db.QueryRow(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, id)

	err := row.Scan(&fb.ID, &fb.Name, &fb.Email, &fb.Message, &fb.IP, &fb.UserAgent, &fb.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return fb, nil
}

// List returns records matching the filter, newest first, sliced to the
// pagination window, plus the total count under the same filter.
func (s *FeedbackStore) List(ctx context.Context, filter types.FeedbackFilter, page types.Pagination) ([]*types.Feedback, int, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR message ILIKE $%d)", n, n, n))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	whereSQL := ""
	if len(conds) > 0 {
		whereSQL = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	dataArgs := append(args, page.Limit, page.Offset())
	dataSQL := fmt.Sprintf(`SELECT %s FROM feedback%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		feedbackColumns, whereSQL, len(args)+1, len(args)+2)

	rows, err := s.db.Query(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var items []*types.Feedback
	for rows.Next() {
		fb := &types.Feedback{}
		if err := rows.Scan(&fb.ID, &fb.Name, &fb.Email, &fb.Message, &fb.IP, &fb.UserAgent, &fb.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		items = append(items, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update applies the non-nil fields of the update. It reports whether a
// record with the id existed; created_at, ip and user_agent are immutable.
func (s *FeedbackStore) Update(ctx context.Context, id string, update types.FeedbackUpdate) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE feedback
		 SET name = COALESCE($1, name),
		     email = COALESCE($2, email),
		     message = COALESCE($3, message)
		 WHERE id = $4`,
		update.Name, update.Email, update.Message, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update feedback: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a record, reporting whether it existed.
func (s *FeedbackStore) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete feedback: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
