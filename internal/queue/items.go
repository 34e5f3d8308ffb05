package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const itemColumns = `id, spec_path, name, status, frame_count, loops, skip_first,
	error_message, run_id, created_at, updated_at`

// ErrDuplicateSpec indicates the spec file is already queued.
var ErrDuplicateSpec = errors.New("spec already queued")

// Add enqueues a spec file for batch processing. The path is stored as given;
// callers should pass absolute paths so items stay meaningful across working
// directories.
func (s *Store) Add(ctx context.Context, specPath string) (*Item, error) {
	specPath = strings.TrimSpace(specPath)
	if specPath == "" {
		return nil, errors.New("spec path is required")
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO build_items (spec_path, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		specPath,
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpec, specPath)
		}
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches an item by identifier. Returns nil when no item exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+itemColumns+` FROM build_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns all items in insertion order.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM build_items ORDER BY id`)
}

// ListByStatus returns items with the given status in insertion order.
func (s *Store) ListByStatus(ctx context.Context, status Status) ([]*Item, error) {
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM build_items WHERE status = ? ORDER BY id`, status)
}

// NextPending returns the oldest pending item, or nil when none remain.
func (s *Store) NextPending(ctx context.Context) (*Item, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+itemColumns+` FROM build_items WHERE status = ? ORDER BY id LIMIT 1`, StatusPending)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next pending: %w", err)
	}
	return item, nil
}

// MarkLoading transitions an item into the loading state for the given run.
func (s *Store) MarkLoading(ctx context.Context, id int64, runID string) error {
	return s.updateStatus(ctx, id, StatusLoading, func(item *Item) {
		item.RunID = runID
		item.ErrorMessage = ""
	})
}

// MarkLoaded records a successful load outcome.
func (s *Store) MarkLoaded(ctx context.Context, id int64, name string, frameCount int, loops uint, skipFirst bool) error {
	return s.updateStatus(ctx, id, StatusLoaded, func(item *Item) {
		item.Name = name
		item.FrameCount = frameCount
		item.Loops = loops
		item.SkipFirst = skipFirst
		item.ErrorMessage = ""
	})
}

// MarkFailed records a failed load with its diagnostic message.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) error {
	return s.updateStatus(ctx, id, StatusFailed, func(item *Item) {
		item.ErrorMessage = message
	})
}

// Retry resets a failed item back to pending so the next run picks it up.
func (s *Store) Retry(ctx context.Context, id int64) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %d not found", id)
	}
	if item.Status != StatusFailed {
		return fmt.Errorf("item %d is %s, only failed items can be retried", id, item.Status)
	}
	item.Status = StatusPending
	item.ErrorMessage = ""
	item.RunID = ""
	return s.Update(ctx, item)
}

// Update persists every mutable field of an item.
func (s *Store) Update(ctx context.Context, item *Item) error {
	if item == nil {
		return errors.New("item is required")
	}
	item.UpdatedAt = time.Now().UTC()
	_, err := s.execWithRetry(
		ctx,
		`UPDATE build_items SET
			spec_path = ?, name = ?, status = ?, frame_count = ?, loops = ?,
			skip_first = ?, error_message = ?, run_id = ?, updated_at = ?
		 WHERE id = ?`,
		item.SpecPath,
		item.Name,
		item.Status,
		item.FrameCount,
		int64(item.Loops),
		boolToInt(item.SkipFirst),
		item.ErrorMessage,
		item.RunID,
		item.UpdatedAt.Format(time.RFC3339Nano),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Remove deletes one item by identifier.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM build_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d not found", id)
	}
	return nil
}

// Clear deletes items with the given statuses; with none given it deletes
// everything. It returns the number of removed items.
func (s *Store) Clear(ctx context.Context, statuses ...Status) (int64, error) {
	query := `DELETE FROM build_items`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}

	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear items: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Health returns aggregated item counts per lifecycle state.
func (s *Store) Health(ctx context.Context) (HealthSummary, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT status, COUNT(1) FROM build_items GROUP BY status`)
	if err != nil {
		return HealthSummary{}, fmt.Errorf("health query: %w", err)
	}
	defer rows.Close()

	var summary HealthSummary
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return HealthSummary{}, fmt.Errorf("scan health row: %w", err)
		}
		summary.Total += count
		switch status {
		case StatusPending:
			summary.Pending = count
		case StatusLoading:
			summary.Loading = count
		case StatusLoaded:
			summary.Loaded = count
		case StatusFailed:
			summary.Failed = count
		}
	}
	return summary, rows.Err()
}

func (s *Store) updateStatus(ctx context.Context, id int64, status Status, mutate func(*Item)) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %d not found", id)
	}
	item.Status = status
	if mutate != nil {
		mutate(item)
	}
	return s.Update(ctx, item)
}

func (s *Store) queryItems(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item      Item
		loops     int64
		skipFirst int64
		created   string
		updated   string
	)
	err := row.Scan(
		&item.ID,
		&item.SpecPath,
		&item.Name,
		&item.Status,
		&item.FrameCount,
		&loops,
		&skipFirst,
		&item.ErrorMessage,
		&item.RunID,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}
	item.Loops = uint(loops)
	item.SkipFirst = skipFirst != 0
	if item.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &item, nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
