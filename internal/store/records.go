package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nosakar/vocab-app/internal/vocab"
)

// ReviewEntry is a word queued for re-study after being answered wrong.
// At most one entry exists per word ID; re-adding replaces AddedAt.
type ReviewEntry struct {
	Word    vocab.Word
	AddedAt time.Time
}

// FlagEntry is a word the learner explicitly marked as of interest,
// independent of correctness history.
type FlagEntry struct {
	Word      vocab.Word
	FlaggedAt time.Time
}

// RecordStore is the persistence contract for the review and flagged
// collections. The two collections are fully independent.
type RecordStore interface {
	UpsertReview(ctx context.Context, w vocab.Word) error
	DeleteReview(ctx context.Context, id string) error
	ListReviewWords(ctx context.Context) ([]vocab.Word, error)
	ListReviewEntries(ctx context.Context) ([]ReviewEntry, error)
	HasReview(ctx context.Context, id string) (bool, error)
	ClearReview(ctx context.Context) error

	UpsertFlag(ctx context.Context, w vocab.Word) error
	DeleteFlag(ctx context.Context, id string) error
	ListFlagWords(ctx context.Context) ([]vocab.Word, error)
	ListFlagIDs(ctx context.Context) ([]string, error)
	HasFlag(ctx context.Context, id string) (bool, error)
	ClearFlag(ctx context.Context) error
}

// UpsertReview inserts or replaces the review entry for w.ID, stamping it
// with the current time.
func (s *Store) UpsertReview(ctx context.Context, w vocab.Word) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO review (id, front, back, added_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET front=excluded.front, back=excluded.back, added_at=excluded.added_at`,
		w.ID, w.Front, w.Back, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert review %q: %w", w.ID, err)
	}
	return nil
}

// DeleteReview removes the entry if present. Absent IDs are a no-op.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM review WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete review %q: %w", id, err)
	}
	return nil
}

// ListReviewWords returns the words currently under review.
func (s *Store) ListReviewWords(ctx context.Context) ([]vocab.Word, error) {
	entries, err := s.ListReviewEntries(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]vocab.Word, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words, nil
}

// ListReviewEntries returns review entries with their timestamps, used by
// the reminder scheduler.
func (s *Store) ListReviewEntries(ctx context.Context) ([]ReviewEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, front, back, added_at FROM review ORDER BY added_at, id")
	if err != nil {
		return nil, fmt.Errorf("list review: %w", err)
	}
	defer rows.Close()

	var entries []ReviewEntry
	for rows.Next() {
		var e ReviewEntry
		var added int64
		if err := rows.Scan(&e.Word.ID, &e.Word.Front, &e.Word.Back, &added); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		e.AddedAt = time.UnixMilli(added)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list review: %w", err)
	}
	return entries, nil
}

// HasReview reports whether id is currently in the review collection.
func (s *Store) HasReview(ctx context.Context, id string) (bool, error) {
	return s.hasRow(ctx, "review", id)
}

// ClearReview removes all review entries.
func (s *Store) ClearReview(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM review"); err != nil {
		return fmt.Errorf("clear review: %w", err)
	}
	return nil
}

// UpsertFlag inserts or replaces the flag entry for w.ID.
func (s *Store) UpsertFlag(ctx context.Context, w vocab.Word) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO flagged (id, front, back, flagged_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET front=excluded.front, back=excluded.back, flagged_at=excluded.flagged_at`,
		w.ID, w.Front, w.Back, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert flag %q: %w", w.ID, err)
	}
	return nil
}

// DeleteFlag removes the flag entry if present. Absent IDs are a no-op.
func (s *Store) DeleteFlag(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM flagged WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete flag %q: %w", id, err)
	}
	return nil
}

// ListFlagWords returns the flagged words.
func (s *Store) ListFlagWords(ctx context.Context) ([]vocab.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, front, back FROM flagged ORDER BY flagged_at, id")
	if err != nil {
		return nil, fmt.Errorf("list flagged: %w", err)
	}
	defer rows.Close()

	var words []vocab.Word
	for rows.Next() {
		var w vocab.Word
		if err := rows.Scan(&w.ID, &w.Front, &w.Back); err != nil {
			return nil, fmt.Errorf("scan flagged row: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flagged: %w", err)
	}
	return words, nil
}

// ListFlagIDs returns only identifiers, for cheap membership checks.
func (s *Store) ListFlagIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM flagged ORDER BY flagged_at, id")
	if err != nil {
		return nil, fmt.Errorf("list flag ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan flag id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flag ids: %w", err)
	}
	return ids, nil
}

// HasFlag reports whether id is currently flagged.
func (s *Store) HasFlag(ctx context.Context, id string) (bool, error) {
	return s.hasRow(ctx, "flagged", id)
}

// ClearFlag removes all flag entries.
func (s *Store) ClearFlag(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM flagged"); err != nil {
		return fmt.Errorf("clear flagged: %w", err)
	}
	return nil
}

func (s *Store) hasRow(ctx context.Context, table, id string) (bool, error) {
	// table is one of the two fixed collection names, never user input.
	var one int
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", table), id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s %q: %w", table, id, err)
	}
	return true, nil
}
