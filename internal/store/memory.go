package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nosakar/vocab-app/internal/vocab"
)

// Memory is an in-memory RecordStore. It backs the degraded mode used when
// the SQLite store cannot be opened, and doubles as a test fake. Nothing
// survives the process.
type Memory struct {
	mu      sync.RWMutex
	review  map[string]ReviewEntry
	flagged map[string]FlagEntry
	now     func() time.Time
}

var _ RecordStore = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		review:  make(map[string]ReviewEntry),
		flagged: make(map[string]FlagEntry),
		now:     time.Now,
	}
}

// SetClock overrides the timestamp source. Test use only.
func (m *Memory) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Memory) UpsertReview(_ context.Context, w vocab.Word) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.review[w.ID] = ReviewEntry{Word: w, AddedAt: m.now()}
	return nil
}

func (m *Memory) DeleteReview(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.review, id)
	return nil
}

func (m *Memory) ListReviewWords(ctx context.Context) ([]vocab.Word, error) {
	entries, _ := m.ListReviewEntries(ctx)
	words := make([]vocab.Word, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words, nil
}

func (m *Memory) ListReviewEntries(_ context.Context) ([]ReviewEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]ReviewEntry, 0, len(m.review))
	for _, e := range m.review {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].AddedAt.Before(entries[j].AddedAt)
		}
		return entries[i].Word.ID < entries[j].Word.ID
	})
	return entries, nil
}

func (m *Memory) HasReview(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.review[id]
	return ok, nil
}

func (m *Memory) ClearReview(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.review = make(map[string]ReviewEntry)
	return nil
}

func (m *Memory) UpsertFlag(_ context.Context, w vocab.Word) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flagged[w.ID] = FlagEntry{Word: w, FlaggedAt: m.now()}
	return nil
}

func (m *Memory) DeleteFlag(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flagged, id)
	return nil
}

func (m *Memory) ListFlagWords(_ context.Context) ([]vocab.Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]FlagEntry, 0, len(m.flagged))
	for _, e := range m.flagged {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].FlaggedAt.Equal(entries[j].FlaggedAt) {
			return entries[i].FlaggedAt.Before(entries[j].FlaggedAt)
		}
		return entries[i].Word.ID < entries[j].Word.ID
	})
	words := make([]vocab.Word, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words, nil
}

func (m *Memory) ListFlagIDs(ctx context.Context) ([]string, error) {
	words, _ := m.ListFlagWords(ctx)
	ids := make([]string, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	return ids, nil
}

func (m *Memory) HasFlag(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.flagged[id]
	return ok, nil
}

func (m *Memory) ClearFlag(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flagged = make(map[string]FlagEntry)
	return nil
}
