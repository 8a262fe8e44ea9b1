package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/nosakar/vocab-app/internal/vocab"
)

func wordPool(n int) []vocab.Word {
	pool := make([]vocab.Word, n)
	for i := range pool {
		pool[i] = vocab.Word{
			ID:    fmt.Sprintf("w%d", i),
			Front: fmt.Sprintf("front%d", i),
			Back:  fmt.Sprintf("back%d", i),
		}
	}
	return pool
}

func TestChoices_SizeAndMembership(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pool := wordPool(20)
	correct := pool[0]

	out := Choices(rnd, correct, pool, DefaultChoiceCount)
	if len(out) != DefaultChoiceCount {
		t.Fatalf("len = %d, want %d", len(out), DefaultChoiceCount)
	}

	seen := make(map[string]int)
	for _, w := range out {
		seen[w.ID]++
	}
	if seen[correct.ID] != 1 {
		t.Errorf("correct answer appears %d times, want exactly 1", seen[correct.ID])
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %s appears %d times", id, n)
		}
	}
}

func TestChoices_DegeneratePools(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	correct := vocab.Word{ID: "c", Front: "f", Back: "b"}

	tests := []struct {
		name string
		pool []vocab.Word
		want int
	}{
		{"empty pool", nil, 1},
		{"pool of only correct", []vocab.Word{correct}, 1},
		{"one distractor", wordPool(1), 2},
		{"two distractors", wordPool(2), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Choices(rnd, correct, tt.pool, DefaultChoiceCount)
			if len(out) != tt.want {
				t.Errorf("len = %d, want %d", len(out), tt.want)
			}
			found := 0
			for _, w := range out {
				if w.ID == correct.ID {
					found++
				}
			}
			if found != 1 {
				t.Errorf("correct appears %d times, want 1", found)
			}
		})
	}
}

func TestChoices_DuplicatePoolEntriesDropped(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	correct := vocab.Word{ID: "c"}
	dup := vocab.Word{ID: "d", Front: "x"}
	pool := []vocab.Word{dup, dup, dup, correct}

	out := Choices(rnd, correct, pool, DefaultChoiceCount)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2 (correct + one distinct distractor)", len(out))
	}
}

func TestChoices_OrderVaries(t *testing.T) {
	pool := wordPool(10)
	correct := pool[0]

	// Across many seeds the correct answer must not always land in the
	// same slot.
	positions := make(map[int]bool)
	for seed := int64(0); seed < 50; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		out := Choices(rnd, correct, pool, DefaultChoiceCount)
		for i, w := range out {
			if w.ID == correct.ID {
				positions[i] = true
			}
		}
	}
	if len(positions) < 2 {
		t.Errorf("correct answer always at the same position: %v", positions)
	}
}
