// Package quiz implements the drill session state machine, answer option
// generation and session launching.
package quiz

import (
	"math/rand"

	"github.com/nosakar/vocab-app/internal/vocab"
)

// DefaultChoiceCount is the answer option count for pick formats.
const DefaultChoiceCount = 4

// Choices builds a randomized answer option set for correct: up to size-1
// distractors drawn from pool without replacement, plus correct itself,
// shuffled. Pool entries sharing correct's ID or repeating an ID are
// dropped, so correct appears exactly once and no ID repeats. Pools with
// fewer than size-1 distinct distractors yield a shorter set.
func Choices(rnd *rand.Rand, correct vocab.Word, pool []vocab.Word, size int) []vocab.Word {
	seen := map[string]bool{correct.ID: true}
	var distractors []vocab.Word
	for _, w := range pool {
		if w.ID == "" || seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		distractors = append(distractors, w)
	}

	rnd.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})

	n := size - 1
	if n > len(distractors) {
		n = len(distractors)
	}
	if n < 0 {
		n = 0
	}

	out := make([]vocab.Word, 0, n+1)
	out = append(out, correct)
	out = append(out, distractors[:n]...)
	rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
