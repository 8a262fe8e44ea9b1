package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/vocab"
)

// ErrEmptyQueue rejects launching a queue-backed session with no entries.
// Surfaced to the learner before any session is constructed.
var ErrEmptyQueue = errors.New("queue is empty")

// DefaultBatchSize matches the home screen's initial question count.
const DefaultBatchSize = 10

// BatchSizes are the question count presets offered on the home screen.
var BatchSizes = []int{5, 10, 15, 20}

// Chunks partitions words into contiguous batches of batchSize; the last
// chunk may be shorter. batchSize <= 0 yields the whole list as one chunk.
func Chunks(words []vocab.Word, batchSize int) [][]vocab.Word {
	if len(words) == 0 {
		return nil
	}
	if batchSize <= 0 {
		return [][]vocab.Word{words}
	}
	var chunks [][]vocab.Word
	for start := 0; start < len(words); start += batchSize {
		end := start + batchSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, words[start:end])
	}
	return chunks
}

// QueueWords loads the question sequence for a queue-backed mode verbatim
// from the store. Batch size does not apply to queues.
func QueueWords(ctx context.Context, records store.RecordStore, mode Mode) ([]vocab.Word, error) {
	var (
		words []vocab.Word
		err   error
	)
	switch mode {
	case ModeReviewQueue:
		words, err = records.ListReviewWords(ctx)
	case ModeFlaggedQueue:
		words, err = records.ListFlagWords(ctx)
	default:
		return nil, fmt.Errorf("mode %s is not queue-backed", mode)
	}
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyQueue
	}
	return words, nil
}
