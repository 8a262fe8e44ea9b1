// Package reminder computes and arms spaced-repetition reminders from the
// review collection.
package reminder

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/vocab"
)

// Ladder is the fixed set of day offsets from a review entry's creation
// time at which reminders fire.
var Ladder = []int{1, 3, 7, 28}

// ArmedReminder is one future reminder for one word.
type ArmedReminder struct {
	Word   vocab.Word
	FireAt time.Time
}

// Schedule derives the full reminder set from the current review entries:
// one reminder per entry per ladder offset, keeping only those strictly in
// the future. Past-due offsets are dropped, not fired late. The set is
// re-derived from scratch on every call; nothing tracks which reminders
// already fired, so delivery is at-least-once across restarts.
func Schedule(entries []store.ReviewEntry, now time.Time) []ArmedReminder {
	var armed []ArmedReminder
	for _, e := range entries {
		for _, days := range Ladder {
			fireAt := e.AddedAt.AddDate(0, 0, days)
			if fireAt.After(now) {
				armed = append(armed, ArmedReminder{Word: e.Word, FireAt: fireAt})
			}
		}
	}
	sort.Slice(armed, func(i, j int) bool {
		if !armed[i].FireAt.Equal(armed[j].FireAt) {
			return armed[i].FireAt.Before(armed[j].FireAt)
		}
		return armed[i].Word.ID < armed[j].Word.ID
	})
	return armed
}

// ReviewChecker is the read-only store surface needed at fire time.
type ReviewChecker interface {
	HasReview(ctx context.Context, id string) (bool, error)
}

// Armer owns the live timers for a set of scheduled reminders. Timers are
// fire-once; cancelling the context stops everything still pending.
type Armer struct {
	checker  ReviewChecker
	notifier Notifier
	wg       sync.WaitGroup
}

// NewArmer builds an Armer delivering through notifier, re-validating
// entries against checker at fire time.
func NewArmer(checker ReviewChecker, notifier Notifier) *Armer {
	return &Armer{checker: checker, notifier: notifier}
}

// Arm starts one timer per reminder. Returns immediately; use Wait to block
// until every timer has fired or been cancelled.
func (a *Armer) Arm(ctx context.Context, reminders []ArmedReminder) {
	for _, r := range reminders {
		a.wg.Add(1)
		go a.fire(ctx, r)
	}
}

// Wait blocks until all armed timers are done.
func (a *Armer) Wait() {
	a.wg.Wait()
}

// fire sleeps until the reminder is due, then delivers it unless the
// underlying review entry was removed in the meantime.
func (a *Armer) fire(ctx context.Context, r ArmedReminder) {
	defer a.wg.Done()

	timer := time.NewTimer(time.Until(r.FireAt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	present, err := a.checker.HasReview(ctx, r.Word.ID)
	if err != nil {
		slog.Warn("reminder revalidation failed", "id", r.Word.ID, "err", err)
		return
	}
	if !present {
		// The word graduated out of the review queue before the timer fired.
		return
	}

	if err := a.notifier.Notify("Time to review!", r.Word.Front+" — "+r.Word.Back); err != nil {
		slog.Warn("reminder delivery failed", "id", r.Word.ID, "err", err)
	}
}
