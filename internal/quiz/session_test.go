package quiz

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/vocab"
)

var (
	cat  = vocab.Word{ID: "w1", Front: "cat", Back: "猫"}
	dog  = vocab.Word{ID: "w2", Front: "dog", Back: "犬"}
	bird = vocab.Word{ID: "w3", Front: "bird", Back: "鳥"}
)

func TestSessionID_IdentifiesTheRun(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	first, err := New([]vocab.Word{cat}, ModeNormal, FormatPickTranslation, store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	second, err := New([]vocab.Word{cat}, ModeNormal, FormatPickTranslation, store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}

	if first.ID() == "" {
		t.Fatal("session id is empty")
	}
	if first.ID() == second.ID() {
		t.Fatalf("two runs share id %s", first.ID())
	}
	if !strings.Contains(buf.String(), first.ID()) {
		t.Errorf("start log does not carry the session id %s:\n%s", first.ID(), buf.String())
	}

	buf.Reset()
	if _, err := first.SubmitChoice(t.Context(), dog); err != nil {
		t.Fatal(err)
	}
	first.Advance()
	if err := first.CommitWrongAnswers(t.Context()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), first.ID()) {
		t.Errorf("commit log does not carry the session id %s:\n%s", first.ID(), buf.String())
	}
}

func TestNew_RejectsEmptyQuestions(t *testing.T) {
	if _, err := New(nil, ModeNormal, FormatPickTranslation, store.NewMemory()); err != ErrNoQuestions {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestSubmitChoice_DoubleSubmitIsNoop(t *testing.T) {
	records := store.NewMemory()
	sess, err := New([]vocab.Word{cat, dog}, ModeNormal, FormatPickTranslation, records)
	if err != nil {
		t.Fatal(err)
	}
	ctx := t.Context()

	correct, err := sess.SubmitChoice(ctx, cat)
	if err != nil || !correct {
		t.Fatalf("first submit = %v, %v; want true, nil", correct, err)
	}
	if sess.Score() != 1 {
		t.Fatalf("score = %d, want 1", sess.Score())
	}

	// A second keypress before the settle delay elapses must change nothing.
	correct, err = sess.SubmitChoice(ctx, dog)
	if err != nil || !correct {
		t.Fatalf("second submit = %v, %v; want reported outcome of first", correct, err)
	}
	if sess.Score() != 1 {
		t.Errorf("double submit changed score: %d", sess.Score())
	}
	if sess.ChosenID() != cat.ID {
		t.Errorf("double submit changed chosen id: %s", sess.ChosenID())
	}
}

func TestSubmitTyped_Normalization(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"cat", true},
		{"  cat  ", true},
		{"CAT", true},
		{"Cat", true},
		{"cta", false},
		{"catt", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sess, err := New([]vocab.Word{cat}, ModeNormal, FormatTypeSource, store.NewMemory())
			if err != nil {
				t.Fatal(err)
			}
			got, err := sess.SubmitTyped(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("SubmitTyped: %v", err)
			}
			if got != tt.want {
				t.Errorf("SubmitTyped(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubmitTyped_RejectedInPickFormats(t *testing.T) {
	sess, err := New([]vocab.Word{cat}, ModeNormal, FormatPickTranslation, store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sess.SubmitTyped(t.Context(), "cat"); err == nil {
		t.Fatal("expected error submitting typed answer in a pick format")
	}
}

func TestResolve_ReviewQueueDeleteOnlyOnCorrect(t *testing.T) {
	ctx := t.Context()
	records := store.NewMemory()
	for _, w := range []vocab.Word{cat, dog} {
		if err := records.UpsertReview(ctx, w); err != nil {
			t.Fatal(err)
		}
	}

	sess, err := New([]vocab.Word{cat, dog}, ModeReviewQueue, FormatPickTranslation, records)
	if err != nil {
		t.Fatal(err)
	}

	// Wrong answer: cat stays in the queue.
	if _, err := sess.SubmitChoice(ctx, dog); err != nil {
		t.Fatal(err)
	}
	if ok, _ := records.HasReview(ctx, cat.ID); !ok {
		t.Error("wrong answer removed the word from the review queue")
	}
	sess.Advance()

	// Correct answer: dog leaves the queue.
	if _, err := sess.SubmitChoice(ctx, dog); err != nil {
		t.Fatal(err)
	}
	if ok, _ := records.HasReview(ctx, dog.ID); ok {
		t.Error("correct answer in review mode did not remove the word")
	}
}

func TestResolve_OtherModesNeverDelete(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModeFlaggedQueue} {
		t.Run(mode.String(), func(t *testing.T) {
			ctx := t.Context()
			records := store.NewMemory()
			if err := records.UpsertReview(ctx, cat); err != nil {
				t.Fatal(err)
			}

			sess, err := New([]vocab.Word{cat}, mode, FormatPickTranslation, records)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := sess.SubmitChoice(ctx, cat); err != nil {
				t.Fatal(err)
			}
			if ok, _ := records.HasReview(ctx, cat.ID); !ok {
				t.Errorf("correct answer in %s mode removed a review entry", mode)
			}
		})
	}
}

func TestWrongLog_KeepsDuplicates(t *testing.T) {
	ctx := t.Context()
	sess, err := New([]vocab.Word{cat, cat, dog}, ModeNormal, FormatPickTranslation, store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := sess.SubmitChoice(ctx, bird); err != nil {
			t.Fatal(err)
		}
		sess.Advance()
	}
	if !sess.Completed() {
		t.Fatal("session should be completed")
	}

	summary := sess.Summary()
	if len(summary.WrongWords) != 3 {
		t.Fatalf("wrong log has %d entries, want 3 (duplicates kept)", len(summary.WrongWords))
	}
	if summary.Correct != 0 || summary.Total != 3 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestToggleFlag(t *testing.T) {
	ctx := t.Context()
	records := store.NewMemory()
	sess, err := New([]vocab.Word{cat}, ModeNormal, FormatPickTranslation, records)
	if err != nil {
		t.Fatal(err)
	}

	flagged, err := sess.ToggleFlag(ctx)
	if err != nil || !flagged {
		t.Fatalf("first toggle = %v, %v; want true, nil", flagged, err)
	}
	if ok, _ := records.HasFlag(ctx, cat.ID); !ok {
		t.Error("flag not persisted")
	}

	flagged, err = sess.ToggleFlag(ctx)
	if err != nil || flagged {
		t.Fatalf("second toggle = %v, %v; want false, nil", flagged, err)
	}
	if ok, _ := records.HasFlag(ctx, cat.ID); ok {
		t.Error("flag not removed")
	}
}

func TestAdvance_BeforeResolutionIsNoop(t *testing.T) {
	sess, err := New([]vocab.Word{cat, dog}, ModeNormal, FormatPickTranslation, store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	sess.Advance()
	if sess.Index() != 0 {
		t.Errorf("advance before resolution moved the index to %d", sess.Index())
	}
}

// openSQLiteStore gives the end-to-end flows a real database.
func openSQLiteStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEndToEnd_NormalRun(t *testing.T) {
	ctx := t.Context()
	records := openSQLiteStore(t)

	sess, err := New([]vocab.Word{cat, dog}, ModeNormal, FormatPickTranslation, records)
	if err != nil {
		t.Fatal(err)
	}

	// First question right, second wrong.
	if correct, _ := sess.SubmitChoice(ctx, cat); !correct {
		t.Fatal("expected first answer correct")
	}
	sess.Advance()
	if correct, _ := sess.SubmitChoice(ctx, cat); correct {
		t.Fatal("expected second answer wrong")
	}
	sess.Advance()

	if !sess.Completed() {
		t.Fatal("session should be completed")
	}
	summary := sess.Summary()
	if summary.Correct != 1 || summary.Total != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.WrongWords) != 1 || summary.WrongWords[0].ID != dog.ID {
		t.Fatalf("wrong words = %+v", summary.WrongWords)
	}

	if err := sess.CommitWrongAnswers(ctx); err != nil {
		t.Fatalf("CommitWrongAnswers: %v", err)
	}
	words, err := records.ListReviewWords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].ID != dog.ID {
		t.Fatalf("review queue = %+v, want just %s", words, dog.ID)
	}
}

func TestEndToEnd_ReviewQueueRun(t *testing.T) {
	ctx := t.Context()
	records := openSQLiteStore(t)
	if err := records.UpsertReview(ctx, cat); err != nil {
		t.Fatal(err)
	}

	queue, err := QueueWords(ctx, records, ModeReviewQueue)
	if err != nil {
		t.Fatalf("QueueWords: %v", err)
	}

	// First run: miss it. The word stays queued and is re-committed.
	sess, err := New(queue, ModeReviewQueue, FormatPickTranslation, records)
	if err != nil {
		t.Fatal(err)
	}
	sess.SubmitChoice(ctx, dog)
	sess.Advance()
	if err := sess.CommitWrongAnswers(ctx); err != nil {
		t.Fatal(err)
	}
	if ok, _ := records.HasReview(ctx, cat.ID); !ok {
		t.Fatal("missed word left the review queue")
	}

	// Second run: get it right. The queue empties.
	queue, err = QueueWords(ctx, records, ModeReviewQueue)
	if err != nil {
		t.Fatal(err)
	}
	sess, err = New(queue, ModeReviewQueue, FormatPickTranslation, records)
	if err != nil {
		t.Fatal(err)
	}
	sess.SubmitChoice(ctx, cat)
	sess.Advance()
	if err := sess.CommitWrongAnswers(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := QueueWords(ctx, records, ModeReviewQueue); err != ErrEmptyQueue {
		t.Fatalf("expected ErrEmptyQueue after clearing the queue, got %v", err)
	}
}
