package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/vocab"
)

// Mode identifies where a session's question sequence came from. Only
// answers drilled from the review queue can remove words from it.
type Mode int

const (
	ModeNormal Mode = iota
	ModeReviewQueue
	ModeFlaggedQueue
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeReviewQueue:
		return "review"
	case ModeFlaggedQueue:
		return "flagged"
	}
	return "unknown"
}

// Format is the answer format for every question in a session.
type Format int

const (
	// FormatPickTranslation shows the source term, options are translations.
	FormatPickTranslation Format = iota
	// FormatPickSource shows the translation, options are source terms.
	FormatPickSource
	// FormatTypeSource shows the translation, the source term is typed.
	FormatTypeSource
)

func (f Format) String() string {
	switch f {
	case FormatPickTranslation:
		return "pick translation"
	case FormatPickSource:
		return "pick source"
	case FormatTypeSource:
		return "type source"
	}
	return "unknown"
}

// Prompt returns the text shown as the question for w.
func (f Format) Prompt(w vocab.Word) string {
	if f == FormatPickTranslation {
		return w.Front
	}
	return w.Back
}

// OptionLabel returns the text shown for w as an answer option.
func (f Format) OptionLabel(w vocab.Word) string {
	if f == FormatPickTranslation {
		return w.Back
	}
	return w.Front
}

// DefaultSettleDelay is the pause between answer resolution and advancing,
// long enough for the UI to reveal correctness.
const DefaultSettleDelay = 500 * time.Millisecond

// ErrNoQuestions rejects constructing a session over an empty sequence.
var ErrNoQuestions = errors.New("session needs at least one question")

// Summary is emitted when a session completes.
type Summary struct {
	Total      int
	Correct    int
	WrongWords []vocab.Word
}

// Session drives one run of N questions. It owns the transient run state;
// nothing about it persists except its side effects on the record store.
// A session is single-owner and is never shared across concurrent runs.
type Session struct {
	id        string
	questions []vocab.Word
	index     int
	score     int
	wrong     []vocab.Word

	resolved    bool
	chosenID    string
	lastCorrect bool
	completed   bool

	mode    Mode
	format  Format
	records store.RecordStore
}

// New validates the question sequence and builds a session positioned at
// the first question.
func New(questions []vocab.Word, mode Mode, format Format, records store.RecordStore) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		id:        uuid.New().String(),
		questions: questions,
		mode:      mode,
		format:    format,
		records:   records,
	}
	slog.Debug("session started",
		"session", s.id, "mode", mode.String(), "format", format.String(), "questions", len(questions))
	return s, nil
}

// ID returns the session's unique run identifier.
func (s *Session) ID() string { return s.id }

// Len returns the fixed question count.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the 0-based position of the current question.
func (s *Session) Index() int { return s.index }

// Score returns correct answers so far.
func (s *Session) Score() int { return s.score }

// Mode returns the session's source mode.
func (s *Session) Mode() Mode { return s.mode }

// Format returns the session's answer format.
func (s *Session) Format() Format { return s.format }

// Completed reports whether the session is terminal.
func (s *Session) Completed() bool { return s.completed }

// Resolved reports whether the current question has been answered and the
// session is waiting out the settle delay.
func (s *Session) Resolved() bool { return s.resolved }

// LastCorrect reports the outcome of the most recent resolution.
func (s *Session) LastCorrect() bool { return s.lastCorrect }

// ChosenID returns the ID picked for the current question, or "" for typed
// answers and unanswered questions.
func (s *Session) ChosenID() string { return s.chosenID }

// Questions returns the full question sequence. The returned slice is a
// copy; sessions never expose internal state for mutation.
func (s *Session) Questions() []vocab.Word {
	qs := make([]vocab.Word, len(s.questions))
	copy(qs, s.questions)
	return qs
}

// Current returns the active question. Zero value once completed.
func (s *Session) Current() vocab.Word {
	if s.completed {
		return vocab.Word{}
	}
	return s.questions[s.index]
}

// SubmitChoice resolves the current question against a picked option.
// Duplicate submissions while a selection is pending are ignored, so a
// double keypress can never double-score.
func (s *Session) SubmitChoice(ctx context.Context, w vocab.Word) (bool, error) {
	if s.completed || s.resolved {
		return s.lastCorrect, nil
	}
	s.chosenID = w.ID
	return s.resolve(ctx, w.ID == s.Current().ID)
}

// SubmitTyped resolves the current question against typed input. Only valid
// for the type-source format; correctness is case-insensitive, trimmed
// equality with the source term. Callers reject empty input beforehand.
func (s *Session) SubmitTyped(ctx context.Context, text string) (bool, error) {
	if s.format != FormatTypeSource {
		return false, fmt.Errorf("typed answers not accepted in %s format", s.format)
	}
	if s.completed || s.resolved {
		return s.lastCorrect, nil
	}
	return s.resolve(ctx, normalize(text) == normalize(s.Current().Front))
}

// resolve applies the scoring rules and the store side effect. A word only
// leaves the review queue by being answered correctly while drawn from that
// queue; missing it elsewhere never removes it.
func (s *Session) resolve(ctx context.Context, correct bool) (bool, error) {
	s.resolved = true
	s.lastCorrect = correct

	if correct {
		s.score++
		if s.mode == ModeReviewQueue {
			if err := s.records.DeleteReview(ctx, s.Current().ID); err != nil {
				return correct, err
			}
		}
		return correct, nil
	}

	// Run-scoped log, not a set: missing the same word twice records it twice.
	s.wrong = append(s.wrong, s.Current())
	return correct, nil
}

// Advance moves past a resolved question, either to the next question or
// to the terminal state. Returns false once the session is completed.
// Calling it before resolution is a no-op.
func (s *Session) Advance() bool {
	if s.completed || !s.resolved {
		return !s.completed
	}
	s.resolved = false
	s.chosenID = ""
	if s.index+1 < len(s.questions) {
		s.index++
		return true
	}
	s.completed = true
	return false
}

// ToggleFlag flips the flagged state of the current word, committing to the
// store immediately. Orthogonal to answer progression; valid in any
// non-terminal state. Returns the new flagged state.
func (s *Session) ToggleFlag(ctx context.Context) (bool, error) {
	if s.completed {
		return false, errors.New("session is completed")
	}
	w := s.Current()
	flagged, err := s.records.HasFlag(ctx, w.ID)
	if err != nil {
		return false, err
	}
	if flagged {
		return false, s.records.DeleteFlag(ctx, w.ID)
	}
	return true, s.records.UpsertFlag(ctx, w)
}

// Summary returns the session outcome.
func (s *Session) Summary() Summary {
	wrong := make([]vocab.Word, len(s.wrong))
	copy(wrong, s.wrong)
	return Summary{
		Total:      len(s.questions),
		Correct:    s.score,
		WrongWords: wrong,
	}
}

// CommitWrongAnswers upserts every wrong answer into the review collection.
// Called once on completion.
func (s *Session) CommitWrongAnswers(ctx context.Context) error {
	for _, w := range s.wrong {
		if err := s.records.UpsertReview(ctx, w); err != nil {
			return fmt.Errorf("session %s: commit wrong answer %q: %w", s.id, w.ID, err)
		}
	}
	slog.Debug("session committed",
		"session", s.id, "correct", s.score, "wrong", len(s.wrong))
	return nil
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
