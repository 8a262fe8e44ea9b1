// Package quiz implements the active drill screen.
package quiz

import (
	"context"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	quizcore "github.com/nosakar/vocab-app/internal/quiz"
	"github.com/nosakar/vocab-app/internal/router"
	"github.com/nosakar/vocab-app/internal/screen"
	"github.com/nosakar/vocab-app/internal/screens/result"
	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/ui/components"
	"github.com/nosakar/vocab-app/internal/ui/layout"
	"github.com/nosakar/vocab-app/internal/vocab"
)

// QuizScreen drives one quiz.Session through the terminal.
type QuizScreen struct {
	sess    *quizcore.Session
	records store.RecordStore
	settle  time.Duration
	rnd     *rand.Rand

	choices  []vocab.Word
	selected int
	input    components.TextInput
	flagged  bool

	settleGen int
	errMsg    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the drill screen for an already-validated session.
func New(sess *quizcore.Session, records store.RecordStore, settle time.Duration) *QuizScreen {
	if settle <= 0 {
		settle = quizcore.DefaultSettleDelay
	}
	s := &QuizScreen{
		sess:    sess,
		records: records,
		settle:  settle,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.prepareQuestion()
	return s
}

// prepareQuestion resets per-question state for the session's current word.
// Distractors are drawn from the session's own question sequence, so small
// queues naturally produce fewer options.
func (s *QuizScreen) prepareQuestion() {
	s.selected = 0
	s.flagged = false
	if s.sess.Format() == quizcore.FormatTypeSource {
		s.input = components.NewTextInput("Type the word...", 40)
		s.choices = nil
		return
	}
	s.choices = quizcore.Choices(s.rnd, s.sess.Current(), s.sess.Questions(), quizcore.DefaultChoiceCount)
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.sess.Format() == quizcore.FormatTypeSource {
		return tea.Batch(s.input.Init(), s.loadFlagState())
	}
	return s.loadFlagState()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.sess.Format() == quizcore.FormatTypeSource {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Ctrl+F", Description: "Flag"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "Ctrl+F", Description: "Flag"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (s *QuizScreen) loadFlagState() tea.Cmd {
	id := s.sess.Current().ID
	return func() tea.Msg {
		flagged, err := s.records.HasFlag(context.Background(), id)
		if err != nil {
			return flagStateMsg{id: id, flagged: false}
		}
		return flagStateMsg{id: id, flagged: flagged}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settleMsg:
		return s.handleSettle(msg)

	case flagStateMsg:
		if msg.id == s.sess.Current().ID {
			s.flagged = msg.flagged
		}
		return s, nil

	case answerErrMsg:
		s.errMsg = "Answer not recorded: " + msg.err.Error()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward everything else to the text input while awaiting a typed answer.
	if s.typing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) typing() bool {
	return s.sess.Format() == quizcore.FormatTypeSource && !s.sess.Resolved() && !s.sess.Completed()
}

// handleSettle advances past a resolved question once the settle delay has
// passed. Stale timers (superseded generation) are dropped.
func (s *QuizScreen) handleSettle(msg settleMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != s.settleGen {
		return s, nil
	}
	if s.sess.Advance() {
		s.prepareQuestion()
		return s, s.Init()
	}

	// Completed: hand off to the result screen in place, so one Esc from
	// there lands back on home.
	summary := s.sess.Summary()
	sess := s.sess
	records := s.records
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: result.New(summary, sess, records),
		}
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+f" && !s.sess.Completed() {
		// Resolved inline: the session is single-owner and must not be
		// touched from a command goroutine.
		flagged, err := s.sess.ToggleFlag(context.Background())
		if err != nil {
			s.errMsg = "Flag not saved: " + err.Error()
			return s, nil
		}
		s.flagged = flagged
		return s, nil
	}

	// Ignore input while the answer reveal is settling.
	if s.sess.Resolved() || s.sess.Completed() {
		return s, nil
	}

	if s.sess.Format() == quizcore.FormatTypeSource {
		if key == "enter" {
			text := s.input.Value()
			if strings.TrimSpace(text) == "" {
				return s, nil
			}
			return s.submitTyped(text)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.choices)-1 {
			s.selected++
		}
	case "enter":
		return s.submitChoice(s.selected)
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(s.choices) {
			s.selected = idx
			return s.submitChoice(idx)
		}
	}
	return s, nil
}

func (s *QuizScreen) submitChoice(idx int) (screen.Screen, tea.Cmd) {
	if idx < 0 || idx >= len(s.choices) {
		return s, nil
	}
	_, err := s.sess.SubmitChoice(context.Background(), s.choices[idx])
	return s.afterSubmit(err)
}

func (s *QuizScreen) submitTyped(text string) (screen.Screen, tea.Cmd) {
	correct, err := s.sess.SubmitTyped(context.Background(), text)
	s.input.Submit(correct)
	return s.afterSubmit(err)
}

func (s *QuizScreen) afterSubmit(err error) (screen.Screen, tea.Cmd) {
	s.settleGen++
	gen := s.settleGen
	settleCmd := tea.Tick(s.settle, func(time.Time) tea.Msg {
		return settleMsg{gen: gen}
	})
	if err != nil {
		return s, tea.Batch(settleCmd, func() tea.Msg { return answerErrMsg{err: err} })
	}
	return s, settleCmd
}
