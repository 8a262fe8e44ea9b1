// Package result shows the outcome of a finished drill run.
package result

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nosakar/vocab-app/internal/quiz"
	"github.com/nosakar/vocab-app/internal/router"
	"github.com/nosakar/vocab-app/internal/screen"
	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/ui/layout"
	"github.com/nosakar/vocab-app/internal/ui/theme"
)

type committedMsg struct {
	err error
}

// ResultScreen renders the session summary and commits wrong answers to the
// review collection exactly once, on entry.
type ResultScreen struct {
	summary quiz.Summary
	sess    *quiz.Session
	records store.RecordStore
	errMsg  string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the result screen for a completed session.
func New(summary quiz.Summary, sess *quiz.Session, records store.RecordStore) *ResultScreen {
	return &ResultScreen{
		summary: summary,
		sess:    sess,
		records: records,
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		return committedMsg{err: sess.CommitWrongAnswers(context.Background())}
	}
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to menu"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case committedMsg:
		if msg.err != nil {
			s.errMsg = "Some wrong answers were not saved for review: " + msg.err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	var b strings.Builder

	rate := 0
	if s.summary.Total > 0 {
		rate = s.summary.Correct * 100 / s.summary.Total
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete"))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Render(
		fmt.Sprintf("%d / %d correct  (%d%%)", s.summary.Correct, s.summary.Total, rate)))
	b.WriteString("\n\n")

	if len(s.summary.WrongWords) == 0 {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("All correct, nothing new to review!"))
	} else {
		b.WriteString(center.Foreground(theme.TextDim).Render("Added to your review queue:"))
		b.WriteString("\n\n")
		seen := make(map[string]bool)
		for _, w := range s.summary.WrongWords {
			if seen[w.ID] {
				continue
			}
			seen[w.ID] = true
			b.WriteString(center.Foreground(theme.Error).Render(w.Front + " — " + w.Back))
			b.WriteString("\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render(s.errMsg))
	}

	return b.String()
}
