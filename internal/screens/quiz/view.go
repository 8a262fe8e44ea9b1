package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	quizcore "github.com/nosakar/vocab-app/internal/quiz"
	"github.com/nosakar/vocab-app/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.sess.Completed() {
		return ""
	}

	var b strings.Builder

	// Progress line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  Question %d/%d", s.sess.Index()+1, s.sess.Len()))

	star := "☆"
	if s.flagged {
		star = lipgloss.NewStyle().Foreground(theme.Accent).Render("★")
	}
	infoRight := fmt.Sprintf("%s  %s %d", star,
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
		s.sess.Score(),
	)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Prompt (centered).
	current := s.sess.Current()
	promptStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(promptStyle.Render(s.sess.Format().Prompt(current)))
	b.WriteString("\n\n")

	if s.sess.Format() == quizcore.FormatTypeSource {
		b.WriteString(s.renderTyped(width))
	} else {
		b.WriteString(s.renderOptions(width))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}

func (s *QuizScreen) renderOptions(width int) string {
	var b strings.Builder
	for i, choice := range s.choices {
		prefix := "  "
		if i == s.selected && !s.sess.Resolved() {
			prefix = "> "
		}
		line := fmt.Sprintf("  %s%d) %s", prefix, i+1, s.sess.Format().OptionLabel(choice))
		b.WriteString(s.optionStyle(choice.ID, i).Render(line))
		b.WriteString("\n")
	}

	hint := "Select (1-4) or use arrows + Enter"
	if s.sess.Resolved() {
		if s.sess.LastCorrect() {
			hint = "Correct!"
		} else {
			hint = "Wrong"
		}
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + hint))
	return b.String()
}

// optionStyle colors the option list after resolution: the right answer goes
// green, a wrong pick goes red, everything else dims.
func (s *QuizScreen) optionStyle(choiceID string, idx int) lipgloss.Style {
	if !s.sess.Resolved() {
		if idx == s.selected {
			return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return lipgloss.NewStyle().Foreground(theme.Text)
	}
	switch {
	case choiceID == s.sess.Current().ID:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case choiceID == s.sess.ChosenID():
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim)
}

func (s *QuizScreen) renderTyped(width int) string {
	var b strings.Builder
	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
	b.WriteString(answerLine)

	if s.sess.Resolved() && !s.sess.LastCorrect() {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Correct answer: " + s.sess.Current().Front))
	}
	return b.String()
}
