// Package rangepick implements the chunk-selection screen for normal mode.
package rangepick

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nosakar/vocab-app/internal/quiz"
	"github.com/nosakar/vocab-app/internal/router"
	"github.com/nosakar/vocab-app/internal/screen"
	quizscreen "github.com/nosakar/vocab-app/internal/screens/quiz"
	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/ui/components"
	"github.com/nosakar/vocab-app/internal/ui/layout"
	"github.com/nosakar/vocab-app/internal/ui/theme"
	"github.com/nosakar/vocab-app/internal/vocab"
)

// RangeScreen offers the word list partitioned into contiguous chunks, plus
// an everything option.
type RangeScreen struct {
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*RangeScreen)(nil)
var _ screen.KeyHintProvider = (*RangeScreen)(nil)

// New builds the chunk picker over words with the given batch size.
func New(words []vocab.Word, batchSize int, format quiz.Format, records store.RecordStore, settle time.Duration) *RangeScreen {
	s := &RangeScreen{}

	chunks := quiz.Chunks(words, batchSize)
	items := make([]components.MenuItem, 0, len(chunks)+1)
	start := 1
	for _, chunk := range chunks {
		label := fmt.Sprintf("%d–%d", start, start+len(chunk)-1)
		start += len(chunk)
		items = append(items, s.launchItem(label, chunk, format, records, settle))
	}
	items = append(items, s.launchItem("Everything", words, format, records, settle))

	s.menu = components.NewMenu(items)
	return s
}

func (s *RangeScreen) launchItem(label string, questions []vocab.Word, format quiz.Format, records store.RecordStore, settle time.Duration) components.MenuItem {
	return components.MenuItem{
		Label: label,
		Badge: fmt.Sprintf("%d words", len(questions)),
		Action: func() tea.Cmd {
			sess, err := quiz.New(questions, quiz.ModeNormal, format, records)
			if err != nil {
				s.errMsg = err.Error()
				return nil
			}
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.New(sess, records, settle),
				}
			}
		},
	}
}

func (s *RangeScreen) Init() tea.Cmd {
	return nil
}

func (s *RangeScreen) Title() string {
	return "Pick a range"
}

func (s *RangeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RangeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *RangeScreen) View(width, height int) string {
	out := theme.Subtitle.Width(width).Render("Which part of the list?") + "\n\n" + s.menu.View()
	if s.errMsg != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("  "+s.errMsg)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, out)
}
