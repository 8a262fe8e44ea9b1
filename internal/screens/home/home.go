// Package home implements the mode-selection screen.
package home

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nosakar/vocab-app/internal/quiz"
	"github.com/nosakar/vocab-app/internal/router"
	"github.com/nosakar/vocab-app/internal/screen"
	quizscreen "github.com/nosakar/vocab-app/internal/screens/quiz"
	"github.com/nosakar/vocab-app/internal/screens/rangepick"
	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/ui/layout"
	"github.com/nosakar/vocab-app/internal/ui/theme"
	"github.com/nosakar/vocab-app/internal/vocab"
)

// row indices in the home screen's vertical navigation.
const (
	rowBatch = iota
	rowFormat
	rowStart
	rowReview
	rowFlagged
	rowClearReview
	rowClearFlagged
	rowQuit
	rowCount
)

var formats = []quiz.Format{
	quiz.FormatPickTranslation,
	quiz.FormatPickSource,
	quiz.FormatTypeSource,
}

// HomeScreen lets the learner pick question count, answer format and mode.
type HomeScreen struct {
	records store.RecordStore
	words   []vocab.Word
	settle  time.Duration
	warning string // e.g. degraded-store notice, shown under the menu

	selected  int
	batchIdx  int // index into quiz.BatchSizes
	formatIdx int // index into formats

	reviewCount int
	flagCount   int
	confirm     int    // rowClearReview/rowClearFlagged while confirming, -1 otherwise
	notice      string // transient user-facing message (e.g. empty queue)
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

type countsMsg struct {
	review int
	flag   int
}

type clearedMsg struct {
	row int
	err error
}

type queueMsg struct {
	mode  quiz.Mode
	words []vocab.Word
	err   error
}

// New creates the home screen. warning is shown persistently when the store
// is degraded; batchSize and format preselect the configured defaults.
func New(records store.RecordStore, words []vocab.Word, settle time.Duration, warning string, batchSize int, format quiz.Format) *HomeScreen {
	return &HomeScreen{
		records:   records,
		words:     words,
		settle:    settle,
		warning:   warning,
		batchIdx:  batchIndex(batchSize),
		formatIdx: formatIndex(format),
		selected:  rowStart,
		confirm:   -1,
	}
}

func formatIndex(format quiz.Format) int {
	for i, f := range formats {
		if f == format {
			return i
		}
	}
	return 0
}

func batchIndex(size int) int {
	for i, n := range quiz.BatchSizes {
		if n == size {
			return i
		}
	}
	return 0
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadCounts()
}

// Refresh reloads the queue counts when the screen becomes active again.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadCounts()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirm >= 0 {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) loadCounts() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		review, err := h.records.ListReviewWords(ctx)
		if err != nil {
			return countsMsg{}
		}
		flags, err := h.records.ListFlagIDs(ctx)
		if err != nil {
			return countsMsg{review: len(review)}
		}
		return countsMsg{review: len(review), flag: len(flags)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countsMsg:
		h.reviewCount = msg.review
		h.flagCount = msg.flag
		return h, nil

	case clearedMsg:
		if msg.err != nil {
			h.notice = "Could not clear: " + msg.err.Error()
			return h, nil
		}
		return h, h.loadCounts()

	case queueMsg:
		return h.handleQueue(msg)

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *HomeScreen) handleQueue(msg queueMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.err, quiz.ErrEmptyQueue) {
		if msg.mode == quiz.ModeReviewQueue {
			h.notice = "Nothing to review — missed words land here after a quiz."
		} else {
			h.notice = "No flagged words yet — press Ctrl+F during a quiz to flag one."
		}
		return h, nil
	}
	if msg.err != nil {
		h.notice = "Could not load queue: " + msg.err.Error()
		return h, nil
	}

	sess, err := quiz.New(msg.words, msg.mode, formats[h.formatIdx], h.records)
	if err != nil {
		h.notice = err.Error()
		return h, nil
	}
	return h, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quizscreen.New(sess, h.records, h.settle),
		}
	}
}

func (h *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if h.confirm >= 0 {
		row := h.confirm
		switch key {
		case "y", "Y":
			h.confirm = -1
			return h, h.clearCmd(row)
		case "n", "N", "esc":
			h.confirm = -1
		}
		return h, nil
	}

	h.notice = ""
	switch key {
	case "up", "k":
		if h.selected > 0 {
			h.selected--
		}
	case "down", "j":
		if h.selected < rowCount-1 {
			h.selected++
		}
	case "left", "h":
		h.adjust(-1)
	case "right", "l":
		h.adjust(1)
	case "enter":
		return h.activate()
	}
	return h, nil
}

func (h *HomeScreen) adjust(delta int) {
	switch h.selected {
	case rowBatch:
		h.batchIdx = clamp(h.batchIdx+delta, 0, len(quiz.BatchSizes)-1)
	case rowFormat:
		h.formatIdx = clamp(h.formatIdx+delta, 0, len(formats)-1)
	}
}

func (h *HomeScreen) activate() (screen.Screen, tea.Cmd) {
	switch h.selected {
	case rowBatch, rowFormat:
		h.adjust(1)
		return h, nil

	case rowStart:
		if len(h.words) == 0 {
			h.notice = "Word list is empty — check the configured words source."
			return h, nil
		}
		words, batch := h.words, quiz.BatchSizes[h.batchIdx]
		format, records, settle := formats[h.formatIdx], h.records, h.settle
		return h, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: rangepick.New(words, batch, format, records, settle),
			}
		}

	case rowReview:
		return h, h.queueCmd(quiz.ModeReviewQueue)

	case rowFlagged:
		return h, h.queueCmd(quiz.ModeFlaggedQueue)

	case rowClearReview, rowClearFlagged:
		h.confirm = h.selected
		return h, nil

	case rowQuit:
		return h, tea.Quit
	}
	return h, nil
}

func (h *HomeScreen) queueCmd(mode quiz.Mode) tea.Cmd {
	return func() tea.Msg {
		words, err := quiz.QueueWords(context.Background(), h.records, mode)
		return queueMsg{mode: mode, words: words, err: err}
	}
}

func (h *HomeScreen) clearCmd(row int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if row == rowClearReview {
			return clearedMsg{row: row, err: h.records.ClearReview(ctx)}
		}
		return clearedMsg{row: row, err: h.records.ClearFlag(ctx)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Vocabulary Drill"))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Questions:  ‹ %d ›", quiz.BatchSizes[h.batchIdx]),
		fmt.Sprintf("Format:     ‹ %s ›", formats[h.formatIdx]),
		"Start quiz",
		withBadge("Review queue", h.reviewCount),
		withBadge("Flagged words", h.flagCount),
		"Clear review list",
		"Clear flagged list",
		"Quit",
	}

	for i, label := range rows {
		if i == h.selected {
			b.WriteString(theme.Selected.Render("  ▸ " + label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + label))
		}
		b.WriteString("\n")
		if i == rowFormat || i == rowFlagged {
			b.WriteString("\n")
		}
	}

	if h.confirm == rowClearReview {
		b.WriteString("\n" + theme.Incorrect.Render("  Delete every word in the review list? (y/n)"))
	} else if h.confirm == rowClearFlagged {
		b.WriteString("\n" + theme.Incorrect.Render("  Delete every flagged word? (y/n)"))
	}

	if h.notice != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("  "+h.notice))
	}
	if h.warning != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+h.warning))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func withBadge(label string, count int) string {
	if count == 0 {
		return label
	}
	return fmt.Sprintf("%s (%d)", label, count)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
