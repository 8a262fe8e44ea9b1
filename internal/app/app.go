// Package app wires the Bubble Tea program: root model, screen routing and
// the shared header/footer frame.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nosakar/vocab-app/internal/quiz"
	"github.com/nosakar/vocab-app/internal/router"
	"github.com/nosakar/vocab-app/internal/screen"
	"github.com/nosakar/vocab-app/internal/screens/home"
	"github.com/nosakar/vocab-app/internal/store"
	"github.com/nosakar/vocab-app/internal/ui/layout"
	"github.com/nosakar/vocab-app/internal/vocab"
)

// countsInterval is how often the header queue counts are reloaded, so they
// track answers given mid-session.
const countsInterval = 2 * time.Second

type headerCountsMsg struct {
	review int
	flag   int
}

type countsTickMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	records store.RecordStore
	width   int
	height  int

	reviewCount int
	flagCount   int
}

// Options carries everything the TUI needs to run.
type Options struct {
	Records     store.RecordStore
	Words       []vocab.Word
	SettleDelay time.Duration
	Warning     string // degraded-store notice, empty when healthy
	BatchSize   int
	Format      quiz.Format
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Records, opts.Words, opts.SettleDelay, opts.Warning, opts.BatchSize, opts.Format)
	return AppModel{
		router:  router.New(homeScreen),
		records: opts.Records,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadCounts(), countsTick())
}

func countsTick() tea.Cmd {
	return tea.Tick(countsInterval, func(time.Time) tea.Msg {
		return countsTickMsg{}
	})
}

func (m AppModel) loadCounts() tea.Cmd {
	records := m.records
	return func() tea.Msg {
		ctx := context.Background()
		review, err := records.ListReviewWords(ctx)
		if err != nil {
			return headerCountsMsg{}
		}
		flags, err := records.ListFlagIDs(ctx)
		if err != nil {
			return headerCountsMsg{review: len(review)}
		}
		return headerCountsMsg{review: len(review), flag: len(flags)}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerCountsMsg:
		m.reviewCount = msg.review
		m.flagCount = msg.flag
		return m, nil

	case countsTickMsg:
		return m, tea.Batch(m.loadCounts(), countsTick())

	case router.PopScreenMsg:
		cmd := m.router.Update(msg)
		cmds := []tea.Cmd{cmd, m.loadCounts()}
		// A screen exposed by a pop may need to reload what changed
		// underneath it while it was covered.
		if r, ok := m.router.Active().(screen.Refresher); ok {
			cmds = append(cmds, r.Refresh())
		}
		return m, tea.Batch(cmds...)

	case router.PushScreenMsg, router.ReplaceScreenMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.loadCounts())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.reviewCount, m.flagCount, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hinted, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hinted.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
