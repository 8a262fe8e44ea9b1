package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/nosakar/vocab-app/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushAndPop(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	drill := &stubScreen{title: "quiz"}
	r.Push(drill)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "quiz" {
		t.Errorf("expected active 'quiz', got %q", r.Active().Title())
	}
	if !drill.initRan {
		t.Error("expected Init() to run on pushed screen")
	}

	r.Pop()
	if r.Depth() != 1 || r.Active().Title() != "home" {
		t.Errorf("pop did not restore home: depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "quiz"})

	res := &stubScreen{title: "results"}
	r.Replace(res)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "results" {
		t.Errorf("expected active 'results', got %q", r.Active().Title())
	}
	if !res.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestNavigationMessages(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	drill := &stubScreen{title: "quiz"}
	r.Update(PushScreenMsg{Screen: drill})
	if r.Active().Title() != "quiz" || !drill.initRan {
		t.Errorf("push message not handled: active %q", r.Active().Title())
	}

	res := &stubScreen{title: "results"}
	r.Update(ReplaceScreenMsg{Screen: res})
	if r.Depth() != 2 || r.Active().Title() != "results" {
		t.Errorf("replace message not handled: depth %d, active %q", r.Depth(), r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "home" {
		t.Errorf("pop message not handled: depth %d, active %q", r.Depth(), r.Active().Title())
	}
}
