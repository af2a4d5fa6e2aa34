package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"decade-synth/keyboard"
	"decade-synth/theme"
)

type stubPeak struct {
	freq float64
	ok   bool
}

func (s stubPeak) Peak() (float64, bool) { return s.freq, s.ok }

type nopTimer struct{}

func (nopTimer) Stop() bool { return true }

type nopScheduler struct{}

func (nopScheduler) AfterFunc(time.Duration, func()) keyboard.Timer { return nopTimer{} }

func newTestModel(t *testing.T) (Model, *time.Time) {
	t.Helper()
	board := keyboard.NewBoard()
	ctrl := keyboard.NewController(keyboard.Options{
		StartDecade: keyboard.DefaultStartDecade,
		Display:     board,
		Scheduler:   nopScheduler{},
	})
	t.Cleanup(ctrl.Close)

	m := NewModel(ctrl, board, stubPeak{freq: 440, ok: true}, theme.New(theme.Default()), 100*time.Millisecond)
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	return m, &now
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestKeyPressStartsNote(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, runes("q"))
	if !m.Controller.Active("q") {
		t.Fatal("q not active after key press")
	}
	if !m.Board.Highlighted("q") {
		t.Error("q not highlighted")
	}
	if !strings.HasPrefix(m.Board.Status(), "Active notes: 1/10.") {
		t.Errorf("status = %q", m.Board.Status())
	}
}

func TestAutoRepeatKeepsNoteHeld(t *testing.T) {
	m, now := newTestModel(t)
	m = update(m, runes("q"))

	*now = now.Add(50 * time.Millisecond)
	m = update(m, runes("q"))
	m = update(m, tickMsg(now.Add(60*time.Millisecond)))
	if !m.Controller.Active("q") {
		t.Fatal("q released while auto-repeat was arriving")
	}

	m = update(m, tickMsg(now.Add(200*time.Millisecond)))
	if m.Controller.Active("q") {
		t.Error("q still active after grace expired")
	}
	if m.Board.Highlighted("q") {
		t.Error("q still highlighted after release")
	}
}

func TestUppercaseLetterPlaysLowercase(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, runes("Q"))
	if !m.Controller.Active("q") {
		t.Error("shifted Q did not play q")
	}
	if m.Controller.Decade() != keyboard.DefaultStartDecade {
		t.Errorf("decade changed to %d", m.Controller.Decade())
	}
}

func TestSpaceHoldsSustain(t *testing.T) {
	m, now := newTestModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(m, runes("w"))
	if !m.Controller.Sustained() {
		t.Fatal("sustain not engaged")
	}

	// Space keeps repeating, w goes quiet
	*now = now.Add(80 * time.Millisecond)
	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(m, tickMsg(now.Add(90*time.Millisecond)))
	if got := m.Controller.Deferred(); len(got) != 1 || got[0] != "w" {
		t.Fatalf("Deferred = %v, want [w]", got)
	}

	m = update(m, tickMsg(now.Add(300*time.Millisecond)))
	if m.Controller.Sustained() {
		t.Error("sustain still engaged")
	}
	if m.Controller.Active("w") {
		t.Error("w still active after sustain release")
	}
}

func TestArrowsTranspose(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Controller.Decade() != 4 {
		t.Errorf("decade = %d after right, want 4", m.Controller.Decade())
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Controller.Decade() != 2 {
		t.Errorf("decade = %d after left twice, want 2", m.Controller.Decade())
	}
}

func TestMouseButtonsTranspose(t *testing.T) {
	m, _ := newTestModel(t)
	m.View()

	b := m.bounds
	click := func(x int) {
		m = update(m, tea.MouseMsg{X: x, Y: b.decadeRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}
	click(b.upStart + 1)
	if m.Controller.Decade() != 4 {
		t.Errorf("decade = %d after up click, want 4", m.Controller.Decade())
	}
	click(b.downStart + 1)
	click(b.downStart + 1)
	if m.Controller.Decade() != 2 {
		t.Errorf("decade = %d after down clicks, want 2", m.Controller.Decade())
	}
	click(0)
	if m.Controller.Decade() != 2 {
		t.Errorf("click outside buttons changed decade to %d", m.Controller.Decade())
	}
}

func TestQuitReleasesHeldKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, runes("q"))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("esc did not quit")
	}
	if m.Controller.Active("q") {
		t.Error("q still active after quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestViewShowsState(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, runes("z"))
	v := m.View()
	for _, want := range []string{"●·", "Active notes: 1/10. Decade: 3. Sustain: false", "Peak: 440.0 Hz", "space"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReleaseTracker(t *testing.T) {
	r := newReleaseTracker(100 * time.Millisecond)
	t0 := time.Unix(0, 0)
	if r.press("A", t0) {
		t.Error("first press reported as repeat")
	}
	if !r.press("a", t0.Add(10*time.Millisecond)) {
		t.Error("second press not reported as repeat")
	}
	r.press("b", t0.Add(90*time.Millisecond))
	if got := r.expired(t0.Add(150 * time.Millisecond)); len(got) != 1 || got[0] != "a" {
		t.Errorf("expired = %v, want [a]", got)
	}
	if got := r.releaseAll(); len(got) != 1 || got[0] != "b" {
		t.Errorf("releaseAll = %v, want [b]", got)
	}
}
