package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"decade-synth/keyboard"
	"decade-synth/theme"
	"decade-synth/widgets"
)

const tickRate = 30 * time.Millisecond

// Peaker reports the dominant output frequency.
type Peaker interface {
	Peak() (freq float64, ok bool)
}

type button int

const (
	noButton button = iota
	decadeDown
	decadeUp
)

// layoutBounds holds cached layout info
type layoutBounds struct {
	decadeRow  int
	downStart  int
	upStart    int
	buttonSize int
}

type Model struct {
	Controller *keyboard.Controller
	Board      *keyboard.Board
	Peak       Peaker // may be nil
	Theme      *theme.Theme

	held     *releaseTracker
	bounds   *layoutBounds
	now      func() time.Time
	quitting bool
}

type tickMsg time.Time

func NewModel(ctrl *keyboard.Controller, board *keyboard.Board, peak Peaker, th *theme.Theme, grace time.Duration) Model {
	return Model{
		Controller: ctrl,
		Board:      board,
		Peak:       peak,
		Theme:      th,
		held:       newReleaseTracker(grace),
		bounds:     &layoutBounds{decadeRow: -1},
		now:        time.Now,
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			for _, k := range m.held.releaseAll() {
				m.Controller.KeyUp(keyboard.KeyEvent{Key: k})
			}
			return m, tea.Quit

		case "left", "down":
			m.Controller.Transpose(-1)
			return m, nil

		case "right", "up":
			m.Controller.Transpose(1)
			return m, nil
		}

		if ev, ok := keyEvent(msg); ok {
			ev.Repeat = m.held.press(ev.Key, m.now())
			m.Controller.KeyDown(ev)
		}

	case tickMsg:
		for _, k := range m.held.expired(time.Time(msg)) {
			m.Controller.KeyUp(keyboard.KeyEvent{Key: k})
		}
		return m, tick()

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		switch m.hitTest(msg.X, msg.Y) {
		case decadeDown:
			m.Controller.Transpose(-1)
		case decadeUp:
			m.Controller.Transpose(1)
		}
	}

	return m, nil
}

// keyEvent maps a terminal key to a controller event. Only single
// printable keys and space can play.
func keyEvent(msg tea.KeyMsg) (keyboard.KeyEvent, bool) {
	if msg.Alt {
		return keyboard.KeyEvent{}, false
	}
	switch msg.Type {
	case tea.KeySpace:
		return keyboard.KeyEvent{Key: keyboard.KeySustain}, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return keyboard.KeyEvent{}, false
		}
		r := msg.Runes[0]
		return keyboard.KeyEvent{Key: string(r), Shift: unicode.IsUpper(r)}, true
	}
	return keyboard.KeyEvent{}, false
}

func (m Model) hitTest(x, y int) button {
	b := m.bounds
	if b.decadeRow < 0 || y != b.decadeRow {
		return noButton
	}
	switch {
	case x >= b.downStart && x < b.downStart+b.buttonSize:
		return decadeDown
	case x >= b.upStart && x < b.upStart+b.buttonSize:
		return decadeUp
	}
	return noButton
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	th := m.Theme
	headerStyle := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(th.FG())
	buttonStyle := lipgloss.NewStyle().Foreground(th.Accent())

	header := headerStyle.Render("decade-synth")

	// Rows top to bottom, staggered like a physical keyboard
	var rows []string
	for i := len(keyboard.Rows) - 1; i >= 0; i-- {
		keys := keyboard.Rows[i]
		if i == len(keyboard.Rows)-1 {
			keys = append([]string{"`"}, keys...)
		}
		caps := make([]widgets.KeyCap, len(keys))
		for j, k := range keys {
			caps[j] = m.keyCap(k)
		}
		offset := (len(keyboard.Rows) - 1 - i) * 2
		if i == len(keyboard.Rows)-1 {
			offset = 0
		} else {
			offset += widgets.CapWidth / 2
		}
		rows = append(rows, widgets.RenderKeyRow(caps, offset))
	}
	sustain := widgets.RenderKeyRow([]widgets.KeyCap{m.keyCap(keyboard.KeySustain)}, 5*widgets.CapWidth)
	board := lipgloss.JoinVertical(lipgloss.Left, append(rows, sustain)...)

	// Decade line with clickable buttons
	prefix := "Decade "
	down := widgets.RenderButton(string(th.Symbols.Down), buttonStyle)
	value := fmt.Sprintf(" %d ", m.Board.Decade())
	up := widgets.RenderButton(string(th.Symbols.Up), buttonStyle)
	decadeLine := statusStyle.Render(prefix) + down + statusStyle.Render(value) + up

	status := statusStyle.Render(m.indicators() + " " + m.Board.Status())
	peak := dimStyle.Render(m.peakLine())

	help := dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{{
		Keys: []widgets.KeyBinding{
			{Key: "keys", Desc: "play (held while auto-repeat continues)"},
			{Key: "space", Desc: "sustain"},
			{Key: "←/→ [◀][▶]", Desc: "decade down/up"},
			{Key: "esc", Desc: "quit"},
		},
	}}))

	// Compute layout bounds for mouse hit testing
	m.bounds.decadeRow = 1 + lipgloss.Height(header) + 1 + lipgloss.Height(board) + 1
	m.bounds.downStart = lipgloss.Width(prefix)
	m.bounds.upStart = m.bounds.downStart + widgets.ButtonWidth + lipgloss.Width(value)
	m.bounds.buttonSize = widgets.ButtonWidth

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(board)
	out.WriteString("\n\n")
	out.WriteString(decadeLine)
	out.WriteString("\n")
	out.WriteString(status)
	out.WriteString("\n")
	out.WriteString(peak)
	out.WriteString("\n\n")
	out.WriteString(help)
	return out.String()
}

func (m Model) keyCap(key string) widgets.KeyCap {
	th := m.Theme
	style := lipgloss.NewStyle().Foreground(th.FG()).BorderForeground(th.Muted())
	if m.Board.Highlighted(key) {
		hl := th.Active()
		if key == keyboard.KeySustain {
			hl = th.Sustain()
		}
		style = style.Foreground(hl).BorderForeground(hl).Bold(true)
	}
	label, _ := m.Board.Label(key)
	return widgets.KeyCap{Key: key, Label: label, Style: style}
}

// indicators shows whether anything is sounding and whether sustain is held.
func (m Model) indicators() string {
	sym := m.Theme.Symbols
	playing, sustain := sym.Idle, sym.Idle
	if m.Controller.ActiveCount() > 0 {
		playing = sym.Held
	}
	if m.Controller.Sustained() {
		sustain = sym.Sustain
	}
	return string(playing) + string(sustain)
}

func (m Model) peakLine() string {
	if m.Peak == nil {
		return ""
	}
	if f, ok := m.Peak.Peak(); ok {
		return fmt.Sprintf("Peak: %.1f Hz", f)
	}
	return "Peak: -"
}
