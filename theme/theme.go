package theme

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Down    rune // ◀ decade down button
	Up      rune // ▶ decade up button
	Held    rune // ● key sounding
	Idle    rune // · key idle
	Sustain rune // ◉ sustain engaged
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Down:    '◀',
			Up:      '▶',
			Held:    '●',
			Idle:    '·',
			Sustain: '◉',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.125
	RoleMuted   = 0.25
	RoleFG      = 0.5
	RoleActive  = 0.625 // held key
	RoleSustain = 0.75
	RoleAccent  = 0.875
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) Surface() lipgloss.Color { return t.Color(RoleSurface) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Sustain() lipgloss.Color { return t.Color(RoleSustain) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(Hex(t.Palette.Lookup(norm)))
}

// RGBA returns an opaque image color for any normalized value 0-1
func (t *Theme) RGBA(norm float64) color.RGBA {
	c := t.Palette.Lookup(norm)
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
}

// Hex formats c as #rrggbb
func Hex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
