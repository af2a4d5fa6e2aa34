package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"decade-synth/keyboard"
	"decade-synth/synth"
	"decade-synth/theme"
)

const (
	screenW = 760
	screenH = 360

	capW    = 60
	capH    = 44
	capGap  = 6
	marginX = 20
	marginY = 20
)

// keyNames maps physical keys to the labels the controller knows.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyBackquote: "`",
	ebiten.KeyDigit1:    "1",
	ebiten.KeyDigit2:    "2",
	ebiten.KeyDigit3:    "3",
	ebiten.KeyDigit4:    "4",
	ebiten.KeyDigit5:    "5",
	ebiten.KeyDigit6:    "6",
	ebiten.KeyDigit7:    "7",
	ebiten.KeyDigit8:    "8",
	ebiten.KeyDigit9:    "9",
	ebiten.KeyDigit0:    "0",
	ebiten.KeyMinus:     "-",
	ebiten.KeyEqual:     "=",

	ebiten.KeyQ:            "q",
	ebiten.KeyW:            "w",
	ebiten.KeyE:            "e",
	ebiten.KeyR:            "r",
	ebiten.KeyT:            "t",
	ebiten.KeyY:            "y",
	ebiten.KeyU:            "u",
	ebiten.KeyI:            "i",
	ebiten.KeyO:            "o",
	ebiten.KeyP:            "p",
	ebiten.KeyBracketLeft:  "[",
	ebiten.KeyBracketRight: "]",

	ebiten.KeyA:         "a",
	ebiten.KeyS:         "s",
	ebiten.KeyD:         "d",
	ebiten.KeyF:         "f",
	ebiten.KeyG:         "g",
	ebiten.KeyH:         "h",
	ebiten.KeyJ:         "j",
	ebiten.KeyK:         "k",
	ebiten.KeyL:         "l",
	ebiten.KeySemicolon: ";",

	ebiten.KeyZ:      "z",
	ebiten.KeyX:      "x",
	ebiten.KeyC:      "c",
	ebiten.KeyV:      "v",
	ebiten.KeyB:      "b",
	ebiten.KeyN:      "n",
	ebiten.KeyM:      "m",
	ebiten.KeyComma:  ",",
	ebiten.KeyPeriod: ".",

	ebiten.KeySpace:        keyboard.KeySustain,
	ebiten.KeyShiftLeft:    keyboard.KeyShift,
	ebiten.KeyShiftRight:   keyboard.KeyShift,
	ebiten.KeyControlLeft:  keyboard.KeyControl,
	ebiten.KeyControlRight: keyboard.KeyControl,
}

type keyRect struct {
	key  string
	rect image.Rectangle
}

type window struct {
	synth *synth.Synth
	theme *theme.Theme

	caps       []keyRect
	downButton image.Rectangle
	upButton   image.Rectangle
	keys       []ebiten.Key
}

func newWindow(s *synth.Synth, th *theme.Theme) *window {
	w := &window{synth: s, theme: th}

	y := marginY + 30
	for i := len(keyboard.Rows) - 1; i >= 0; i-- {
		keys := keyboard.Rows[i]
		x := marginX + (len(keyboard.Rows)-1-i)*capW/3
		if i == len(keyboard.Rows)-1 {
			keys = append([]string{"`"}, keys...)
		}
		for _, k := range keys {
			w.caps = append(w.caps, keyRect{k, image.Rect(x, y, x+capW, y+capH)})
			x += capW + capGap
		}
		y += capH + capGap
	}
	sx := marginX + 3*(capW+capGap)
	w.caps = append(w.caps, keyRect{keyboard.KeySustain, image.Rect(sx, y, sx+5*(capW+capGap), y+capH/2)})

	y += capH/2 + 2*capGap
	w.downButton = image.Rect(marginX+70, y, marginX+100, y+20)
	w.upButton = image.Rect(marginX+130, y, marginX+160, y+20)
	return w
}

func modifiers() (shift, ctrl bool) {
	shift = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	ctrl = ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	return shift, ctrl
}

func (w *window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	ctrl := w.synth.Controller
	shift, control := modifiers()

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		if name, ok := keyNames[k]; ok {
			ctrl.KeyDown(keyboard.KeyEvent{Key: name, Shift: shift, Ctrl: control})
		}
	}

	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		if name, ok := keyNames[k]; ok {
			ctrl.KeyUp(keyboard.KeyEvent{Key: name, Shift: shift, Ctrl: control})
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pt := image.Pt(ebiten.CursorPosition())
		switch {
		case pt.In(w.downButton):
			ctrl.Transpose(-1)
		case pt.In(w.upButton):
			ctrl.Transpose(1)
		}
	}
	return nil
}

func fill(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	ebitenutil.DrawRect(dst, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), c)
}

func (w *window) Draw(screen *ebiten.Image) {
	th := w.theme
	board := w.synth.Board
	screen.Fill(th.RGBA(theme.RoleBG))

	ebitenutil.DebugPrintAt(screen, "decade-synth", marginX, marginY)

	for _, c := range w.caps {
		bg := th.RGBA(theme.RoleSurface)
		if board.Highlighted(c.key) {
			bg = th.RGBA(theme.RoleActive)
			if c.key == keyboard.KeySustain {
				bg = th.RGBA(theme.RoleSustain)
			}
		}
		fill(screen, c.rect, bg)

		name := c.key
		if name == keyboard.KeySustain {
			name = "space"
		}
		ebitenutil.DebugPrintAt(screen, name, c.rect.Min.X+4, c.rect.Min.Y+2)
		if label, ok := board.Label(c.key); ok {
			ebitenutil.DebugPrintAt(screen, strings.TrimSuffix(label, " Hz"), c.rect.Min.X+4, c.rect.Min.Y+capH/2)
		}
	}

	fill(screen, w.downButton, th.RGBA(theme.RoleMuted))
	fill(screen, w.upButton, th.RGBA(theme.RoleMuted))
	y := w.downButton.Min.Y
	ebitenutil.DebugPrintAt(screen, "Decade", marginX, y+2)
	ebitenutil.DebugPrintAt(screen, " <", w.downButton.Min.X+6, y+2)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", board.Decade()), w.downButton.Max.X+12, y+2)
	ebitenutil.DebugPrintAt(screen, " >", w.upButton.Min.X+6, y+2)

	ebitenutil.DebugPrintAt(screen, board.Status(), marginX, y+30)
	peak := "Peak: -"
	if f, ok := w.synth.Analyzer.Peak(); ok {
		peak = fmt.Sprintf("Peak: %.1f Hz", f)
	}
	ebitenutil.DebugPrintAt(screen, peak, marginX, y+48)
	ebitenutil.DebugPrintAt(screen, "Shift: decade down   Ctrl: decade up   Space: sustain   Esc: quit", marginX, y+72)
}

func (w *window) Layout(_, _ int) (int, int) {
	return screenW, screenH
}
