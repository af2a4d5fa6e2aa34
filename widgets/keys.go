package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyCap is one rendered key: its label on top, its frequency below.
type KeyCap struct {
	Key   string
	Label string
	Style lipgloss.Style
}

// CapWidth is the printed width of a key cap including its border.
const CapWidth = 9

// RenderKeyCap renders a bordered two-line key cap.
func RenderKeyCap(c KeyCap) string {
	key := c.Key
	if key == " " {
		key = "space"
	}
	body := fmt.Sprintf("%s\n%s", center(key, CapWidth-2), center(strings.TrimSuffix(c.Label, " Hz"), CapWidth-2))
	return c.Style.Border(lipgloss.RoundedBorder()).Render(body)
}

// RenderKeyRow joins caps side by side, indented by offset columns.
func RenderKeyRow(caps []KeyCap, offset int) string {
	rendered := make([]string, len(caps))
	for i, c := range caps {
		rendered[i] = RenderKeyCap(c)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return lipgloss.NewStyle().PaddingLeft(offset).Render(row)
}

// RenderButton renders a clickable label like "[ ◀ ]".
func RenderButton(label string, style lipgloss.Style) string {
	return style.Render("[ " + label + " ]")
}

// ButtonWidth is the printed width of RenderButton for a one-cell label.
const ButtonWidth = 5

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func center(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
