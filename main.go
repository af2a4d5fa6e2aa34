package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"decade-synth/synth"
	"decade-synth/theme"
	"decade-synth/tui"
)

func main() {
	var flags synth.Flags
	flags.Register(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flags.WriteConfig {
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "decade-synth needs a terminal; try cmd/keywindow for a window")
		os.Exit(1)
	}

	palette, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load palette: %v\n", err)
		os.Exit(1)
	}
	th := theme.New(palette)

	s, err := synth.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := tui.NewModel(s.Controller, s.Board, s.Analyzer, th, cfg.UI.ReleaseGrace())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, runErr := p.Run()
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
		os.Exit(1)
	}
}
