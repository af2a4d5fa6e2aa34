// Command keywindow plays the decade keyboard in a desktop window, where
// real key releases are available.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"decade-synth/synth"
	"decade-synth/theme"
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

	palette, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load palette: %v\n", err)
		os.Exit(1)
	}

	s, err := synth.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w := newWindow(s, theme.New(palette))
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("decade-synth")
	ebiten.SetRunnableOnUnfocused(true)

	runErr := ebiten.RunGame(w)
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		fmt.Printf("Ebiten error: %v\n", runErr)
		os.Exit(1)
	}
}
