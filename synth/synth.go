// Package synth assembles the audio graph, device output and keyboard
// controller that both frontends drive.
package synth

import (
	"flag"
	"fmt"

	"decade-synth/audio"
	"decade-synth/config"
	"decade-synth/debug"
	"decade-synth/keyboard"
)

const analyzerSize = 4096

// Flags are the command line options shared by the frontends.
type Flags struct {
	ConfigPath  string
	Debug       bool
	WriteConfig bool
}

// Register binds the shared flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "config file (default ~/.config/decade-synth/config.json)")
	fs.BoolVar(&f.Debug, "debug", false, "write a debug log next to the config")
	fs.BoolVar(&f.WriteConfig, "write-config", false, "write the effective config and exit")
}

// LoadConfig reads the config named by the flags, falling back to the
// default location. With WriteConfig set the result is saved back.
func (f *Flags) LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.ConfigPath != "" {
		cfg, err = config.LoadFrom(f.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.Debug || cfg.UI.Debug {
		path, err := config.LogPath()
		if err != nil {
			return nil, err
		}
		if err := debug.Enable(path); err != nil {
			return nil, err
		}
	}

	if f.WriteConfig {
		if f.ConfigPath != "" {
			err = cfg.SaveTo(f.ConfigPath)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			return nil, fmt.Errorf("write config: %w", err)
		}
	}
	return cfg, nil
}

// Synth owns one playing session.
type Synth struct {
	Config     *config.Config
	Graph      *audio.Context
	Analyzer   *audio.Analyzer
	Board      *keyboard.Board
	Controller *keyboard.Controller

	output *audio.Output
}

// Open starts audio output and builds a controller that renders into a
// fresh Board.
func Open(cfg *config.Config) (*Synth, error) {
	graph := audio.NewContext(cfg.Audio.SampleRate)
	analyzer, err := audio.NewAnalyzer(graph.SampleRate(), analyzerSize)
	if err != nil {
		return nil, err
	}

	out, err := audio.NewOutput(graph, analyzer, audio.OutputOptions{
		BufferSize: cfg.Audio.BufferSize(),
		Volume:     cfg.Audio.Volume,
	})
	if err != nil {
		return nil, err
	}
	out.Start()

	board := keyboard.NewBoard()
	opts := keyboard.OptionsFromConfig(cfg)
	opts.Tones = keyboard.NewGraphTones(graph, cfg.Voice.Wave())
	opts.Display = board

	debug.Log("synth", "opened: %d Hz, %s, polyphony %d", graph.SampleRate(), cfg.Voice.Wave(), opts.Polyphony)

	return &Synth{
		Config:     cfg,
		Graph:      graph,
		Analyzer:   analyzer,
		Board:      board,
		Controller: keyboard.NewController(opts),
		output:     out,
	}, nil
}

// Close silences every voice and releases the audio device.
func (s *Synth) Close() error {
	s.Controller.Close()
	err := s.output.Close()
	debug.Log("synth", "closed")
	debug.Disable()
	return err
}
