package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"decade-synth/audio"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tuning.StartDecade != 3 || cfg.Voice.Polyphony != 10 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"voice": {"polyphony": 4, "waveform": "square"}, "tuning": {"startDecade": 5}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Voice.Polyphony != 4 || cfg.Tuning.StartDecade != 5 {
		t.Errorf("overrides lost: %+v", cfg)
	}
	if cfg.Voice.ReleaseMs != 1500 || cfg.Tuning.ReferenceFreq != 440 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Voice.Wave() != audio.Square {
		t.Errorf("Wave = %v", cfg.Voice.Wave())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Audio.Volume = 0.5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Audio.Volume != 0.5 {
		t.Errorf("volume = %v, want 0.5", got.Audio.Volume)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"reference", func(c *Config) { c.Tuning.ReferenceFreq = 0 }},
		{"decade", func(c *Config) { c.Tuning.StartDecade = 9 }},
		{"polyphony", func(c *Config) { c.Voice.Polyphony = 0 }},
		{"release", func(c *Config) { c.Voice.ReleaseMs = -1 }},
		{"floor", func(c *Config) { c.Voice.ReleaseFloor = 0 }},
		{"waveform", func(c *Config) { c.Voice.Waveform = "noise" }},
		{"rate", func(c *Config) { c.Audio.SampleRate = 0 }},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: Validate = %v, want ErrInvalidConfig", tt.name, err)
		}
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Voice.Attack() != 75*time.Millisecond || cfg.Voice.Release() != 1500*time.Millisecond {
		t.Errorf("attack %v release %v", cfg.Voice.Attack(), cfg.Voice.Release())
	}
	if cfg.Audio.BufferSize() != 40*time.Millisecond {
		t.Errorf("buffer %v", cfg.Audio.BufferSize())
	}
	var ui UIConfig
	if ui.ReleaseGrace() != 550*time.Millisecond {
		t.Errorf("grace %v", ui.ReleaseGrace())
	}
}
