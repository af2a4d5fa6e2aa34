package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"decade-synth/audio"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// TuningConfig anchors the step scale
type TuningConfig struct {
	ReferenceFreq float64 `json:"referenceFreq"`
	ReferenceStep int     `json:"referenceStep"`
	StartDecade   int     `json:"startDecade"`
}

// VoiceConfig shapes every note
type VoiceConfig struct {
	Polyphony    int     `json:"polyphony"`
	AttackMs     int     `json:"attackMs"`
	ReleaseMs    int     `json:"releaseMs"`
	PitchDrop    float64 `json:"pitchDrop"`
	ReleaseFloor float64 `json:"releaseFloor"`
	Waveform     string  `json:"waveform,omitempty"`
}

// AudioConfig defines the device stream
type AudioConfig struct {
	SampleRate int     `json:"sampleRate"`
	Volume     float64 `json:"volume"`
	BufferMs   int     `json:"bufferMs"`
}

// UIConfig stores frontend preferences
type UIConfig struct {
	Palette        string `json:"palette,omitempty"`
	ReleaseGraceMs int    `json:"releaseGraceMs,omitempty"` // terminal key-up emulation
	Debug          bool   `json:"debug,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Tuning TuningConfig `json:"tuning"`
	Voice  VoiceConfig  `json:"voice"`
	Audio  AudioConfig  `json:"audio"`
	UI     UIConfig     `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tuning: TuningConfig{
			ReferenceFreq: 440,
			ReferenceStep: 40,
			StartDecade:   3,
		},
		Voice: VoiceConfig{
			Polyphony:    10,
			AttackMs:     75,
			ReleaseMs:    1500,
			PitchDrop:    50,
			ReleaseFloor: 0.001,
			Waveform:     "sine",
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Volume:     0.2,
			BufferMs:   40,
		},
		UI: UIConfig{
			ReleaseGraceMs: 550,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "decade-synth"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns where the debug log goes
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads path over the defaults, so a partial file only overrides
// what it names. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges the synth depends on
func (c *Config) Validate() error {
	switch {
	case c.Tuning.ReferenceFreq <= 0:
		return fmt.Errorf("%w: tuning.referenceFreq must be positive", ErrInvalidConfig)
	case c.Tuning.StartDecade < 0 || c.Tuning.StartDecade > 8:
		return fmt.Errorf("%w: tuning.startDecade %d outside 0..8", ErrInvalidConfig, c.Tuning.StartDecade)
	case c.Voice.Polyphony < 1:
		return fmt.Errorf("%w: voice.polyphony must be at least 1", ErrInvalidConfig)
	case c.Voice.AttackMs < 0 || c.Voice.ReleaseMs < 0:
		return fmt.Errorf("%w: voice attack/release must not be negative", ErrInvalidConfig)
	case c.Voice.PitchDrop <= 0 || c.Voice.ReleaseFloor <= 0:
		return fmt.Errorf("%w: voice.pitchDrop and voice.releaseFloor must be positive", ErrInvalidConfig)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: audio.sampleRate must be positive", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v outside 0..1", ErrInvalidConfig, c.Audio.Volume)
	}
	if _, err := audio.ParseWaveform(c.Voice.Waveform); err != nil {
		return fmt.Errorf("%w: voice.waveform: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Attack returns the attack time
func (v VoiceConfig) Attack() time.Duration {
	return time.Duration(v.AttackMs) * time.Millisecond
}

// Release returns the release time
func (v VoiceConfig) Release() time.Duration {
	return time.Duration(v.ReleaseMs) * time.Millisecond
}

// Wave returns the parsed waveform (sine when unset)
func (v VoiceConfig) Wave() audio.Waveform {
	w, _ := audio.ParseWaveform(v.Waveform)
	return w
}

// BufferSize returns the device buffer length
func (a AudioConfig) BufferSize() time.Duration {
	return time.Duration(a.BufferMs) * time.Millisecond
}

// ReleaseGrace returns how long the terminal frontend waits for a repeat
// before treating a key as released
func (u UIConfig) ReleaseGrace() time.Duration {
	if u.ReleaseGraceMs <= 0 {
		return 550 * time.Millisecond
	}
	return time.Duration(u.ReleaseGraceMs) * time.Millisecond
}
