package keyboard

import "time"

// Envelope shapes a voice: a linear attack with a pitch drop from
// PitchDrop times the target frequency, then an exponential release to
// Floor.
type Envelope struct {
	Attack    time.Duration
	Release   time.Duration
	PitchDrop float64
	Floor     float64
}

// DefaultEnvelope is 75ms attack, 50x pitch drop, 1.5s release to 0.001.
func DefaultEnvelope() Envelope {
	return Envelope{
		Attack:    75 * time.Millisecond,
		Release:   1500 * time.Millisecond,
		PitchDrop: 50,
		Floor:     0.001,
	}
}

// PitchGlide is how long the pitch takes to fall to the target.
func (e Envelope) PitchGlide() time.Duration {
	return e.Attack / 4
}

// Tone is one sounding generator/envelope pair.
type Tone interface {
	// Release starts the amplitude decay. The tone keeps sounding.
	Release(env Envelope)
	// Stop tears the tone down.
	Stop()
}

// ToneProducer allocates and starts tones.
type ToneProducer interface {
	StartTone(freq float64, env Envelope) Tone
}

// Timer is a pending teardown.
type Timer interface {
	Stop() bool
}

// Scheduler runs delayed teardowns.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// voice is a registry entry. Once released it moves to the fading set and
// owns its teardown timer.
type voice struct {
	key      string
	freq     float64
	tone     Tone
	teardown Timer
	done     bool
}
