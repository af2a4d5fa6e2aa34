package audio

import (
	"fmt"
	"math"
	"strings"
)

// Waveform selects the oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

var waveformNames = []string{"sine", "square", "sawtooth", "triangle"}

func (w Waveform) String() string {
	if int(w) < len(waveformNames) {
		return waveformNames[w]
	}
	return fmt.Sprintf("Waveform(%d)", int(w))
}

// ParseWaveform maps a config name onto a Waveform.
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Sine, nil
	}
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return Sine, fmt.Errorf("unknown waveform %q", name)
}

// Node is anything an oscillator or gain can be connected to.
type Node interface {
	// apply processes one sample at time t. ok is false when the signal
	// never reaches the destination.
	apply(x, t float64) (y float64, ok bool)
}

// Destination is the context's output bus.
type Destination struct{}

func (d *Destination) apply(x, _ float64) (float64, bool) {
	return x, true
}

// Gain scales its input by the Gain parameter.
type Gain struct {
	ctx  *Context
	Gain *Param
	out  Node
}

// Connect routes the gain output into n.
func (g *Gain) Connect(n Node) {
	g.ctx.mu.Lock()
	defer g.ctx.mu.Unlock()
	g.out = n
}

// Disconnect detaches the gain output.
func (g *Gain) Disconnect() {
	g.ctx.mu.Lock()
	defer g.ctx.mu.Unlock()
	g.out = nil
}

func (g *Gain) apply(x, t float64) (float64, bool) {
	if g.out == nil {
		return 0, false
	}
	return g.out.apply(x*g.Gain.valueAt(t), t)
}

// Oscillator is a periodic source. It renders only between Start and Stop.
type Oscillator struct {
	ctx       *Context
	Type      Waveform
	Frequency *Param

	phase   float64
	out     Node
	started bool
	stopped bool
}

// Connect routes the oscillator into n.
func (o *Oscillator) Connect(n Node) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.out = n
}

// Disconnect detaches the oscillator output.
func (o *Oscillator) Disconnect() {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.out = nil
}

// Start begins rendering. An oscillator starts at most once; later calls
// are ignored.
func (o *Oscillator) Start() {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if o.started {
		return
	}
	o.started = true
	o.ctx.playing[o] = struct{}{}
}

// Stop ends rendering for good.
func (o *Oscillator) Stop() {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if o.stopped {
		return
	}
	o.stopped = true
	delete(o.ctx.playing, o)
}

func (o *Oscillator) next(t, dt float64) float64 {
	var x float64
	switch o.Type {
	case Square:
		if o.phase < 0.5 {
			x = 1
		} else {
			x = -1
		}
	case Sawtooth:
		x = 2*o.phase - 1
	case Triangle:
		x = 1 - 4*math.Abs(o.phase-0.5)
	default:
		x = math.Sin(2 * math.Pi * o.phase)
	}
	_, o.phase = math.Modf(o.phase + o.Frequency.valueAt(t)*dt)
	if o.phase < 0 {
		o.phase++
	}
	return x
}
