// Package audio is a small software audio graph: oscillators feeding gain
// nodes feeding a destination, with sample-accurate parameter automation.
// The device stream pulls rendered samples from Context.Render.
package audio

import (
	"sync"
)

// DefaultSampleRate is used when a context is created with a non-positive rate.
const DefaultSampleRate = 44100

// Context owns the sample clock and every node created from it.
type Context struct {
	mu         sync.Mutex
	sampleRate float64
	frame      int64
	playing    map[*Oscillator]struct{}
	dest       *Destination
}

// NewContext creates a context rendering at sampleRate Hz.
func NewContext(sampleRate int) *Context {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	c := &Context{
		sampleRate: float64(sampleRate),
		playing:    make(map[*Oscillator]struct{}),
	}
	c.dest = &Destination{}
	return c
}

// SampleRate returns the render rate in Hz.
func (c *Context) SampleRate() int {
	return int(c.sampleRate)
}

// CurrentTime returns the context clock in seconds (frames rendered / rate).
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

func (c *Context) now() float64 {
	return float64(c.frame) / c.sampleRate
}

// Destination is the final mix bus.
func (c *Context) Destination() *Destination {
	return c.dest
}

// NewOscillator creates a stopped sine oscillator at 440 Hz.
func (c *Context) NewOscillator() *Oscillator {
	return &Oscillator{
		ctx:       c,
		Type:      Sine,
		Frequency: newParam(c, 440),
	}
}

// NewGain creates a gain node with unity gain.
func (c *Context) NewGain() *Gain {
	return &Gain{
		ctx:  c,
		Gain: newParam(c, 1),
	}
}

// Playing reports how many oscillators are started and not yet stopped.
func (c *Context) Playing() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.playing)
}

// Render fills out with the next len(out) mono samples and advances the clock.
func (c *Context) Render(out []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dt := 1 / c.sampleRate
	for i := range out {
		t := c.now()
		var sum float64
		for osc := range c.playing {
			x := osc.next(t, dt)
			if osc.out == nil {
				continue
			}
			if y, ok := osc.out.apply(x, t); ok {
				sum += y
			}
		}
		out[i] = float32(sum)
		c.frame++
	}

	t := c.now()
	for osc := range c.playing {
		osc.Frequency.prune(t)
		for n := osc.out; n != nil; {
			g, ok := n.(*Gain)
			if !ok {
				break
			}
			g.Gain.prune(t)
			n = g.out
		}
	}
}
