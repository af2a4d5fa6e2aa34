package audio

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/ktye/fft"
)

// silenceFloor is the peak spectral magnitude (per window sample) under
// which the analyzer reports no pitch.
const silenceFloor = 1e-4

// Analyzer keeps the most recent rendered samples and finds their dominant
// frequency.
type Analyzer struct {
	mu         sync.Mutex
	sampleRate float64
	ring       []float64
	pos        int

	fft    fft.FFT
	window []float64
	buf    []complex128
}

// NewAnalyzer creates an analyzer over a window of size samples. size must
// be a power of two.
func NewAnalyzer(sampleRate, size int) (*Analyzer, error) {
	f, err := fft.New(size)
	if err != nil {
		return nil, fmt.Errorf("analyzer window %d: %w", size, err)
	}
	window := make([]float64, size)
	for i := range window {
		window[i] = (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
	}
	return &Analyzer{
		sampleRate: float64(sampleRate),
		ring:       make([]float64, size),
		fft:        f,
		window:     window,
		buf:        make([]complex128, size),
	}, nil
}

// Write appends rendered samples, overwriting the oldest.
func (a *Analyzer) Write(samples []float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range samples {
		a.ring[a.pos] = float64(s)
		a.pos = (a.pos + 1) % len(a.ring)
	}
}

// Peak returns the dominant frequency of the current window. ok is false
// when the window is silent.
func (a *Analyzer) Peak() (freq float64, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.ring)
	for i := 0; i < n; i++ {
		x := a.ring[(a.pos+i)%n] * a.window[i]
		a.buf[i] = complex(x, 0)
	}
	spectrum := a.fft.Transform(a.buf)

	best, bestMag := 0, 0.0
	for k := 1; k < n/2; k++ {
		if m := cmplx.Abs(spectrum[k]); m > bestMag {
			best, bestMag = k, m
		}
	}
	if best == 0 || bestMag/float64(n) < silenceFloor {
		return 0, false
	}

	// Parabolic interpolation between neighbouring bins.
	l, c, r := cmplx.Abs(spectrum[best-1]), bestMag, cmplx.Abs(spectrum[best+1])
	offset := 0.0
	if d := l - 2*c + r; d != 0 {
		offset = 0.5 * (l - r) / d
	}
	return (float64(best) + offset) * a.sampleRate / float64(n), true
}
