//go:build !headless

package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"decade-synth/debug"
)

// OutputOptions configures the device stream.
type OutputOptions struct {
	BufferSize time.Duration
	Volume     float64
}

// Output streams a Context to the default audio device as mono float32.
type Output struct {
	graph    *Context
	analyzer *Analyzer
	ctx      *oto.Context
	player   *oto.Player
	samples  []float32
	started  bool
	mu       sync.Mutex
}

// NewOutput opens the audio device. analyzer may be nil.
func NewOutput(graph *Context, analyzer *Analyzer, opts OutputOptions) (*Output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   graph.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	o := &Output{
		graph:    graph,
		analyzer: analyzer,
		ctx:      ctx,
	}
	o.player = ctx.NewPlayer(o)
	o.player.SetVolume(opts.Volume)
	return o, nil
}

// Read renders the next block for the device.
func (o *Output) Read(p []byte) (int, error) {
	n := len(p) / 4
	if cap(o.samples) < n {
		o.samples = make([]float32, n)
	}
	samples := o.samples[:n]
	o.graph.Render(samples)
	debug.LogEvery(200, "audio", "rendered %d frames, %d playing", n, o.graph.Playing())
	if o.analyzer != nil {
		o.analyzer.Write(samples)
	}
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

// Start begins playback.
func (o *Output) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.started {
		o.player.Play()
		o.started = true
	}
}

// Close stops playback and releases the player.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = false
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}
