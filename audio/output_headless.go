//go:build headless

package audio

import (
	"sync"
	"time"
)

type OutputOptions struct {
	BufferSize time.Duration
	Volume     float64
}

// Output renders into the analyzer on a ticker instead of a device.
type Output struct {
	graph    *Context
	analyzer *Analyzer
	block    time.Duration
	stop     chan struct{}
	once     sync.Once
	mu       sync.Mutex
	started  bool
}

func NewOutput(graph *Context, analyzer *Analyzer, opts OutputOptions) (*Output, error) {
	block := opts.BufferSize
	if block <= 0 {
		block = 20 * time.Millisecond
	}
	return &Output{
		graph:    graph,
		analyzer: analyzer,
		block:    block,
		stop:     make(chan struct{}),
	}, nil
}

func (o *Output) Read(p []byte) (int, error) {
	samples := make([]float32, len(p)/4)
	o.graph.Render(samples)
	if o.analyzer != nil {
		o.analyzer.Write(samples)
	}
	return len(samples) * 4, nil
}

func (o *Output) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started {
		return
	}
	o.started = true
	go o.loop()
}

func (o *Output) loop() {
	ticker := time.NewTicker(o.block)
	defer ticker.Stop()
	buf := make([]byte, 4*int(o.block.Seconds()*float64(o.graph.SampleRate())))
	for {
		select {
		case <-o.stop:
			return
		case <-ticker.C:
			o.Read(buf)
		}
	}
}

func (o *Output) Close() error {
	o.once.Do(func() { close(o.stop) })
	return nil
}
