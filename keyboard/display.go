package keyboard

import "sync"

// Display receives everything the controller wants shown.
type Display interface {
	SetFrequencyLabel(key, label string)
	SetDecade(decade int)
	SetStatus(status string)
	SetHighlight(key string, on bool)
}

// NopDisplay discards all updates.
type NopDisplay struct{}

func (NopDisplay) SetFrequencyLabel(string, string) {}
func (NopDisplay) SetDecade(int)                    {}
func (NopDisplay) SetStatus(string)                 {}
func (NopDisplay) SetHighlight(string, bool)        {}

// Board is an in-memory Display that frontends render from.
type Board struct {
	mu        sync.RWMutex
	labels    map[string]string
	highlight map[string]bool
	decade    int
	status    string
}

func NewBoard() *Board {
	return &Board{
		labels:    make(map[string]string),
		highlight: make(map[string]bool),
	}
}

func (b *Board) SetFrequencyLabel(key, label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.labels[key] = label
}

func (b *Board) SetDecade(decade int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.decade = decade
}

func (b *Board) SetStatus(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
}

func (b *Board) SetHighlight(key string, on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if on {
		b.highlight[key] = true
	} else {
		delete(b.highlight, key)
	}
}

// Label returns the frequency label shown for key, if any.
func (b *Board) Label(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l, ok := b.labels[key]
	return l, ok
}

func (b *Board) Highlighted(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.highlight[key]
}

func (b *Board) Decade() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.decade
}

func (b *Board) Status() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}
