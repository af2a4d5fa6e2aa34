// Package keyboard turns key presses into voices: it owns the frequency
// table, the voice registry, the sustain gate and the transposition state
// of one playing session.
package keyboard

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"decade-synth/debug"
)

// Special key labels.
const (
	KeySustain = " "
	KeyShift   = "Shift"
	KeyControl = "Control"
)

const (
	// DefaultPolyphony caps concurrently held notes.
	DefaultPolyphony = 10
	// DefaultStartDecade is the decade a session opens in.
	DefaultStartDecade = 3
	// referenceDecade is the decade the sounding pitch is centred on.
	referenceDecade = 4
)

// KeyEvent is a physical key transition as reported by a frontend.
type KeyEvent struct {
	Key    string
	Repeat bool
	Shift  bool
	Ctrl   bool
}

// Options configures a Controller. A zero Tuning, Envelope or Polyphony
// and nil collaborators take defaults; StartDecade is used as given.
type Options struct {
	Tuning      Tuning
	Envelope    Envelope
	Polyphony   int
	StartDecade int
	Tones       ToneProducer
	Display     Display
	Scheduler   Scheduler
}

// Controller is one keyboard session.
type Controller struct {
	mu sync.Mutex

	tuning    Tuning
	env       Envelope
	polyphony int
	tones     ToneProducer
	display   Display
	sched     Scheduler

	decade    int
	sustained bool
	table     FrequencyTable

	voices   map[string]*voice // key is held or sounding
	deferred map[string]struct{}
	fading   map[*voice]struct{}
}

// NewController builds the frequency table for the start decade and
// publishes the initial labels and status.
func NewController(opts Options) *Controller {
	if opts.Tuning.ReferenceFreq <= 0 {
		opts.Tuning = DefaultTuning()
	}
	if opts.Envelope == (Envelope{}) {
		opts.Envelope = DefaultEnvelope()
	}
	if opts.Polyphony <= 0 {
		opts.Polyphony = DefaultPolyphony
	}
	if opts.Display == nil {
		opts.Display = NopDisplay{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = realScheduler{}
	}
	if opts.Tones == nil {
		opts.Tones = silentTones{}
	}

	c := &Controller{
		tuning:    opts.Tuning,
		env:       opts.Envelope,
		polyphony: opts.Polyphony,
		tones:     opts.Tones,
		display:   opts.Display,
		sched:     opts.Scheduler,
		decade:    clampDecade(opts.StartDecade),
		voices:    make(map[string]*voice),
		deferred:  make(map[string]struct{}),
		fading:    make(map[*voice]struct{}),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebuild()
	c.display.SetDecade(c.decade)
	c.refresh()
	return c
}

// KeyDown handles a key press. Auto-repeats are ignored.
func (c *Controller) KeyDown(ev KeyEvent) {
	if ev.Repeat {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := normalize(ev.Key)
	if _, ok := c.table.Lookup(key); ok {
		c.noteOn(key)
		c.display.SetHighlight(key, true)
	}

	if ev.Shift && ev.Key == KeyShift {
		c.transpose(-1)
	}
	if ev.Ctrl && ev.Key == KeyControl {
		c.transpose(1)
	}

	if key == KeySustain {
		c.sustained = true
		c.display.SetHighlight(KeySustain, true)
		debug.Log("sustain", "held")
	}

	c.refresh()
}

// KeyUp handles a key release.
func (c *Controller) KeyUp(ev KeyEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := normalize(ev.Key)
	if _, ok := c.table.Lookup(key); ok {
		if c.sustained {
			c.deferred[key] = struct{}{}
		} else {
			delete(c.deferred, key)
			c.noteOff(key)
			c.display.SetHighlight(key, false)
		}
	}

	if key == KeySustain {
		c.releaseSustain()
	}

	c.refresh()
}

// NoteOn starts a voice for key. It reports false when the key is
// unmapped, already sounding, or the polyphony cap is reached.
func (c *Controller) NoteOn(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.noteOn(normalize(key))
}

// NoteOff releases the voice for key. It reports false when none is active.
func (c *Controller) NoteOff(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.noteOff(normalize(key))
}

// PressSustain engages the sustain gate.
func (c *Controller) PressSustain() {
	c.KeyDown(KeyEvent{Key: KeySustain})
}

// ReleaseSustain disengages the sustain gate and releases deferred keys.
func (c *Controller) ReleaseSustain() {
	c.KeyUp(KeyEvent{Key: KeySustain})
}

// Transpose moves the decade by delta, clamped to [MinDecade, MaxDecade],
// and returns the new decade.
func (c *Controller) Transpose(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transpose(delta)
	return c.decade
}

// Close tears down every voice at once, cancelling pending release timers.
func (c *Controller) Close() {
	c.mu.Lock()
	var tones []Tone
	for _, v := range c.voices {
		v.done = true
		tones = append(tones, v.tone)
	}
	for v := range c.fading {
		if v.teardown != nil {
			v.teardown.Stop()
		}
		v.done = true
		tones = append(tones, v.tone)
	}
	c.voices = make(map[string]*voice)
	c.fading = make(map[*voice]struct{})
	c.deferred = make(map[string]struct{})
	c.refresh()
	c.mu.Unlock()

	for _, t := range tones {
		t.Stop()
	}
	debug.Log("voice", "closed, %d voices torn down", len(tones))
}

// Status returns the status line.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status()
}

func (c *Controller) Decade() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decade
}

func (c *Controller) Sustained() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sustained
}

func (c *Controller) Polyphony() int {
	return c.polyphony
}

// ActiveCount returns the number of held notes.
func (c *Controller) ActiveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.voices)
}

// Active reports whether key has a registered voice.
func (c *Controller) Active(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.voices[normalize(key)]
	return ok
}

// Fading returns the number of released voices awaiting teardown.
func (c *Controller) Fading() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fading)
}

// Deferred returns the keys whose release waits on the sustain gate, sorted.
func (c *Controller) Deferred() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.deferred))
	for k := range c.deferred {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Frequency returns the base frequency of key in the current table.
func (c *Controller) Frequency(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Lookup(normalize(key))
}

// SoundingFrequency returns the frequency a note-on for key would play.
func (c *Controller) SoundingFrequency(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sounding(normalize(key))
}

func (c *Controller) sounding(key string) (float64, bool) {
	base, ok := c.table.Lookup(key)
	if !ok {
		return 0, false
	}
	return base * math.Pow(2, float64(c.decade-referenceDecade)), true
}

func (c *Controller) noteOn(key string) bool {
	if len(c.voices) >= c.polyphony {
		return false
	}
	if _, ok := c.voices[key]; ok {
		return false
	}
	freq, ok := c.sounding(key)
	if !ok {
		return false
	}

	c.voices[key] = &voice{
		key:  key,
		freq: freq,
		tone: c.tones.StartTone(freq, c.env),
	}
	debug.Log("voice", "on %q %.2f Hz (%d/%d)", key, freq, len(c.voices), c.polyphony)
	c.refresh()
	return true
}

func (c *Controller) noteOff(key string) bool {
	v, ok := c.voices[key]
	if !ok {
		return false
	}

	v.tone.Release(c.env)
	c.fading[v] = struct{}{}
	v.teardown = c.sched.AfterFunc(c.env.Release, func() { c.finish(v) })
	delete(c.voices, key)

	c.display.SetHighlight(key, false)
	debug.Log("voice", "off %q (%d/%d)", key, len(c.voices), c.polyphony)
	c.refresh()
	return true
}

// finish runs when a released voice has faded out.
func (c *Controller) finish(v *voice) {
	c.mu.Lock()
	if v.done {
		c.mu.Unlock()
		return
	}
	v.done = true
	delete(c.fading, v)
	c.mu.Unlock()

	v.tone.Stop()
	debug.Log("voice", "teardown %q", v.key)
}

func (c *Controller) releaseSustain() {
	c.sustained = false
	keys := make([]string, 0, len(c.deferred))
	for k := range c.deferred {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.noteOff(k)
	}
	c.deferred = make(map[string]struct{})
	c.display.SetHighlight(KeySustain, false)
	debug.Log("sustain", "released, flushed %d", len(keys))
}

func (c *Controller) transpose(delta int) {
	c.decade = clampDecade(c.decade + delta)
	c.display.SetDecade(c.decade)
	c.rebuild()
	debug.Log("decade", "now %d", c.decade)
	c.refresh()
}

func (c *Controller) rebuild() {
	c.table = BuildTable(c.decade, c.tuning)
	for key, freq := range c.table {
		c.display.SetFrequencyLabel(key, Label(freq))
	}
}

func (c *Controller) refresh() {
	c.display.SetStatus(c.status())
}

func (c *Controller) status() string {
	return fmt.Sprintf("Active notes: %d/%d. Decade: %d. Sustain: %t",
		len(c.voices), c.polyphony, c.decade, c.sustained)
}

func clampDecade(d int) int {
	return max(MinDecade, min(MaxDecade, d))
}

func normalize(key string) string {
	if key == KeyShift || key == KeyControl {
		return key
	}
	return strings.ToLower(key)
}

type silentTones struct{}

func (silentTones) StartTone(float64, Envelope) Tone { return silentTone{} }

type silentTone struct{}

func (silentTone) Release(Envelope) {}
func (silentTone) Stop()            {}
