package keyboard

import (
	"sort"
	"time"
)

type fakeTone struct {
	freq     float64
	released int
	stopped  int
}

func (t *fakeTone) Release(Envelope) { t.released++ }
func (t *fakeTone) Stop()            { t.stopped++ }

type fakeTones struct {
	started []*fakeTone
}

func (f *fakeTones) StartTone(freq float64, _ Envelope) Tone {
	t := &fakeTone{freq: freq}
	f.started = append(f.started, t)
	return t
}

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler fires timers only when the test advances its clock.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: s.now + d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.now += d
	due := make([]*fakeTimer, 0)
	for _, t := range s.timers {
		if !t.fired && !t.stopped && t.at <= s.now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fired = true
		t.fn()
	}
}

func (s *fakeScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// statusLog counts status updates on top of a Board.
type statusLog struct {
	*Board
	statuses []string
}

func (s *statusLog) SetStatus(status string) {
	s.statuses = append(s.statuses, status)
	s.Board.SetStatus(status)
}

type harness struct {
	ctrl    *Controller
	tones   *fakeTones
	sched   *fakeScheduler
	display *statusLog
}

func newHarness(startDecade int) *harness {
	h := &harness{
		tones:   &fakeTones{},
		sched:   &fakeScheduler{},
		display: &statusLog{Board: NewBoard()},
	}
	h.ctrl = NewController(Options{
		StartDecade: startDecade,
		Tones:       h.tones,
		Display:     h.display,
		Scheduler:   h.sched,
	})
	return h
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		h.ctrl.KeyDown(KeyEvent{Key: k})
	}
}

func (h *harness) release(keys ...string) {
	for _, k := range keys {
		h.ctrl.KeyUp(KeyEvent{Key: k})
	}
}
