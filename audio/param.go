package audio

import "math"

type eventKind int

const (
	setValue eventKind = iota
	linearRamp
	exponentialRamp
)

// event is one automation point. Ramps run from the previous event up to
// (time, value).
type event struct {
	kind  eventKind
	value float64
	time  float64
}

// Param is an automatable node parameter (gain, frequency). Values are
// evaluated against the owning context's clock.
type Param struct {
	ctx    *Context
	value  float64
	events []event
}

func newParam(ctx *Context, value float64) *Param {
	return &Param{ctx: ctx, value: value}
}

// Value returns the parameter value at the context's current time.
func (p *Param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.valueAt(p.ctx.now())
}

// SetValue sets the value from now on. Equivalent to SetValueAtTime(v, now).
func (p *Param) SetValue(v float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	if len(p.events) == 0 {
		p.value = v
	}
	p.insert(event{kind: setValue, value: v, time: p.ctx.now()})
}

// SetValueAtTime jumps to v at time t (seconds on the context clock).
func (p *Param) SetValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(event{kind: setValue, value: v, time: t})
}

// LinearRampToValueAtTime ramps linearly from the previous event to v at t.
func (p *Param) LinearRampToValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.anchor()
	p.insert(event{kind: linearRamp, value: v, time: t})
}

// ExponentialRampToValueAtTime ramps exponentially from the previous event
// to v at t. A ramp between values of different sign, or starting at zero,
// holds the start value until t.
func (p *Param) ExponentialRampToValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.anchor()
	p.insert(event{kind: exponentialRamp, value: v, time: t})
}

// anchor pins the current value at now when a ramp has nothing to start from.
func (p *Param) anchor() {
	if len(p.events) == 0 {
		p.events = append(p.events, event{kind: setValue, value: p.value, time: p.ctx.now()})
	}
}

func (p *Param) insert(e event) {
	i := len(p.events)
	for i > 0 && p.events[i-1].time > e.time {
		i--
	}
	p.events = append(p.events, event{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
}

func (p *Param) valueAt(t float64) float64 {
	v, vt := p.value, math.Inf(-1)
	for _, e := range p.events {
		if e.time <= t {
			v, vt = e.value, e.time
			continue
		}
		switch e.kind {
		case linearRamp:
			if math.IsInf(vt, -1) {
				return v
			}
			frac := (t - vt) / (e.time - vt)
			return v + (e.value-v)*frac
		case exponentialRamp:
			if math.IsInf(vt, -1) || v == 0 || v*e.value < 0 {
				return v
			}
			frac := (t - vt) / (e.time - vt)
			return v * math.Pow(e.value/v, frac)
		}
		return v
	}
	return v
}

// prune folds every event at or before t into a single anchor so the event
// list stays short on long-lived voices.
func (p *Param) prune(t float64) {
	k := -1
	for i, e := range p.events {
		if e.time > t {
			break
		}
		k = i
	}
	if k < 0 {
		return
	}
	last := p.events[k]
	p.value = last.value
	if k == len(p.events)-1 {
		p.events = p.events[:0]
		return
	}
	p.events[0] = event{kind: setValue, value: last.value, time: last.time}
	p.events = append(p.events[:1], p.events[k+1:]...)
}
