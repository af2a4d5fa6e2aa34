package keyboard

import (
	"decade-synth/audio"
)

// GraphTones plays tones on an audio.Context: one oscillator into one gain
// node per tone.
type GraphTones struct {
	ctx      *audio.Context
	waveform audio.Waveform
}

func NewGraphTones(ctx *audio.Context, waveform audio.Waveform) *GraphTones {
	return &GraphTones{ctx: ctx, waveform: waveform}
}

// StartTone starts an oscillator at PitchDrop times freq gliding down to
// freq over the pitch glide, under a linear attack from silence to the
// gain node's nominal level.
func (g *GraphTones) StartTone(freq float64, env Envelope) Tone {
	osc := g.ctx.NewOscillator()
	gain := g.ctx.NewGain()

	osc.Type = g.waveform
	osc.Frequency.SetValue(freq * env.PitchDrop)
	osc.Connect(gain)
	gain.Connect(g.ctx.Destination())

	now := g.ctx.CurrentTime()
	nominal := gain.Gain.Value()
	gain.Gain.SetValueAtTime(0, now)
	gain.Gain.LinearRampToValueAtTime(nominal, now+env.Attack.Seconds())
	osc.Frequency.ExponentialRampToValueAtTime(freq, now+env.PitchGlide().Seconds())

	osc.Start()
	return &graphTone{ctx: g.ctx, osc: osc, gain: gain}
}

type graphTone struct {
	ctx  *audio.Context
	osc  *audio.Oscillator
	gain *audio.Gain
}

func (t *graphTone) Release(env Envelope) {
	now := t.ctx.CurrentTime()
	t.gain.Gain.SetValueAtTime(t.gain.Gain.Value(), now)
	t.gain.Gain.ExponentialRampToValueAtTime(env.Floor, now+env.Release.Seconds())
}

func (t *graphTone) Stop() {
	t.osc.Stop()
	t.osc.Disconnect()
	t.gain.Disconnect()
}
