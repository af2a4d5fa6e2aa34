package keyboard

import "decade-synth/config"

// OptionsFromConfig maps the tuning and voice sections onto controller
// options. Collaborators are left for the caller.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Tuning: Tuning{
			ReferenceFreq: cfg.Tuning.ReferenceFreq,
			ReferenceStep: cfg.Tuning.ReferenceStep,
		},
		Envelope: Envelope{
			Attack:    cfg.Voice.Attack(),
			Release:   cfg.Voice.Release(),
			PitchDrop: cfg.Voice.PitchDrop,
			Floor:     cfg.Voice.ReleaseFloor,
		},
		Polyphony:   cfg.Voice.Polyphony,
		StartDecade: cfg.Tuning.StartDecade,
	}
}
