package sonify

import (
	"errors"
	"fmt"

	"github.com/gpxtone/gpxtone/mapping"
	"github.com/gpxtone/gpxtone/model"
	"github.com/gpxtone/gpxtone/resample"
	"github.com/gpxtone/gpxtone/scale"
)

// Config is every knob the pipeline recognizes. Zero values are not
// meaningful; start from Default() and override.
type Config struct {
	// TempoBPM is the score tempo in beats per minute.
	TempoBPM float64

	// TargetDurationMinutes sizes the sampling step so the song lands
	// near this length. Ignored when StepMeters is set.
	TargetDurationMinutes float64

	// StepMeters, when non-nil, is an explicit sampling step and must be
	// positive. When nil the step is derived from TargetDurationMinutes
	// and TempoBPM, floored at resample.MinStepMeters.
	StepMeters *float64

	// Source assignment: which physical feature drives which musical role.
	MelodySource   model.FeatureSource
	DurationSource model.FeatureSource
	BassSource     model.FeatureSource

	// DurationMode selects continuous interpolation or canonical-length
	// quantization for note durations.
	DurationMode mapping.DurationMode

	Scale scale.Scale

	MelodyFloor float64
	MelodyRange float64
	BassFloor   float64
	BassRange   float64

	MinDurationBeats float64
	MaxDurationBeats float64

	// SmoothingAlpha is the EMA weight for new cadence samples, in (0,1].
	SmoothingAlpha float64

	DefaultSpeedMPS float64
	MaxSpeedMPS     float64

	MinCadence float64
	MaxCadence float64

	// Estimated cadence when no sensor reading exists:
	// CadenceBase + speed*CadenceSlope, then clamped.
	CadenceBase  float64
	CadenceSlope float64

	WeakPulseSpeedMPS float64

	// MaxScoreBeats is the hard ceiling on accumulated musical time,
	// a guard against runaway trails.
	MaxScoreBeats float64
}

// Default returns the stock configuration: elevation drives the melody,
// speed the note durations, cadence the bass, pentatonic snapping.
func Default() Config {
	return Config{
		TempoBPM:              120,
		TargetDurationMinutes: 3,
		MelodySource:          model.SourceElevation,
		DurationSource:        model.SourceSpeed,
		BassSource:            model.SourceCadence,
		DurationMode:          mapping.DurationContinuous,
		Scale:                 scale.PentatonicMajor,
		MelodyFloor:           48, // C3
		MelodyRange:           24,
		BassFloor:             28, // E1
		BassRange:             16,
		MinDurationBeats:      0.5,
		MaxDurationBeats:      4,
		SmoothingAlpha:        0.3,
		DefaultSpeedMPS:       1.67,
		MaxSpeedMPS:           3,
		MinCadence:            60,
		MaxCadence:            200,
		CadenceBase:           100,
		CadenceSlope:          20,
		WeakPulseSpeedMPS:     2.2,
		MaxScoreBeats:         512,
	}
}

// Validate rejects configurations the pipeline cannot run with. The
// explicit-step check happens here, before any iteration begins.
func (c Config) Validate() error {
	if c.TempoBPM <= 0 {
		return errors.New("tempo must be positive")
	}
	if c.StepMeters != nil && *c.StepMeters <= 0 {
		return resample.ErrNonPositiveStep
	}
	if c.StepMeters == nil && c.TargetDurationMinutes <= 0 {
		return errors.New("either an explicit step or a positive target duration is required")
	}
	if c.SmoothingAlpha <= 0 || c.SmoothingAlpha > 1 {
		return fmt.Errorf("smoothing alpha %v outside (0,1]", c.SmoothingAlpha)
	}
	if len(c.Scale) == 0 {
		return errors.New("scale must have at least one note")
	}
	if c.MinDurationBeats <= 0 || c.MaxDurationBeats < c.MinDurationBeats {
		return errors.New("note duration range is invalid")
	}
	if c.MaxScoreBeats <= 0 {
		return errors.New("max score beats must be positive")
	}
	return nil
}

func (c Config) featureConfig() resample.FeatureConfig {
	return resample.FeatureConfig{
		DefaultSpeedMPS: c.DefaultSpeedMPS,
		MaxSpeedMPS:     c.MaxSpeedMPS,
		MinCadence:      c.MinCadence,
		MaxCadence:      c.MaxCadence,
		CadenceBase:     c.CadenceBase,
		CadenceSlope:    c.CadenceSlope,
		SmoothingAlpha:  c.SmoothingAlpha,
	}
}

func (c Config) mappingConfig() mapping.Config {
	return mapping.Config{
		MelodySource:      c.MelodySource,
		DurationSource:    c.DurationSource,
		BassSource:        c.BassSource,
		Scale:             c.Scale,
		MelodyFloor:       c.MelodyFloor,
		MelodyRange:       c.MelodyRange,
		BassFloor:         c.BassFloor,
		BassRange:         c.BassRange,
		MinDurationBeats:  c.MinDurationBeats,
		MaxDurationBeats:  c.MaxDurationBeats,
		DurationMode:      c.DurationMode,
		TempoBPM:          c.TempoBPM,
		WeakPulseSpeedMPS: c.WeakPulseSpeedMPS,
	}
}
