// Package mapping turns one event's normalized feature triple into
// concrete musical values: a scale-snapped melody pitch, a linear bass
// pitch, a note duration and the percussive sub-pulses inside it.
package mapping

import (
	"fmt"
	"math"

	"github.com/gpxtone/gpxtone/constants"
	"github.com/gpxtone/gpxtone/model"
	"github.com/gpxtone/gpxtone/resample"
	"github.com/gpxtone/gpxtone/scale"
	"github.com/gpxtone/gpxtone/util"
)

// DurationMode selects how a feature value becomes a note duration.
type DurationMode uint8

const (
	// DurationContinuous interpolates linearly: higher feature value means
	// a shorter note (fast running, short notes).
	DurationContinuous DurationMode = iota

	// DurationQuantized buckets the feature value into canonical note
	// lengths, trading proportional fidelity for musical regularity.
	DurationQuantized
)

// ParseDurationMode converts a CLI/HTTP spelling into a DurationMode.
func ParseDurationMode(s string) (DurationMode, error) {
	switch s {
	case "continuous":
		return DurationContinuous, nil
	case "quantized":
		return DurationQuantized, nil
	}
	return 0, fmt.Errorf("unknown duration mode %q", s)
}

// quantizedDurations are the canonical note lengths in beats, shortest
// first. Band thresholds: top quartile gets the shortest.
var quantizedDurations = [4]float64{0.5, 1, 2, 4}

// Config assigns features to musical roles and fixes the output ranges.
type Config struct {
	MelodySource   model.FeatureSource
	DurationSource model.FeatureSource
	BassSource     model.FeatureSource

	Scale scale.Scale

	MelodyFloor float64 // MIDI pitch at feature value 0
	MelodyRange float64 // semitones spanned by the feature

	BassFloor float64
	BassRange float64

	MinDurationBeats float64
	MaxDurationBeats float64
	DurationMode     DurationMode

	// TempoBPM converts pulse rates (pulses/minute) into beats.
	TempoBPM float64

	// WeakPulseSpeedMPS is the speed above which the off-beat (weak)
	// percussion pulses sound at all.
	WeakPulseSpeedMPS float64
}

// Pulse is one percussion hit inside a note's time span.
type Pulse struct {
	OffsetBeats   float64 // from the note's start, never negative
	DurationBeats float64
	Pitch         uint8
	Velocity      uint8
}

// Params is everything the assembler needs to emit one event.
type Params struct {
	MelodyPitch   uint8
	BassPitch     uint8
	DurationBeats float64
	Pulses        []Pulse
}

type Mapper struct {
	cfg Config
}

func New(cfg Config) *Mapper {
	return &Mapper{cfg: cfg}
}

// featureValue is the explicit source lookup: one normalized value per
// assignable feature.
func featureValue(f resample.Features, src model.FeatureSource) float64 {
	switch src {
	case model.SourceSpeed:
		return f.SpeedNorm
	case model.SourceCadence:
		return f.CadenceNorm
	default:
		return f.ElevationNorm
	}
}

// Map converts one event's features into musical parameters.
func (m *Mapper) Map(f resample.Features) Params {
	var p Params

	melody := featureValue(f, m.cfg.MelodySource)
	raw := m.cfg.MelodyFloor + melody*m.cfg.MelodyRange
	p.MelodyPitch = clampPitch(m.cfg.Scale.Snap(raw))

	bass := featureValue(f, m.cfg.BassSource)
	p.BassPitch = clampPitch(int(m.cfg.BassFloor + math.Round(bass*m.cfg.BassRange)))

	p.DurationBeats = m.duration(featureValue(f, m.cfg.DurationSource))
	p.Pulses = m.pulses(p.DurationBeats, f)
	return p
}

func (m *Mapper) duration(v float64) float64 {
	if m.cfg.DurationMode == DurationQuantized {
		switch {
		case v >= 0.75:
			return quantizedDurations[0]
		case v >= 0.5:
			return quantizedDurations[1]
		case v >= 0.25:
			return quantizedDurations[2]
		default:
			return quantizedDurations[3]
		}
	}
	return m.cfg.MinDurationBeats + (1-v)*(m.cfg.MaxDurationBeats-m.cfg.MinDurationBeats)
}

// pulses lays out foot-strike percussion inside the note: the smoothed
// cadence in steps/minute doubles into pulses/minute (left and right
// foot), which a tempo of TempoBPM beats/minute converts into a pulse
// length in beats. Even pulses carry the cadence-mapped timbre; odd
// pulses are the weak off-beats and only sound above the speed threshold.
func (m *Mapper) pulses(durationBeats float64, f resample.Features) []Pulse {
	pulsesPerMinute := f.Cadence * 2
	if pulsesPerMinute <= 0 {
		return nil
	}
	beatsPerPulse := m.cfg.TempoBPM / pulsesPerMinute
	if beatsPerPulse <= 0 {
		return nil
	}

	count := int(durationBeats / beatsPerPulse)
	if count < 1 {
		return nil
	}

	span := constants.MaxPercussionPitch - constants.MinPercussionPitch
	strongPitch := clampPitch(constants.MinPercussionPitch + int(math.Round(f.CadenceNorm*float64(span))))

	pulses := make([]Pulse, 0, count)
	for i := 0; i < count; i++ {
		p := Pulse{
			OffsetBeats:   float64(i) * beatsPerPulse,
			DurationBeats: beatsPerPulse,
		}
		if i%2 == 0 {
			p.Pitch = strongPitch
			p.Velocity = constants.StrongPulseVelocity
		} else {
			if f.SpeedMPS <= m.cfg.WeakPulseSpeedMPS {
				continue
			}
			p.Pitch = constants.ClosedHiHat
			p.Velocity = constants.WeakPulseVelocity
		}
		pulses = append(pulses, p)
	}
	return pulses
}

func clampPitch(p int) uint8 {
	return uint8(util.Clamp(p, 0, 127))
}
