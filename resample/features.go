package resample

import (
	"time"

	"github.com/gpxtone/gpxtone/geo"
	"github.com/gpxtone/gpxtone/util"
)

// FeatureConfig holds the physical-range knobs for feature extraction.
type FeatureConfig struct {
	// DefaultSpeedMPS is assumed for the very first event, which has no
	// preceding timestamp to measure against.
	DefaultSpeedMPS float64

	// MaxSpeedMPS caps speed normalization and substitutes for a
	// zero-or-negative elapsed interval.
	MaxSpeedMPS float64

	// Cadence readings and estimates are clamped to [MinCadence, MaxCadence]
	// steps per minute.
	MinCadence float64
	MaxCadence float64

	// Without a sensor reading, cadence is estimated as
	// CadenceBase + speed*CadenceSlope.
	CadenceBase  float64
	CadenceSlope float64

	// SmoothingAlpha weights the newest cadence sample in the exponential
	// moving average; (1-alpha) weights the prior smoothed state.
	SmoothingAlpha float64
}

// Features is the normalized triple (plus raw values) for one event.
type Features struct {
	ElevationNorm float64
	SpeedMPS      float64
	SpeedNorm     float64
	Cadence       float64 // smoothed, steps per minute
	CadenceNorm   float64
}

// Extractor derives per-event features. It owns the cadence smoothing
// state for exactly one trail's processing, so every invocation of the
// pipeline must construct a fresh one.
type Extractor struct {
	cfg      FeatureConfig
	geom     geo.Geometry
	lastTime *time.Time
	smoothed float64
}

func NewExtractor(cfg FeatureConfig, geom geo.Geometry) *Extractor {
	return &Extractor{cfg: cfg, geom: geom}
}

// Extract computes the features of one accepted event and advances the
// smoothing state.
func (e *Extractor) Extract(ev Event) Features {
	var f Features

	f.SpeedMPS = e.speed(ev)

	raw := e.rawCadence(ev, f.SpeedMPS)
	if e.lastTime == nil {
		e.smoothed = raw
	} else {
		a := e.cfg.SmoothingAlpha
		e.smoothed = a*raw + (1-a)*e.smoothed
	}
	f.Cadence = e.smoothed

	f.ElevationNorm = util.Normalize(*ev.Point.Elevation, e.geom.MinElevation, e.geom.MaxElevation)
	f.SpeedNorm = util.Normalize(f.SpeedMPS, 0, e.cfg.MaxSpeedMPS)
	f.CadenceNorm = util.Normalize(f.Cadence, e.cfg.MinCadence, e.cfg.MaxCadence)

	t := *ev.Point.Time
	e.lastTime = &t
	return f
}

func (e *Extractor) speed(ev Event) float64 {
	if e.lastTime == nil {
		return e.cfg.DefaultSpeedMPS
	}
	elapsed := ev.Point.Time.Sub(*e.lastTime).Seconds()
	if elapsed <= 0 {
		return e.cfg.MaxSpeedMPS
	}
	return ev.DistanceSinceLast / elapsed
}

func (e *Extractor) rawCadence(ev Event, speed float64) float64 {
	if ev.Point.Cadence != nil {
		return util.Clamp(*ev.Point.Cadence, e.cfg.MinCadence, e.cfg.MaxCadence)
	}
	estimated := e.cfg.CadenceBase + speed*e.cfg.CadenceSlope
	return util.Clamp(estimated, e.cfg.MinCadence, e.cfg.MaxCadence)
}
