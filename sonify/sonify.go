// Package sonify is the pipeline façade: parsed trail in, finished score
// out. One synchronous pass, no I/O, no retained state between calls.
package sonify

import (
	"fmt"

	"github.com/gpxtone/gpxtone/geo"
	"github.com/gpxtone/gpxtone/mapping"
	"github.com/gpxtone/gpxtone/model"
	"github.com/gpxtone/gpxtone/resample"
	"github.com/gpxtone/gpxtone/score"
)

// Step resolves the sampling step for a trail under this configuration.
func (c Config) Step(g geo.Geometry) float64 {
	if c.StepMeters != nil {
		return *c.StepMeters
	}
	return resample.DeriveStep(g.TotalDistanceMeters, c.TargetDurationMinutes, c.TempoBPM)
}

// Sonify converts a trail into a three-track score. Pure function of its
// inputs: all smoothing state is created here and dies here, so
// concurrent calls on different trails are safe.
func Sonify(trail model.Trail, cfg Config) (*model.Score, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	geom, err := geo.Compute(trail.Points)
	if err != nil {
		return nil, fmt.Errorf("computing trail geometry: %w", err)
	}

	rs, err := resample.New(trail.Points, cfg.Step(geom))
	if err != nil {
		return nil, err
	}

	extractor := resample.NewExtractor(cfg.featureConfig(), geom)
	mapper := mapping.New(cfg.mappingConfig())
	asm := score.New(cfg.TempoBPM, cfg.MaxScoreBeats)

	for {
		ev, ok := rs.Next()
		if !ok {
			break
		}
		params := mapper.Map(extractor.Extract(ev))
		if !asm.Fits(params.DurationBeats) {
			break
		}
		asm.Add(params)
	}

	return asm.Score(), nil
}
