// Package resample walks a trail in distance order, emitting one event
// each time cumulative 3D distance crosses a step threshold, and derives
// the physical features (speed, smoothed cadence) of each event.
package resample

import (
	"errors"
	"math"

	"github.com/gpxtone/gpxtone/geo"
	"github.com/gpxtone/gpxtone/model"
)

// ErrNonPositiveStep is returned when a caller supplies an explicit
// distance step that is zero or negative.
var ErrNonPositiveStep = errors.New("distance step must be positive")

// MinStepMeters is the floor for derived steps. Without it a very short
// or very slow trail degenerates into meter-by-meter sampling.
const MinStepMeters = 5.0

// DeriveStep computes the sampling step from a target song length: one
// note per beat, so the note budget is minutes times tempo.
func DeriveStep(totalDistanceMeters, targetMinutes, tempoBPM float64) float64 {
	notesNeeded := targetMinutes * tempoBPM
	if notesNeeded <= 0 {
		return MinStepMeters
	}
	return math.Max(MinStepMeters, totalDistanceMeters/notesNeeded)
}

// Event is one accepted sample boundary.
type Event struct {
	Point model.Point
	// DistanceSinceLast is the 3D distance accumulated since the previous
	// accepted event (or since the trail start for the first one).
	DistanceSinceLast float64
}

// Resampler yields the points at which cumulative distance crosses the
// current step threshold. The threshold starts at 0, so the first
// well-formed pair always emits an event no matter how short its
// increment; afterwards events are at least one step apart. Points
// missing elevation or timestamp are skipped entirely: they neither
// contribute distance nor end the walk, which keeps sparse or noisy
// recordings usable.
type Resampler struct {
	points     []model.Point
	step       float64
	idx        int
	prev       *model.Point // last well-formed point seen
	cumulative float64
	threshold  float64
	sinceLast  float64
}

// New validates the step and positions the walk at the trail start.
func New(points []model.Point, stepMeters float64) (*Resampler, error) {
	if stepMeters <= 0 {
		return nil, ErrNonPositiveStep
	}
	return &Resampler{points: points, step: stepMeters}, nil
}

func wellFormed(p model.Point) bool {
	return p.Elevation != nil && p.Time != nil
}

// Next returns the next accepted event, or ok=false at the end of the
// trail.
func (r *Resampler) Next() (Event, bool) {
	for r.idx < len(r.points) {
		curr := r.points[r.idx]
		r.idx++

		if !wellFormed(curr) {
			continue
		}
		if r.prev == nil {
			// First well-formed point anchors the walk but is not an
			// event by itself.
			p := curr
			r.prev = &p
			continue
		}

		increment := geo.Distance3D(*r.prev, curr)
		r.cumulative += increment
		r.sinceLast += increment
		p := curr
		r.prev = &p

		if r.cumulative >= r.threshold {
			ev := Event{Point: curr, DistanceSinceLast: r.sinceLast}
			// Re-anchor past the current position: a single long jump must
			// not leave stale thresholds behind, consecutive events stay at
			// least one step apart.
			r.threshold = r.cumulative + r.step
			r.sinceLast = 0
			return ev, true
		}
	}
	return Event{}, false
}
