// Package score accumulates note events into the final multi-track score.
// Pure bookkeeping: a musical-time cursor that only moves forward, three
// tracks, no feature computation.
package score

import (
	"github.com/gpxtone/gpxtone/constants"
	"github.com/gpxtone/gpxtone/mapping"
	"github.com/gpxtone/gpxtone/model"
)

// Assembler emits the melody note, the bass note and the percussion
// pulses of each event at the current cursor, then advances the cursor by
// the note duration. Start times are therefore strictly non-decreasing
// and notes within a track never overlap.
type Assembler struct {
	tempo    float64
	maxBeats float64
	cursor   float64

	melody     model.Track
	bass       model.Track
	percussion model.Track
}

// New creates an assembler with the cursor at 0. maxBeats is the safety
// ceiling on total musical time; Fits reports whether a note still fits.
func New(tempoBPM, maxBeats float64) *Assembler {
	return &Assembler{
		tempo:    tempoBPM,
		maxBeats: maxBeats,
		melody: model.Track{
			Name:    "melody",
			Channel: constants.MelodyChannel,
			Program: constants.MelodyProgram,
		},
		bass: model.Track{
			Name:    "bass",
			Channel: constants.BassChannel,
			Program: constants.BassProgram,
		},
		percussion: model.Track{
			Name:    "percussion",
			Channel: constants.PercussionChannel,
		},
	}
}

// Add emits one event's notes at the cursor and advances it.
func (a *Assembler) Add(p mapping.Params) {
	a.melody.Notes = append(a.melody.Notes, model.Note{
		Pitch:    p.MelodyPitch,
		Start:    a.cursor,
		Duration: p.DurationBeats,
		Velocity: constants.NoteVelocity,
	})
	a.bass.Notes = append(a.bass.Notes, model.Note{
		Pitch:    p.BassPitch,
		Start:    a.cursor,
		Duration: p.DurationBeats,
		Velocity: constants.NoteVelocity,
	})
	for _, pulse := range p.Pulses {
		a.percussion.Notes = append(a.percussion.Notes, model.Note{
			Pitch:    pulse.Pitch,
			Start:    a.cursor + pulse.OffsetBeats,
			Duration: pulse.DurationBeats,
			Velocity: pulse.Velocity,
		})
	}
	a.cursor += p.DurationBeats
}

// Cursor is the accumulated musical time in beats.
func (a *Assembler) Cursor() float64 { return a.cursor }

// Fits reports whether a note of the given duration can still end within
// the safety ceiling. The pipeline stops at the first note that cannot,
// so total musical time never exceeds the ceiling.
func (a *Assembler) Fits(durationBeats float64) bool {
	return a.cursor+durationBeats <= a.maxBeats
}

// Score finalizes and returns the piece. The assembler must not be used
// afterwards.
func (a *Assembler) Score() *model.Score {
	return &model.Score{
		Tempo:  a.tempo,
		Tracks: []model.Track{a.melody, a.bass, a.percussion},
	}
}
