package score

import (
	"testing"

	"github.com/gpxtone/gpxtone/mapping"
	"github.com/stretchr/testify/assert"
)

func params(melody, bass uint8, dur float64, pulses ...mapping.Pulse) mapping.Params {
	return mapping.Params{
		MelodyPitch:   melody,
		BassPitch:     bass,
		DurationBeats: dur,
		Pulses:        pulses,
	}
}

func TestCursorAdvancesByNoteDuration(t *testing.T) {
	a := New(120, 512)

	a.Add(params(60, 36, 2))
	a.Add(params(62, 38, 0.5))
	a.Add(params(64, 40, 1))

	assert := assert.New(t)
	assert.Equal(a.Cursor(), 3.5)

	s := a.Score()
	melody := s.Tracks[0]
	assert.Equal(melody.Notes[0].Start, 0.0)
	assert.Equal(melody.Notes[1].Start, 2.0)
	assert.Equal(melody.Notes[2].Start, 2.5)
}

func TestTracksNeverOverlap(t *testing.T) {
	a := New(120, 512)
	durations := []float64{1, 0.5, 2, 0.5, 4, 1}
	for i, d := range durations {
		a.Add(params(uint8(60+i), 36, d,
			mapping.Pulse{OffsetBeats: 0, DurationBeats: d / 2, Pitch: 35, Velocity: 100},
			mapping.Pulse{OffsetBeats: d / 2, DurationBeats: d / 2, Pitch: 42, Velocity: 70},
		))
	}

	for _, track := range a.Score().Tracks {
		for i := 1; i < len(track.Notes); i++ {
			prev, curr := track.Notes[i-1], track.Notes[i]
			assert.GreaterOrEqual(t, curr.Start, prev.Start,
				"track %v starts must be non-decreasing", track.Name)
			assert.GreaterOrEqual(t, curr.Start+1e-9, prev.Start+prev.Duration,
				"track %v notes must not overlap", track.Name)
		}
	}
}

func TestBassMirrorsMelodyTiming(t *testing.T) {
	a := New(120, 512)
	a.Add(params(60, 36, 2))
	a.Add(params(72, 44, 1))

	s := a.Score()
	melody, bass := s.Tracks[0], s.Tracks[1]

	assert := assert.New(t)
	assert.Len(bass.Notes, len(melody.Notes))
	for i := range melody.Notes {
		assert.Equal(bass.Notes[i].Start, melody.Notes[i].Start)
		assert.Equal(bass.Notes[i].Duration, melody.Notes[i].Duration)
	}
	assert.NotEqual(bass.Channel, melody.Channel)
}

func TestPercussionStaysInsideNoteSpan(t *testing.T) {
	a := New(120, 512)
	a.Add(params(60, 36, 2,
		mapping.Pulse{OffsetBeats: 0, DurationBeats: 0.5, Pitch: 35, Velocity: 100},
		mapping.Pulse{OffsetBeats: 1.5, DurationBeats: 0.5, Pitch: 42, Velocity: 70},
	))

	perc := a.Score().Tracks[2]
	assert := assert.New(t)
	assert.Len(perc.Notes, 2)
	for _, n := range perc.Notes {
		assert.GreaterOrEqual(n.Start, 0.0)
		assert.LessOrEqual(n.Start+n.Duration, 2.0)
	}
}

func TestFitsEnforcesCeiling(t *testing.T) {
	a := New(120, 3)

	assert := assert.New(t)
	assert.True(a.Fits(2))
	a.Add(params(60, 36, 2))
	assert.True(a.Fits(1))
	assert.False(a.Fits(1.5))
}
