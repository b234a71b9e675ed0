// Package midi serializes a finished score to a Standard MIDI File. It is
// a downstream collaborator of the pipeline: it never computes musical
// values, only encodes them.
package midi

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/gpxtone/gpxtone/constants"
	"github.com/gpxtone/gpxtone/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrEmptyScore is returned when a score has no notes at all; an SMF with
// zero events is useless downstream.
var ErrEmptyScore = errors.New("score has no notes")

// absEvent is a note boundary at an absolute tick, before delta encoding.
type absEvent struct {
	tick    uint32
	noteOff bool
	key     uint8
	vel     uint8
}

// Encode builds an SMF type-1 file: one track per score track, tempo meta
// on the first, program changes on melodic channels.
func Encode(s *model.Score) (*smf.SMF, error) {
	if s == nil || s.NumNotes() == 0 {
		return nil, ErrEmptyScore
	}

	var out smf.SMF
	out.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	for i, track := range s.Tracks {
		var tr smf.Track
		tr.Add(0, smf.MetaTrackSequenceName(track.Name))
		if i == 0 {
			tr.Add(0, smf.MetaTempo(s.Tempo))
		}
		if track.Channel != constants.PercussionChannel {
			tr.Add(0, gomidi.ProgramChange(track.Channel, track.Program))
		}

		events := noteBoundaries(track.Notes)
		var lastTick uint32
		for _, ev := range events {
			delta := ev.tick - lastTick
			lastTick = ev.tick
			if ev.noteOff {
				tr.Add(delta, gomidi.NoteOff(track.Channel, ev.key))
			} else {
				tr.Add(delta, gomidi.NoteOn(track.Channel, ev.key, ev.vel))
			}
		}

		tr.Close(0)
		out.Tracks = append(out.Tracks, tr)
	}

	return &out, nil
}

// noteBoundaries flattens notes into on/off events sorted by absolute
// tick, note-offs first on ties so repeated pitches re-trigger cleanly.
func noteBoundaries(notes []model.Note) []absEvent {
	events := make([]absEvent, 0, 2*len(notes))
	for _, n := range notes {
		on := beatsToTicks(n.Start)
		off := beatsToTicks(n.Start + n.Duration)
		if off <= on {
			off = on + 1
		}
		events = append(events, absEvent{tick: on, key: n.Pitch, vel: n.Velocity})
		events = append(events, absEvent{tick: off, noteOff: true, key: n.Pitch})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].noteOff && !events[j].noteOff
	})
	return events
}

func beatsToTicks(beats float64) uint32 {
	return uint32(math.Round(beats * constants.TicksPerQuarter))
}

// Write encodes the score and streams the SMF bytes to w.
func Write(s *model.Score, w io.Writer) error {
	f, err := Encode(s)
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing smf: %w", err)
	}
	return nil
}

// WriteFile encodes the score into a .mid file at path.
func WriteFile(s *model.Score, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating midi file: %w", err)
	}
	defer f.Close()
	return Write(s, f)
}
