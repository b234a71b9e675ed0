package model

// Note is one timed note event. Start and Duration are in beats of
// musical time, independent of wall-clock time. Immutable once emitted.
type Note struct {
	Pitch    uint8   // MIDI note number, 0-127
	Start    float64 // beats from score start
	Duration float64 // beats
	Velocity uint8   // 0-127
}

// Track is a named, time-ordered note list bound to a MIDI channel.
type Track struct {
	Name    string
	Channel uint8
	Program uint8 // GM program, ignored for the percussion channel
	Notes   []Note
}

// Score is the finished multi-track piece.
type Score struct {
	Tempo  float64 // beats per minute
	Tracks []Track
}

// End returns the musical time at which the last note of any track ends.
func (s *Score) End() float64 {
	var end float64
	for _, t := range s.Tracks {
		for _, n := range t.Notes {
			if stop := n.Start + n.Duration; stop > end {
				end = stop
			}
		}
	}
	return end
}

// NumNotes counts notes across all tracks.
func (s *Score) NumNotes() int {
	var n int
	for _, t := range s.Tracks {
		n += len(t.Notes)
	}
	return n
}
