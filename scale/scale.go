package scale

import (
	"fmt"
	"math"
)

// Scale is an ascending set of pitch classes (0..11) within one octave.
type Scale []int

var (
	PentatonicMajor = Scale{0, 2, 4, 7, 9}
	PentatonicMinor = Scale{0, 3, 5, 7, 10}
	Major           = Scale{0, 2, 4, 5, 7, 9, 11}
	Minor           = Scale{0, 2, 3, 5, 7, 10}
	Chromatic       = Scale{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
)

// Parse resolves a CLI/HTTP scale name.
func Parse(name string) (Scale, error) {
	switch name {
	case "pentatonic", "pentatonic-major":
		return PentatonicMajor, nil
	case "pentatonic-minor":
		return PentatonicMinor, nil
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "chromatic":
		return Chromatic, nil
	}
	return nil, fmt.Errorf("unknown scale %q", name)
}

// Snap rounds pitch to the nearest integer and replaces its in-octave
// residue with the nearest scale member, keeping the octave. Ties go to
// the lower-indexed scale member since members are scanned in ascending
// order with a strict less-than.
func (s Scale) Snap(pitch float64) int {
	p := int(math.Round(pitch))
	octave := p / 12
	residue := p % 12

	minDiff := 12
	closest := 0
	for _, member := range s {
		diff := residue - member
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff = diff
			closest = member
		}
	}
	return octave*12 + closest
}
