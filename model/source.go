package model

import "fmt"

// FeatureSource names one of the three physical signals a musical
// parameter can be driven by.
type FeatureSource uint8

const (
	SourceElevation FeatureSource = iota
	SourceSpeed
	SourceCadence
)

func (s FeatureSource) String() string {
	switch s {
	case SourceElevation:
		return "elevation"
	case SourceSpeed:
		return "speed"
	case SourceCadence:
		return "cadence"
	}
	return fmt.Sprintf("FeatureSource(%d)", uint8(s))
}

// ParseFeatureSource converts a CLI/HTTP spelling into a FeatureSource.
func ParseFeatureSource(s string) (FeatureSource, error) {
	switch s {
	case "elevation", "ele":
		return SourceElevation, nil
	case "speed":
		return SourceSpeed, nil
	case "cadence", "cad":
		return SourceCadence, nil
	}
	return 0, fmt.Errorf("unknown feature source %q", s)
}
