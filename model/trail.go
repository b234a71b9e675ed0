package model

import "time"

// Point is one recorded trail sample. Elevation, Time and Cadence are
// optional because real recordings routinely drop them; the parser leaves
// a field nil rather than inventing a value.
type Point struct {
	Lat       float64
	Lon       float64
	Elevation *float64
	Time      *time.Time

	// Cadence is a raw sensor reading in steps per minute, taken from a
	// track point extension when the device recorded one.
	Cadence *float64
}

// Trail is an ordered point sequence. The pipeline reads it, never mutates it.
type Trail struct {
	Name   string
	Points []Point
}
