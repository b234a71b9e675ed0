package gpx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gpxtone/gpxtone/model"
	"golang.org/x/text/encoding/charmap"
)

// ErrNoTrackPoints means the document parsed but contained no track points.
var ErrNoTrackPoints = errors.New("gpx file has no track points")

type gpxDoc struct {
	XMLName xml.Name `xml:"gpx"`
	Tracks  []struct {
		Name     string `xml:"name"`
		Segments []struct {
			Points []trkpt `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

type trkpt struct {
	Lat        float64        `xml:"lat,attr"`
	Lon        float64        `xml:"lon,attr"`
	Elevation  *float64       `xml:"ele"`
	Time       string         `xml:"time"`
	Extensions *extensionData `xml:"extensions"`
}

// extensionData covers the two places devices put cadence: directly under
// <extensions> or inside a Garmin TrackPointExtension. Namespace prefixes
// are ignored on purpose, vendors disagree on them.
type extensionData struct {
	Cadence *float64 `xml:"cad"`
	TPX     *struct {
		Cadence *float64 `xml:"cad"`
	} `xml:"TrackPointExtension"`
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return input, nil
	case "iso-8859-1", "latin-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", charset)
}

// Parse decodes a GPX 1.0/1.1 document into a model.Trail, flattening all
// tracks and segments in document order. Optional fields stay nil when the
// recording lacks them.
func Parse(r io.Reader) (model.Trail, error) {
	var trail model.Trail

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var doc gpxDoc
	if err := dec.Decode(&doc); err != nil {
		return trail, fmt.Errorf("parsing gpx: %w", err)
	}

	for _, trk := range doc.Tracks {
		if trail.Name == "" {
			trail.Name = trk.Name
		}
		for _, seg := range trk.Segments {
			for _, tp := range seg.Points {
				trail.Points = append(trail.Points, toPoint(tp))
			}
		}
	}

	if len(trail.Points) == 0 {
		return trail, ErrNoTrackPoints
	}
	return trail, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (model.Trail, error) {
	return Parse(bytes.NewReader(data))
}

// ParseFile reads and parses a .gpx file from disk.
func ParseFile(path string) (model.Trail, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Trail{}, fmt.Errorf("opening gpx file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func toPoint(tp trkpt) model.Point {
	p := model.Point{
		Lat:       tp.Lat,
		Lon:       tp.Lon,
		Elevation: tp.Elevation,
	}

	// Unparseable timestamps are dropped, not fatal: the resampler skips
	// points without a time anyway.
	if tp.Time != "" {
		if ts, err := time.Parse(time.RFC3339, tp.Time); err == nil {
			p.Time = &ts
		}
	}

	if ext := tp.Extensions; ext != nil {
		if ext.TPX != nil && ext.TPX.Cadence != nil {
			p.Cadence = ext.TPX.Cadence
		} else if ext.Cadence != nil {
			p.Cadence = ext.Cadence
		}
	}
	return p
}
