package gpx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1"
     xmlns:gpxtpx="http://www.garmin.com/xmlschemas/TrackPointExtension/v1">
  <trk>
    <name>Morning Run</name>
    <trkseg>
      <trkpt lat="45.0" lon="7.0">
        <ele>312.4</ele>
        <time>2024-06-01T09:00:00Z</time>
        <extensions>
          <gpxtpx:TrackPointExtension>
            <gpxtpx:cad>84</gpxtpx:cad>
          </gpxtpx:TrackPointExtension>
        </extensions>
      </trkpt>
      <trkpt lat="45.0005" lon="7.0">
        <time>2024-06-01T09:00:10Z</time>
      </trkpt>
      <trkpt lat="45.001" lon="7.0">
        <ele>318.9</ele>
      </trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParseReadsPointsWithOptionalFields(t *testing.T) {
	trail, err := Parse(strings.NewReader(sampleGPX))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(trail.Name, "Morning Run")
	assert.Len(trail.Points, 3)

	first := trail.Points[0]
	assert.Equal(first.Lat, 45.0)
	assert.Equal(first.Lon, 7.0)
	if assert.NotNil(first.Elevation) {
		assert.Equal(*first.Elevation, 312.4)
	}
	if assert.NotNil(first.Time) {
		assert.Equal(*first.Time, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	}
	if assert.NotNil(first.Cadence) {
		assert.Equal(*first.Cadence, 84.0)
	}

	second := trail.Points[1]
	assert.Nil(second.Elevation)
	assert.NotNil(second.Time)
	assert.Nil(second.Cadence)

	third := trail.Points[2]
	assert.NotNil(third.Elevation)
	assert.Nil(third.Time)
}

func TestParseCadenceDirectlyUnderExtensions(t *testing.T) {
	doc := `<gpx><trk><trkseg>
	  <trkpt lat="1" lon="2"><ele>10</ele><extensions><cad>92</cad></extensions></trkpt>
	</trkseg></trk></gpx>`

	trail, err := Parse(strings.NewReader(doc))

	assert := assert.New(t)
	assert.NoError(err)
	if assert.NotNil(trail.Points[0].Cadence) {
		assert.Equal(*trail.Points[0].Cadence, 92.0)
	}
}

func TestParseFlattensMultipleSegments(t *testing.T) {
	doc := `<gpx><trk><name>a</name>
	  <trkseg><trkpt lat="1" lon="1"/></trkseg>
	  <trkseg><trkpt lat="2" lon="2"/></trkseg>
	</trk><trk><trkseg><trkpt lat="3" lon="3"/></trkseg></trk></gpx>`

	trail, err := Parse(strings.NewReader(doc))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(trail.Points, 3)
	assert.Equal(trail.Points[2].Lat, 3.0)
}

func TestParseEmptyDocumentFails(t *testing.T) {
	_, err := Parse(strings.NewReader(`<gpx><trk><trkseg></trkseg></trk></gpx>`))
	assert.ErrorIs(t, err, ErrNoTrackPoints)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(strings.NewReader("not xml at all"))
	assert.Error(t, err)
}

func TestParseLatin1Encoding(t *testing.T) {
	doc := []byte(`<?xml version="1.0" encoding="ISO-8859-1"?>
<gpx><trk><name>Monta` + "\xf1" + `a</name><trkseg>
  <trkpt lat="1" lon="2"><ele>10</ele></trkpt>
</trkseg></trk></gpx>`)

	trail, err := ParseBytes(doc)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(trail.Name, "Montaña")
}

func TestParseDropsUnparseableTimestamps(t *testing.T) {
	doc := `<gpx><trk><trkseg>
	  <trkpt lat="1" lon="2"><ele>10</ele><time>yesterday-ish</time></trkpt>
	</trkseg></trk></gpx>`

	trail, err := Parse(strings.NewReader(doc))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Nil(trail.Points[0].Time)
}
