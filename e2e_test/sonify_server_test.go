//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gpxtone/gpxtone/cmd"
	"github.com/gpxtone/gpxtone/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

const hillGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <trk><name>hill</name><trkseg>
    <trkpt lat="45.0" lon="7.0"><ele>100</ele><time>2024-06-01T09:00:00Z</time></trkpt>
    <trkpt lat="45.00045" lon="7.0"><ele>150</ele><time>2024-06-01T09:00:10Z</time></trkpt>
    <trkpt lat="45.0009" lon="7.0"><ele>100</ele><time>2024-06-01T09:00:20Z</time></trkpt>
  </trkseg></trk>
</gpx>`

func TestSonifyEndpointReturnsPlayableSMF(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/sonify?step=50&tempo=120", strings.NewReader(hillGPX))
	w := httptest.NewRecorder()
	cmd.HandleSonify(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)
	assert.Equal(resp.Header.Get("Content-Type"), "audio/midi")
	assert.Contains(resp.Header.Get("Content-Disposition"), ".mid")

	parsed, err := smf.ReadFrom(bytes.NewReader(body))
	assert.NoError(err)
	assert.Len(parsed.Tracks, 3) // melody, bass, percussion
}

func TestSonifyEndpointCachesRepeatUploads(t *testing.T) {
	run := func() []byte {
		req := httptest.NewRequest(http.MethodPost, "/sonify?step=50", strings.NewReader(hillGPX))
		w := httptest.NewRecorder()
		cmd.HandleSonify(w, req)
		body, _ := io.ReadAll(w.Result().Body)
		return body
	}

	assert.Equal(t, run(), run())
}

func TestSonifyEndpointRejectsTrailWithoutElevation(t *testing.T) {
	flat := `<gpx><trk><trkseg>
	  <trkpt lat="45.0" lon="7.0"><time>2024-06-01T09:00:00Z</time></trkpt>
	  <trkpt lat="45.001" lon="7.0"><time>2024-06-01T09:00:10Z</time></trkpt>
	</trkseg></trk></gpx>`

	req := httptest.NewRequest(http.MethodPost, "/sonify", strings.NewReader(flat))
	w := httptest.NewRecorder()
	cmd.HandleSonify(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, http.StatusUnprocessableEntity)

	var errResp model.ErrorResponse
	assert.NoError(json.Unmarshal(body, &errResp))
	assert.Contains(errResp.Error, "elevation")
}

func TestSonifyEndpointRejectsBadQueryConfig(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/sonify?melody=altitude", strings.NewReader(hillGPX))
	w := httptest.NewRecorder()
	cmd.HandleSonify(w, req)

	assert.Equal(t, w.Result().StatusCode, http.StatusBadRequest)
}

func TestInspectEndpointRejectsNegativeStep(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/inspect?step=-5", strings.NewReader(hillGPX))
	w := httptest.NewRecorder()
	cmd.HandleInspect(w, req)

	assert.Equal(t, w.Result().StatusCode, http.StatusUnprocessableEntity)
}

func TestInspectEndpointReportsGeometry(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/inspect?step=50", strings.NewReader(hillGPX))
	w := httptest.NewRecorder()
	cmd.HandleInspect(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var overview model.TrailOverview
	assert.NoError(json.Unmarshal(body, &overview))
	assert.Equal(overview.Name, "hill")
	assert.Equal(overview.NumPoints, 3)
	assert.Equal(overview.MinElevation, 100.0)
	assert.Equal(overview.MaxElevation, 150.0)
	assert.Equal(overview.StepMeters, 50.0)
}
