package export

import (
	"strings"
	"testing"

	"github.com/mstram-flight/Huginn/internal/recorder"
)

func TestProfileSVG(t *testing.T) {
	samples := []recorder.Sample{
		{Time: 0.0, Altitude: 100.0},
		{Time: 10.0, Altitude: 200.0},
	}

	svg := ProfileSVG(samples, 120, 120)

	if !strings.Contains(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="120" height="120"`) {
		t.Error("missing the svg header with the drawing size")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing the profile stroke")
	}

	// Two points spanning the padded bounds land 10% in from each edge.
	if !strings.Contains(svg, `d="M10.0,110.0 L110.0,10.0"`) {
		t.Errorf("unexpected path data in %s", svg)
	}
}

func TestGroundTrackSVG(t *testing.T) {
	samples := []recorder.Sample{
		{Latitude: 37.9, Longitude: 23.9},
		{Latitude: 38.0, Longitude: 24.0},
		{Latitude: 38.1, Longitude: 23.95},
	}

	svg := GroundTrackSVG(samples, 400, 300)

	if !strings.Contains(svg, `stroke="#00bfff"`) {
		t.Error("missing the ground track stroke")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 path segments, got %d", strings.Count(svg, " L"))
	}
}

func TestSVGNeedsTwoSamples(t *testing.T) {
	if svg := ProfileSVG(nil, 100, 100); svg != "" {
		t.Error("expected no document without samples")
	}
	if svg := ProfileSVG([]recorder.Sample{{Time: 1.0}}, 100, 100); svg != "" {
		t.Error("expected no document for a single sample")
	}
}
