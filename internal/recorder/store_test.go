package recorder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

func recordedFlight(t *testing.T) *Recorder {
	t.Helper()

	flight := &fakeFlight{
		position: fdm.Position{
			Latitude:  37.9232,
			Longitude: 23.9217,
			Altitude:  300.0,
			Heading:   45.0,
		},
		airspeed: 30.0,
	}
	controls := &fakeControls{controls: fdm.Controls{Throttle: 0.5}}
	rec := New(flight, controls, 0)

	rec.Observe()
	flight.simTime = 1.0
	flight.position.Altitude = 310.0
	flight.airspeed = 31.0
	rec.Observe()

	return rec
}

func TestStoreSaveLoad(t *testing.T) {
	st := NewStore(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("cruise", 0.0166, "full", false, recordedFlight(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scenario != "cruise" {
		t.Errorf("expected scenario 'cruise', got '%s'", meta.Scenario)
	}
	if meta.Dt != 0.0166 {
		t.Errorf("expected dt 0.0166, got %f", meta.Dt)
	}
	if meta.TrimMode != "full" {
		t.Errorf("expected trim mode 'full', got '%s'", meta.TrimMode)
	}
	if meta.Duration != 1.0 {
		t.Errorf("expected duration 1, got %f", meta.Duration)
	}
	if meta.Metrics["max_altitude"] != 310.0 {
		t.Errorf("expected max_altitude 310, got %f", meta.Metrics["max_altitude"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Altitude != 300.0 || samples[1].Altitude != 310.0 {
		t.Errorf("altitudes did not round trip: %+v", samples)
	}
	if samples[0].Latitude != 37.9232 || samples[0].Longitude != 23.9217 {
		t.Errorf("coordinates did not round trip: %+v", samples[0])
	}
	if samples[0].Controls.Throttle != 0.5 {
		t.Errorf("controls did not round trip: %+v", samples[0].Controls)
	}
}

func TestStoreList(t *testing.T) {
	st := NewStore(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("cruise", 0.0166, "full", false, recordedFlight(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListSkipsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save("cruise", 0.0166, "full", false, recordedFlight(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// A stray file, a directory without metadata and one with garbage
	// metadata should all be skipped.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "empty_run"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "bad_run"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad_run", "metadata.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("cruise", 0.0166, "full", false, recordedFlight(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(dir, runID)

	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "samples.csv")); os.IsNotExist(err) {
		t.Error("samples.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	st := NewStore(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("cruise", 0.0166, "full", true, recordedFlight(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, meta, samples); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("exported document does not parse: %v", err)
	}

	if exported.Scenario != "cruise" {
		t.Errorf("expected scenario 'cruise', got '%s'", exported.Scenario)
	}
	if !exported.Crashed {
		t.Error("crashed flag did not survive the export")
	}
	if exported.Count != 2 || len(exported.Samples) != 2 {
		t.Errorf("expected 2 samples, got count=%d len=%d", exported.Count, len(exported.Samples))
	}
	if exported.Samples[1].Altitude != 310.0 {
		t.Errorf("expected altitude 310, got %f", exported.Samples[1].Altitude)
	}
}
