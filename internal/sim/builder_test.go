package sim

import (
	"errors"
	"testing"

	"github.com/mstram-flight/Huginn/internal/config"
	"github.com/mstram-flight/Huginn/internal/fdm"
)

func TestNewBuilderDefaults(t *testing.T) {
	b := NewBuilder("data")

	if b.DataPath != "data" {
		t.Errorf("expected data path to be kept, got %q", b.DataPath)
	}
	if b.Dt != config.DefaultDt {
		t.Errorf("expected default dt, got %f", b.Dt)
	}
	if b.Latitude != config.DefaultLatitude || b.Longitude != config.DefaultLongitude {
		t.Error("expected the default location")
	}
	if b.Altitude != config.DefaultAltitude {
		t.Errorf("expected default altitude, got %f", b.Altitude)
	}
	if b.Airspeed != config.DefaultAirspeed {
		t.Errorf("expected default airspeed, got %f", b.Airspeed)
	}
	if b.Heading != config.DefaultHeading {
		t.Errorf("expected default heading, got %f", b.Heading)
	}
	if b.TrimMode != fdm.TrimModeFull {
		t.Errorf("expected full trim mode, got %v", b.TrimMode)
	}
	if b.StartPaused {
		t.Error("expected start paused to default to false")
	}
}

func TestBuildStartsTrimsAndValidates(t *testing.T) {
	model := newFakeModel()
	ac := newFakeAircraft()

	s, err := build(model, ac, fdm.TrimModeLongitudinal, false)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if ac.startCalls != 1 {
		t.Errorf("expected the engines started once, got %d", ac.startCalls)
	}
	if ac.trimCalls != 1 {
		t.Errorf("expected one trim attempt, got %d", ac.trimCalls)
	}
	if ac.trimMode != fdm.TrimModeLongitudinal {
		t.Errorf("expected the configured trim mode, got %v", ac.trimMode)
	}
	if model.count("run") != 1 {
		t.Errorf("expected one validation frame, got %d", model.count("run"))
	}
	if s.IsPaused() {
		t.Error("expected the simulator to come back running")
	}
	if s.trimMode != fdm.TrimModeLongitudinal {
		t.Error("expected the trim mode to be carried into the simulator")
	}
}

func TestBuildToleratesTrimFailure(t *testing.T) {
	model := newFakeModel()
	ac := newFakeAircraft()
	ac.trimResult = false

	s, err := build(model, ac, fdm.TrimModeFull, false)
	if err != nil {
		t.Fatalf("a trim failure must not fail construction, got %v", err)
	}
	if s == nil {
		t.Fatal("expected a usable simulator")
	}

	if ac.setCalls != 1 {
		t.Errorf("expected the controls zeroed once, got %d", ac.setCalls)
	}
	if ac.controls != (fdm.Controls{}) {
		t.Errorf("expected neutral controls, got %+v", ac.controls)
	}
}

func TestBuildFailsWhenTheValidationStepFails(t *testing.T) {
	model := newFakeModel()
	model.runOK = false

	s, err := build(model, newFakeAircraft(), fdm.TrimModeFull, false)
	if !errors.Is(err, ErrRunFailed) {
		t.Fatalf("expected ErrRunFailed, got %v", err)
	}
	if s != nil {
		t.Error("a failed validation step must not return a simulator")
	}
}

func TestBuildFailsOnAFaultingModel(t *testing.T) {
	model := newFakeModel()
	model.runErr = errors.New("diverged")

	s, err := build(model, newFakeAircraft(), fdm.TrimModeFull, false)

	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected a SimulationError, got %v", err)
	}
	if s != nil {
		t.Error("a faulting model must not return a simulator")
	}
}

func TestBuildStartPaused(t *testing.T) {
	model := newFakeModel()

	s, err := build(model, newFakeAircraft(), fdm.TrimModeFull, true)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if !s.IsPaused() {
		t.Error("expected the simulator to come back paused")
	}

	// The validation frame still runs before the pause lands.
	if model.count("run") != 1 {
		t.Errorf("expected one validation frame, got %d", model.count("run"))
	}
	if model.simTime != model.dt {
		t.Errorf("expected one frame of time, got %f", model.simTime)
	}
	if !s.startPaused {
		t.Error("expected the start paused policy to be carried into the simulator")
	}
}
