package sim

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mstram-flight/Huginn/internal/aircraft"
	"github.com/mstram-flight/Huginn/internal/config"
	"github.com/mstram-flight/Huginn/internal/fdm"
)

// Builder assembles a ready to fly Simulator: flight dynamics model
// built and primed, engines started, aircraft trimmed and the first
// frame validated. Fields start at the operational defaults and may be
// adjusted freely before CreateSimulator. A builder is reusable, every
// CreateSimulator call produces an independent simulator.
type Builder struct {
	DataPath    string
	Dt          float64 // seconds
	Latitude    float64 // degrees
	Longitude   float64 // degrees
	Altitude    float64 // meters
	Airspeed    float64 // m/s
	Heading     float64 // degrees
	TrimMode    fdm.TrimMode
	StartPaused bool
}

// NewBuilder returns a Builder holding the operational defaults.
func NewBuilder(dataPath string) *Builder {
	return &Builder{
		DataPath:  dataPath,
		Dt:        config.DefaultDt,
		Latitude:  config.DefaultLatitude,
		Longitude: config.DefaultLongitude,
		Altitude:  config.DefaultAltitude,
		Airspeed:  config.DefaultAirspeed,
		Heading:   config.DefaultHeading,
		TrimMode:  fdm.TrimModeFull,
	}
}

// CreateSimulator builds the flight dynamics model and wraps it in a
// validated Simulator. A trim failure is tolerated, the controls are
// zeroed and construction continues. A validation step failure is not,
// no simulator comes back.
func (b *Builder) CreateSimulator() (*Simulator, error) {
	fb := fdm.NewBuilder(b.DataPath)
	fb.Dt = b.Dt
	fb.Latitude = b.Latitude
	fb.Longitude = b.Longitude
	fb.Altitude = b.Altitude
	fb.Airspeed = b.Airspeed
	fb.Heading = b.Heading

	fdmexec, err := fb.Create()
	if err != nil {
		return nil, fmt.Errorf("create simulator: %w", err)
	}

	return build(fdmexec, aircraft.New(fdmexec), b.TrimMode, b.StartPaused)
}

// build is the construction policy shared by every entry point that
// turns a primed model into a flying simulator.
func build(model Model, ac Aircraft, trimMode fdm.TrimMode, startPaused bool) (*Simulator, error) {
	ac.StartEngines()

	log.Debug().Stringer("mode", trimMode).Msg("trimming the aircraft")

	if !ac.Trim(trimMode) {
		log.Warn().Msg("failed to trim the aircraft")

		// The trim search may have left the controls anywhere.
		ac.SetControls(0.0, 0.0, 0.0, 0.0)
	}

	s := New(model, ac)
	s.trimMode = trimMode
	s.startPaused = startPaused

	if err := s.Step(); err != nil {
		log.Error().Err(err).Msg("failed to execute the simulator run")
		return nil, fmt.Errorf("simulator validation step: %w", err)
	}

	if startPaused {
		s.Pause()
	}

	return s, nil
}
