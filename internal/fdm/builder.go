package fdm

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Builder assembles a primed Exec. Fields mirror the construction order
// a full flight dynamics engine needs: model data location, time step,
// then the initial conditions. Validation is deferred to Create so a
// builder can be filled in incrementally.
type Builder struct {
	DataPath  string
	Dt        float64 // seconds
	Latitude  float64 // degrees
	Longitude float64 // degrees
	Altitude  float64 // meters
	Airspeed  float64 // m/s
	Heading   float64 // degrees
}

// NewBuilder returns a Builder for the given model data location. The
// reference engine carries its model inline and accepts an empty path,
// the field exists for engines that load aircraft data from disk.
func NewBuilder(dataPath string) *Builder {
	return &Builder{DataPath: dataPath}
}

// Create validates the builder configuration and returns a primed
// engine.
func (b *Builder) Create() (*Exec, error) {
	ic := InitialConditions{
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		Altitude:  b.Altitude,
		Airspeed:  b.Airspeed,
		Heading:   b.Heading,
	}

	if err := validateInitialConditions(b.Dt, ic); err != nil {
		return nil, fmt.Errorf("create flight dynamics model: %w", err)
	}

	e := newExec(b.Dt, ic)
	if !e.RunInitialConditions() {
		return nil, fmt.Errorf("create flight dynamics model: initial conditions did not converge")
	}

	log.Debug().
		Str("data_path", b.DataPath).
		Float64("dt", b.Dt).
		Float64("altitude", b.Altitude).
		Float64("airspeed", b.Airspeed).
		Msg("flight dynamics model ready")

	return e, nil
}
