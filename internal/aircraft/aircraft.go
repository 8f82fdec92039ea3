package aircraft

import (
	"github.com/rs/zerolog/log"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

// Property values for a cold start of the powerplant: throttle open far
// enough to catch, rich mixture, both magnetos, starter engaged.
const (
	startThrottle = 0.65
	startMixture  = 0.87
	startMagnetos = 3.0
	startStarter  = 1.0
)

// Model is the slice of the flight dynamics surface the aircraft facade
// needs: the property tree and the trim routine. [fdm.Exec] satisfies
// it.
type Model interface {
	SetProperty(name string, value float64)
	Property(name string) float64
	Trim(mode fdm.TrimMode) bool
}

// Aircraft exposes the pilot facing side of a flight dynamics model:
// control surface commands, the engine start sequence and trimming.
type Aircraft struct {
	model Model
}

// New wraps a flight dynamics model in an Aircraft facade.
func New(model Model) *Aircraft {
	return &Aircraft{model: model}
}

// StartEngines runs the engine start sequence.
func (a *Aircraft) StartEngines() {
	log.Debug().Msg("starting the engines")

	a.model.SetProperty(fdm.PropThrottleCmd, startThrottle)
	a.model.SetProperty(fdm.PropMixtureCmd, startMixture)
	a.model.SetProperty(fdm.PropMagnetoCmd, startMagnetos)
	a.model.SetProperty(fdm.PropStarterCmd, startStarter)
}

// Trim runs the model's trim routine in the given mode and reports
// whether an equilibrium was found.
func (a *Aircraft) Trim(mode fdm.TrimMode) bool {
	return a.model.Trim(mode)
}

// SetAileron sets the aileron command.
func (a *Aircraft) SetAileron(v float64) {
	a.model.SetProperty(fdm.PropAileronCmd, v)
}

// SetElevator sets the elevator command.
func (a *Aircraft) SetElevator(v float64) {
	a.model.SetProperty(fdm.PropElevatorCmd, v)
}

// SetRudder sets the rudder command.
func (a *Aircraft) SetRudder(v float64) {
	a.model.SetProperty(fdm.PropRudderCmd, v)
}

// SetThrottle sets the throttle command.
func (a *Aircraft) SetThrottle(v float64) {
	a.model.SetProperty(fdm.PropThrottleCmd, v)
}

// SetControls updates all four primary control commands at once. Values
// are applied as given, without range checks.
func (a *Aircraft) SetControls(aileron, elevator, rudder, throttle float64) {
	a.model.SetProperty(fdm.PropAileronCmd, aileron)
	a.model.SetProperty(fdm.PropElevatorCmd, elevator)
	a.model.SetProperty(fdm.PropRudderCmd, rudder)
	a.model.SetProperty(fdm.PropThrottleCmd, throttle)
}

// Controls returns a snapshot of the current control commands.
func (a *Aircraft) Controls() fdm.Controls {
	return fdm.Controls{
		Aileron:  a.model.Property(fdm.PropAileronCmd),
		Elevator: a.model.Property(fdm.PropElevatorCmd),
		Rudder:   a.model.Property(fdm.PropRudderCmd),
		Throttle: a.model.Property(fdm.PropThrottleCmd),
	}
}

// EngineThrust is the current engine thrust in pounds.
func (a *Aircraft) EngineThrust() float64 {
	return a.model.Property(fdm.PropEngineThrust)
}
