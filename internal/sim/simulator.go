package sim

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

// Model is the execution surface of a flight dynamics engine. The
// reference implementation is [fdm.Exec], an external engine can be
// wired in by satisfying the same contract.
type Model interface {
	DeltaT() float64
	SimTime() float64

	Hold()
	Resume()
	Holding() bool

	IntegrationSuspended() bool
	ResumeIntegration()

	ResetToInitialConditions(mode int)
	RunInitialConditions() bool

	ProcessMessages()
	CheckIncrementalHold()

	// Run advances one frame. False without an error means the engine
	// declined to run, an error is a fault.
	Run() (bool, error)

	// Altitude in meters, negative below mean sea level.
	Altitude() float64
}

// Aircraft is the pilot facing surface the supervisor manipulates when
// starting, trimming or zeroing the controls.
type Aircraft interface {
	StartEngines()
	Trim(mode fdm.TrimMode) bool
	SetControls(aileron, elevator, rudder, throttle float64)
	Controls() fdm.Controls
}

// State is the supervisory state of a simulator.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCrashed:
		return "crashed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Simulator runs the supervisory control loop over a flight dynamics
// model. All methods must be called from a single goroutine, the
// simulator holds no locks and shares nothing.
type Simulator struct {
	model       Model
	aircraft    Aircraft
	trimMode    fdm.TrimMode
	startPaused bool
	crashed     bool
}

// New wraps a model and its aircraft facade in a Simulator. The trim
// mode used on reset defaults to full. Most callers want [Builder]
// instead, which also starts the engines, trims and validates the
// first frame.
func New(model Model, aircraft Aircraft) *Simulator {
	return &Simulator{
		model:    model,
		aircraft: aircraft,
		trimMode: fdm.TrimModeFull,
	}
}

// State reports the supervisory state. Crashed wins over paused, the
// paused and running answers are read live from the model.
func (s *Simulator) State() State {
	if s.crashed {
		return StateCrashed
	}
	if s.model.Holding() {
		return StatePaused
	}
	return StateRunning
}

// Crashed reports whether the crash latch is set. The latch only clears
// through Reset.
func (s *Simulator) Crashed() bool { return s.crashed }

// Dt is the simulation time step in seconds.
func (s *Simulator) Dt() float64 { return s.model.DeltaT() }

// SimulationTime is the elapsed simulation time in seconds.
func (s *Simulator) SimulationTime() float64 { return s.model.SimTime() }

// Pause freezes the simulation. Pausing an already paused simulator is
// a no-op.
func (s *Simulator) Pause() {
	s.model.Hold()
}

// Resume unfreezes the simulation. It clears both freeze mechanisms,
// suspended integration first and then the hold. A crashed simulator
// stays frozen until Reset.
func (s *Simulator) Resume() {
	if s.crashed {
		log.Debug().Msg("not resuming the simulation because the aircraft has crashed")
		return
	}

	if s.model.IntegrationSuspended() {
		s.model.ResumeIntegration()
	}

	s.model.Resume()
}

// IsPaused reports whether the model is holding. The answer is read
// from the model on every call, the simulator keeps no pause flag of
// its own.
func (s *Simulator) IsPaused() bool {
	return s.model.Holding()
}

// Step runs the simulation for one frame.
//
// The crash check comes before everything else: an altitude below zero
// pauses the simulator, sets the crash latch and reports success. A
// crashed simulator steps as a successful no-op. Otherwise the frame
// runs even when paused, the pause state is saved, the model resumed
// for exactly one frame and the pause restored afterwards.
//
// A fault from the model comes back as a [*SimulationError] without
// restoring the pause state. A model that declines to run comes back as
// [ErrRunFailed] after the pause state is restored.
func (s *Simulator) Step() error {
	if !s.crashed && s.model.Altitude() < 0.0 {
		log.Debug().
			Float64("altitude", s.model.Altitude()).
			Msg("the aircraft has crashed, pausing the simulator")

		s.Pause()
		s.crashed = true

		return nil
	}

	if s.crashed {
		log.Debug().Msg("not executing the simulation step because the aircraft has crashed")
		return nil
	}

	wasPaused := s.IsPaused()
	if wasPaused {
		s.Resume()
	}

	s.model.ProcessMessages()
	s.model.CheckIncrementalHold()

	ok, err := s.model.Run()
	if err != nil {
		return &SimulationError{Time: s.model.SimTime(), Err: err}
	}

	if wasPaused {
		s.Pause()
	}

	if !ok {
		log.Error().Msg("the flight dynamics model has failed to run")
		return ErrRunFailed
	}

	return nil
}

// RunFor runs the simulation until the given amount of simulation time
// has passed. A negative time fails before any frame runs. The loop
// only watches the clock, a crash latches mid-flight and the remaining
// frames pass through as no-ops. With the clock frozen by a crash the
// call does not return, callers that need to survive a crash bound
// their own slices and check Crashed between them.
func (s *Simulator) RunFor(duration float64) error {
	if duration < 0.0 {
		log.Error().Float64("duration", duration).Msg("invalid simulator run time length")
		return ErrNegativeDuration
	}

	end := s.model.SimTime() + duration

	for s.model.SimTime() <= end {
		if err := s.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Run advances one frame when the model is not holding and is a
// successful no-op otherwise. This is the polling entry point for an
// external scheduler that cycles regardless of pause state.
func (s *Simulator) Run() error {
	if !s.model.Holding() {
		return s.Step()
	}

	return nil
}

// Reset returns the simulation to its initial conditions and leaves it
// running, or paused when the simulator was built to start paused. The
// crash latch always clears, a reset is the one way out of a crash.
// The aircraft is re-trimmed with the simulator's trim mode, a trim
// failure zeroes the controls and is otherwise tolerated. A failed
// initial condition run or a failed validation step aborts the reset.
func (s *Simulator) Reset() error {
	log.Debug().Msg("resetting the aircraft")

	s.crashed = false
	s.Pause()

	s.aircraft.SetControls(0.0, 0.0, 0.0, 0.0)

	s.model.ResetToInitialConditions(0)

	if !s.model.RunInitialConditions() {
		log.Error().Msg("failed to run the initial conditions")
		return ErrInitialConditions
	}

	log.Debug().Msg("starting the aircraft engines")
	s.aircraft.StartEngines()

	if !s.aircraft.Trim(s.trimMode) {
		log.Warn().Msg("failed to trim the aircraft")

		// The trim search may have left the controls anywhere.
		s.aircraft.SetControls(0.0, 0.0, 0.0, 0.0)
	}

	if err := s.Step(); err != nil {
		log.Error().Err(err).Msg("failed to execute the validation step")
		return fmt.Errorf("reset validation step: %w", err)
	}

	if !s.startPaused {
		s.Resume()
	}

	return nil
}

// SetAircraftControls updates the four primary control commands. Values
// are applied as given, without range checks.
func (s *Simulator) SetAircraftControls(aileron, elevator, rudder, throttle float64) {
	s.aircraft.SetControls(aileron, elevator, rudder, throttle)
}

// Model returns the flight dynamics model the simulator drives.
func (s *Simulator) Model() Model { return s.model }

// Aircraft returns the aircraft facade the simulator manipulates.
func (s *Simulator) Aircraft() Aircraft { return s.aircraft }
