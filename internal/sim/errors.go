package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrRunFailed reports that the flight dynamics model declined to
	// advance a frame without raising a fault.
	ErrRunFailed = errors.New("flight dynamics model failed to run")

	// ErrNegativeDuration reports a RunFor call with a negative time.
	ErrNegativeDuration = errors.New("negative run duration")

	// ErrInitialConditions reports that the initial condition run
	// during a reset did not converge.
	ErrInitialConditions = errors.New("initial conditions failed to run")
)

// SimulationError wraps a fault raised by the flight dynamics model
// while a frame was executing. The supervisor does not try to recover
// from faults, the hold state is left the way the failing frame had it.
type SimulationError struct {
	Time float64
	Err  error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulation fault at t=%.3fs: %v", e.Time, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }
