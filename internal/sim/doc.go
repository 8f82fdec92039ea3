// Package sim implements the supervisory control loop around a flight
// dynamics model: initialization and trim, frame stepping, pause and
// resume, crash latching and reset.
//
// [Simulator] drives any engine implementing the [Model] contract, one
// frame at a time, from a single goroutine. [Builder] assembles a ready
// to fly simulator the way the operational tools need it: engine built,
// engines started, aircraft trimmed and the first frame validated.
// [Ensemble] fans a builder out into independent concurrent flights.
//
// Failures split three ways. A fault raised by the model surfaces as a
// [*SimulationError]. A model that declines to run surfaces as
// [ErrRunFailed]. Soft conditions, a failed trim or a crash, are logged
// and absorbed, the crash additionally latches until [Simulator.Reset].
package sim
