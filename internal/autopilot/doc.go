// Package autopilot flies the aircraft on target without a pilot.
//
// An [Autopilot] runs one [PID] hold loop per axis:
//
//   - altitude error drives the elevator
//   - heading error drives the aileron
//   - airspeed error drives the throttle
//
// # Usage
//
//	ap := autopilot.New(flight, aircraft)
//	ap.Engage() // hold the current flight state
//	for flying {
//		s.SetAircraftControls(ap.Update())
//		s.Step()
//	}
//
// Engage captures the flight state at that moment as the hold targets.
// The Set methods retarget a single axis afterwards, for a commanded
// climb or a turn onto a new heading.
package autopilot
