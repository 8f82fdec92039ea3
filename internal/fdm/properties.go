package fdm

// JSBSim style property names understood by the reference engine.
// Consumers address the engine through these strings so an external
// flight dynamics model can be swapped in without touching the callers.
const (
	PropAileronCmd   = "fcs/aileron-cmd-norm"
	PropElevatorCmd  = "fcs/elevator-cmd-norm"
	PropRudderCmd    = "fcs/rudder-cmd-norm"
	PropThrottleCmd  = "fcs/throttle-cmd-norm"
	PropMixtureCmd   = "fcs/mixture-cmd-norm"
	PropMagnetoCmd   = "propulsion/magneto_cmd"
	PropStarterCmd   = "propulsion/starter_cmd"
	PropEngineThrust = "propulsion/engine/thrust-lbs"
)
