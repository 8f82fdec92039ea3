package fdm

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Flight envelope constants for the built-in kinematic model.
const (
	maxAirspeed   = 60.0  // m/s at full throttle
	stallAirspeed = 15.0  // m/s, below this no level equilibrium exists
	maxPitch      = 20.0  // degrees at full elevator deflection
	maxRoll       = 30.0  // degrees at full aileron deflection
	maxThrust     = 750.0 // N at full throttle

	airspeedLag = 2.0 // s, first order response of airspeed to throttle
	attitudeLag = 0.8 // s, first order response of pitch and roll

	metersPerDegree = 111320.0 // meridian arc length of one degree
	newtonsPerPound = 4.4482
)

// Message is a queued engine notification. The queue is drained by
// [Exec.ProcessMessages] at the start of every simulation step.
type Message struct {
	Time float64
	Text string
}

// Exec is a self contained flight dynamics engine exposing the JSBSim
// style execution surface the simulation supervisor drives: hold and
// resume, suspended integration, incremental hold, initial condition
// handling and a string property tree.
type Exec struct {
	dt      float64
	savedDt float64
	simTime float64

	holding     bool
	suspended   bool
	initialized bool

	incHoldArmed     bool
	incHoldRemaining int

	messages   []Message
	properties map[string]float64

	ic InitialConditions

	latitude  float64
	longitude float64
	altitude  float64
	airspeed  float64
	heading   float64
	roll      float64
	pitch     float64
	climbRate float64

	engineRunning bool

	rates Rates
	accel Acceleration
}

func newExec(dt float64, ic InitialConditions) *Exec {
	e := &Exec{
		dt:         dt,
		ic:         ic,
		properties: make(map[string]float64),
	}
	e.applyInitialConditions()
	return e
}

func (e *Exec) applyInitialConditions() {
	e.latitude = e.ic.Latitude
	e.longitude = e.ic.Longitude
	e.altitude = e.ic.Altitude
	e.airspeed = e.ic.Airspeed
	e.heading = normalizeHeading(e.ic.Heading)
	e.roll = 0
	e.pitch = 0
	e.climbRate = 0
	e.rates = Rates{}
	e.accel = Acceleration{Z: -gravity}
}

// DeltaT is the integration time step. It reads as zero while
// integration is suspended.
func (e *Exec) DeltaT() float64 { return e.dt }

// SimTime is the elapsed simulation time in seconds.
func (e *Exec) SimTime() float64 { return e.simTime }

// Hold freezes the simulation. Run keeps reporting success while holding
// but neither time nor vehicle state advance.
func (e *Exec) Hold() { e.holding = true }

// Resume releases a hold. It does not touch suspended integration, that
// is a separate freeze cleared through ResumeIntegration.
func (e *Exec) Resume() { e.holding = false }

// Holding reports whether the engine is holding.
func (e *Exec) Holding() bool { return e.holding }

// SuspendIntegration zeroes the integration step so the engine can be
// cycled without advancing state. The trim and initial condition
// routines run in this mode.
func (e *Exec) SuspendIntegration() {
	if e.suspended {
		return
	}
	e.savedDt = e.dt
	e.dt = 0
	e.suspended = true
}

// ResumeIntegration restores the integration step saved by
// SuspendIntegration.
func (e *Exec) ResumeIntegration() {
	if !e.suspended {
		return
	}
	e.dt = e.savedDt
	e.suspended = false
}

// IntegrationSuspended reports whether integration is suspended.
func (e *Exec) IntegrationSuspended() bool { return e.suspended }

// EnableIncrementalHold arms the engine to hold itself again after the
// given number of frames have run. Used to advance a frozen simulation
// by a bounded amount.
func (e *Exec) EnableIncrementalHold(frames int) {
	if frames <= 0 {
		return
	}
	e.incHoldArmed = true
	e.incHoldRemaining = frames
}

// CheckIncrementalHold re-engages the hold once the armed frame count
// has elapsed. Callers cycle it once per frame, before Run.
func (e *Exec) CheckIncrementalHold() {
	if !e.incHoldArmed || e.holding {
		return
	}
	if e.incHoldRemaining <= 0 {
		e.Hold()
		e.incHoldArmed = false
		return
	}
	e.incHoldRemaining--
}

// PostMessage queues an engine notification for the next ProcessMessages.
func (e *Exec) PostMessage(text string) {
	e.messages = append(e.messages, Message{Time: e.simTime, Text: text})
}

// ProcessMessages drains the notification queue into the debug log.
func (e *Exec) ProcessMessages() {
	for _, m := range e.messages {
		log.Debug().Float64("sim_time", m.Time).Msg(m.Text)
	}
	e.messages = e.messages[:0]
}

// PendingMessages reports the number of queued notifications.
func (e *Exec) PendingMessages() int { return len(e.messages) }

// SetProperty writes a value into the engine property tree. Starter and
// magneto commands feed the engine start logic.
func (e *Exec) SetProperty(name string, value float64) {
	e.properties[name] = value
	if name == PropStarterCmd || name == PropMagnetoCmd {
		e.updateEngineState()
	}
}

// Property reads a value from the engine property tree. Unknown names
// read as zero, matching the permissive behavior of a real property
// tree.
func (e *Exec) Property(name string) float64 {
	return e.properties[name]
}

func (e *Exec) updateEngineState() {
	running := e.properties[PropStarterCmd] > 0 && e.properties[PropMagnetoCmd] > 0
	if running && !e.engineRunning {
		e.PostMessage("engine start")
	}
	e.engineRunning = running
}

// EngineRunning reports whether the engine start sequence has completed.
func (e *Exec) EngineRunning() bool { return e.engineRunning }

// ResetToInitialConditions rewinds the engine to the stored initial
// conditions and restarts the clock. The engine refuses to run again
// until RunInitialConditions has succeeded. Mode 1 additionally drops
// any queued notifications, mode 0 leaves them for the next
// ProcessMessages.
func (e *Exec) ResetToInitialConditions(mode int) {
	log.Debug().Int("mode", mode).Msg("rewinding engine to initial conditions")

	e.applyInitialConditions()
	e.simTime = 0
	e.initialized = false
	if mode != 0 {
		e.messages = e.messages[:0]
	}
}

// RunInitialConditions validates the initial conditions and primes the
// derived state. It must succeed once after construction or a reset
// before Run will advance the simulation.
func (e *Exec) RunInitialConditions() bool {
	if err := validateInitialConditions(e.stepSize(), e.ic); err != nil {
		log.Error().Err(err).Msg("initial conditions rejected")
		return false
	}

	e.SuspendIntegration()
	e.applyInitialConditions()
	e.updateEngineState()
	e.properties[PropEngineThrust] = 0
	e.ResumeIntegration()

	e.initialized = true
	e.PostMessage("initial conditions applied")
	return true
}

// Run advances the simulation by one frame. While holding the frame is a
// no-op that still reports success. A false result without an error
// means the engine was never primed with valid initial conditions. An
// error is a fault, the vehicle state has diverged and the frame did not
// complete.
func (e *Exec) Run() (bool, error) {
	if !e.initialized {
		return false, nil
	}
	if e.holding {
		return true, nil
	}

	e.integrate(e.dt)
	e.simTime += e.dt

	if err := e.checkState(); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Exec) checkState() error {
	for _, v := range []float64{
		e.latitude, e.longitude, e.altitude, e.airspeed,
		e.heading, e.roll, e.pitch, e.climbRate,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("flight state diverged at t=%.3f", e.simTime)
		}
	}
	return nil
}

func (e *Exec) integrate(dt float64) {
	if dt <= 0 {
		return
	}

	prevAirspeed := e.airspeed
	prevClimb := e.climbRate
	prevRoll := e.roll
	prevPitch := e.pitch
	prevHeading := e.heading

	throttle := clamp(e.properties[PropThrottleCmd], 0, 1)
	elevator := clamp(e.properties[PropElevatorCmd], -1, 1)
	aileron := clamp(e.properties[PropAileronCmd], -1, 1)

	target := 0.0
	thrust := 0.0
	if e.engineRunning {
		target = throttle * maxAirspeed
		thrust = throttle * maxThrust
	}
	e.properties[PropEngineThrust] = thrust / newtonsPerPound

	e.airspeed += (target - e.airspeed) * lagGain(dt, airspeedLag)
	e.pitch += (elevator*maxPitch - e.pitch) * lagGain(dt, attitudeLag)
	e.roll += (aileron*maxRoll - e.roll) * lagGain(dt, attitudeLag)

	e.climbRate = e.airspeed * math.Sin(e.pitch*math.Pi/180)
	e.altitude += e.climbRate * dt

	if e.airspeed > 1.0 {
		turnRate := gravity / e.airspeed * math.Tan(e.roll*math.Pi/180)
		e.heading = normalizeHeading(e.heading + turnRate*180/math.Pi*dt)
	}

	groundSpeed := e.airspeed * math.Cos(e.pitch*math.Pi/180)
	hdg := e.heading * math.Pi / 180
	e.latitude += groundSpeed * math.Cos(hdg) * dt / metersPerDegree
	lonScale := metersPerDegree * math.Cos(e.latitude*math.Pi/180)
	if lonScale > 1.0 {
		e.longitude += groundSpeed * math.Sin(hdg) * dt / lonScale
	}

	e.rates = Rates{
		Roll:  (e.roll - prevRoll) / dt,
		Pitch: (e.pitch - prevPitch) / dt,
		Yaw:   headingDelta(e.heading, prevHeading) / dt,
	}
	e.accel = Acceleration{
		X: (e.airspeed - prevAirspeed) / dt,
		Z: -gravity + (e.climbRate-prevClimb)/dt,
	}
}

// Trim searches for control settings that keep the aircraft in steady
// flight at the current airspeed and levels the trimmed axes. The
// search fails with the engine off or below stall speed, where no level
// equilibrium exists. Ground mode instead settles the aircraft parked.
func (e *Exec) Trim(mode TrimMode) bool {
	e.SuspendIntegration()
	defer e.ResumeIntegration()

	if mode == TrimModeGround {
		e.airspeed = 0
		e.climbRate = 0
		e.pitch = 0
		e.roll = 0
		e.properties[PropThrottleCmd] = 0
		e.properties[PropElevatorCmd] = 0
		e.properties[PropAileronCmd] = 0
		e.properties[PropRudderCmd] = 0
		e.PostMessage("ground trim achieved")
		return true
	}

	if !e.engineRunning || e.airspeed < stallAirspeed {
		log.Debug().
			Float64("airspeed", e.airspeed).
			Bool("engine_running", e.engineRunning).
			Msg("trim search failed")
		return false
	}

	e.properties[PropThrottleCmd] = e.airspeed / maxAirspeed
	e.properties[PropElevatorCmd] = 0
	e.pitch = 0
	e.climbRate = 0
	if mode == TrimModeFull {
		e.properties[PropAileronCmd] = 0
		e.properties[PropRudderCmd] = 0
		e.roll = 0
	}
	e.PostMessage(mode.String() + " trim achieved")
	return true
}

// Altitude is the current altitude in meters above mean sea level. It
// goes negative when the aircraft descends through the ground, crash
// handling is the supervisor's call.
func (e *Exec) Altitude() float64 { return e.altitude }

// Airspeed is the current true airspeed in m/s.
func (e *Exec) Airspeed() float64 { return e.airspeed }

// ClimbRate is the current vertical speed in m/s, positive up.
func (e *Exec) ClimbRate() float64 { return e.climbRate }

// Position returns the geographic state of the aircraft.
func (e *Exec) Position() Position {
	return Position{
		Latitude:  e.latitude,
		Longitude: e.longitude,
		Altitude:  e.altitude,
		Heading:   e.heading,
	}
}

// Attitude returns the aircraft orientation.
func (e *Exec) Attitude() Attitude {
	return Attitude{Roll: e.roll, Pitch: e.pitch}
}

// Rates returns the body angular rates observed over the last frame.
func (e *Exec) Rates() Rates { return e.rates }

// Acceleration returns the body frame accelerations observed over the
// last frame.
func (e *Exec) Acceleration() Acceleration { return e.accel }

// Atmosphere returns the ISA air state at the current altitude.
func (e *Exec) Atmosphere() Atmosphere {
	return StandardAtmosphere(e.altitude)
}

// TotalPressure is the pitot pressure, static plus dynamic.
func (e *Exec) TotalPressure() float64 {
	a := e.Atmosphere()
	return a.Pressure + 0.5*a.Density*e.airspeed*e.airspeed
}

func (e *Exec) stepSize() float64 {
	if e.suspended {
		return e.savedDt
	}
	return e.dt
}

func validateInitialConditions(dt float64, ic InitialConditions) error {
	switch {
	case dt <= 0:
		return fmt.Errorf("non-positive time step %f", dt)
	case math.Abs(ic.Latitude) > 90:
		return fmt.Errorf("latitude %f out of range", ic.Latitude)
	case math.Abs(ic.Longitude) > 180:
		return fmt.Errorf("longitude %f out of range", ic.Longitude)
	case ic.Altitude < 0:
		return fmt.Errorf("negative altitude %f", ic.Altitude)
	case ic.Airspeed < 0:
		return fmt.Errorf("negative airspeed %f", ic.Airspeed)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func lagGain(dt, tau float64) float64 {
	return 1 - math.Exp(-dt/tau)
}

func normalizeHeading(deg float64) float64 {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func headingDelta(a, b float64) float64 {
	return math.Mod(a-b+540, 360) - 180
}
