package autopilot

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

// Loop gains, tuned against the kinematic model. The altitude and
// heading loops run proportional-derivative only, both plants already
// integrate so there is no steady state error for the integral term to
// work off. The airspeed plant does not, its loop carries an integral
// term plus the throttle captured at engage as a feedforward base.
const (
	altitudeKp = 0.02 // elevator per meter off altitude
	altitudeKd = 0.09 // damps the climb into the target

	headingKp = 0.03 // aileron per degree off heading
	headingKd = 0.02

	airspeedKp = 0.02 // throttle per m/s off airspeed
	airspeedKi = 0.01 // trims out the throttle the base missed

	// maxDeflection caps the surface commands so the holds never ask
	// for more than half authority.
	maxDeflection = 0.5
)

// Flight is the slice of the flight dynamics surface the hold loops
// read. [fdm.Exec] satisfies it.
type Flight interface {
	SimTime() float64
	Altitude() float64
	Airspeed() float64
	Position() fdm.Position
}

// ControlSource yields the control commands in effect, typically the
// aircraft facade.
type ControlSource interface {
	Controls() fdm.Controls
}

// Autopilot holds the aircraft on target altitude, heading and
// airspeed, one PID loop per axis. Altitude error drives the elevator,
// heading error the aileron, airspeed error the throttle. The rudder
// stays neutral. The loops are exported for gain tuning, adjust them
// before engaging.
type Autopilot struct {
	Altitude *PID
	Heading  *PID
	Airspeed *PID

	flight   Flight
	controls ControlSource

	throttleBase float64
	engaged      bool
}

func New(flight Flight, controls ControlSource) *Autopilot {
	return &Autopilot{
		Altitude: NewPID(altitudeKp, 0, altitudeKd, 0),
		Heading:  NewPID(headingKp, 0, headingKd, 0),
		Airspeed: NewPID(airspeedKp, airspeedKi, 0, 0),
		flight:   flight,
		controls: controls,
	}
}

// Engage captures the current altitude, heading and airspeed as the
// hold targets and the current throttle as the feedforward base, then
// starts the loops fresh.
func (a *Autopilot) Engage() {
	a.Altitude.Retarget(a.flight.Altitude())
	a.Heading.Retarget(a.flight.Position().Heading)
	a.Airspeed.Retarget(a.flight.Airspeed())
	a.throttleBase = a.controls.Controls().Throttle
	a.engaged = true

	log.Debug().
		Float64("altitude", a.Altitude.Target).
		Float64("heading", a.Heading.Target).
		Float64("airspeed", a.Airspeed.Target).
		Msg("autopilot engaged")
}

// Disengage stops the hold loops. The last commands stay on the
// controls, releasing them is the caller's business.
func (a *Autopilot) Disengage() {
	a.engaged = false
	log.Debug().Msg("autopilot disengaged")
}

func (a *Autopilot) Engaged() bool { return a.engaged }

// SetAltitude retargets the altitude hold, in meters.
func (a *Autopilot) SetAltitude(m float64) { a.Altitude.Retarget(m) }

// SetHeading retargets the heading hold, in degrees, normalized into
// [0, 360).
func (a *Autopilot) SetHeading(deg float64) {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	a.Heading.Retarget(h)
}

// SetAirspeed retargets the airspeed hold, in m/s.
func (a *Autopilot) SetAirspeed(ms float64) { a.Airspeed.Retarget(ms) }

// Targets reports the three hold targets.
func (a *Autopilot) Targets() (altitude, heading, airspeed float64) {
	return a.Altitude.Target, a.Heading.Target, a.Airspeed.Target
}

// Update computes one frame of control commands from the current
// flight state. Callers cycle it once per frame and hand the result to
// the aircraft before stepping.
func (a *Autopilot) Update() (aileron, elevator, rudder, throttle float64) {
	t := a.flight.SimTime()

	elevator = clamp(a.Altitude.Compute(a.flight.Altitude(), t),
		-maxDeflection, maxDeflection)

	// Unwrap the measured heading into the half turn around the target
	// so the loop never commands the long way around the compass.
	hdg := a.flight.Position().Heading
	hdg = a.Heading.Target + math.Mod(hdg-a.Heading.Target+540, 360) - 180
	aileron = clamp(a.Heading.Compute(hdg, t),
		-maxDeflection, maxDeflection)

	throttle = clamp(a.throttleBase+a.Airspeed.Compute(a.flight.Airspeed(), t),
		0, 1)

	return aileron, elevator, 0, throttle
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
