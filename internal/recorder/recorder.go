// Package recorder captures timestamped flight samples during a run and
// persists finished runs under a base directory, one subdirectory per
// run holding a metadata.json and a samples.csv.
package recorder

import (
	"math"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

// Flight is the slice of the flight dynamics surface the recorder
// samples. [fdm.Exec] satisfies it.
type Flight interface {
	SimTime() float64
	Position() fdm.Position
	Attitude() fdm.Attitude
	Airspeed() float64
	ClimbRate() float64
}

// ControlSource yields the control commands in effect, typically the
// aircraft facade.
type ControlSource interface {
	Controls() fdm.Controls
}

// Sample is one recorded flight state row.
type Sample struct {
	Time      float64      `json:"time"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Altitude  float64      `json:"altitude"`
	Airspeed  float64      `json:"airspeed"`
	Heading   float64      `json:"heading"`
	Roll      float64      `json:"roll"`
	Pitch     float64      `json:"pitch"`
	ClimbRate float64      `json:"climb_rate"`
	Controls  fdm.Controls `json:"controls"`
}

// Recorder samples a flight at a fixed rate. Observations between
// sampling points are dropped.
type Recorder struct {
	flight   Flight
	controls ControlSource
	interval float64
	nextAt   float64
	samples  []Sample
}

// New returns a recorder sampling at rate Hz. A rate of zero or less
// records every observation.
func New(flight Flight, controls ControlSource, rate float64) *Recorder {
	r := &Recorder{flight: flight, controls: controls}
	if rate > 0 {
		r.interval = 1.0 / rate
	}
	return r
}

// Observe records the current flight state unless the sampling interval
// since the last recorded sample has not yet passed. Callers cycle it
// once per frame.
func (r *Recorder) Observe() {
	t := r.flight.SimTime()
	if len(r.samples) > 0 && t < r.nextAt {
		return
	}

	pos := r.flight.Position()
	att := r.flight.Attitude()
	r.samples = append(r.samples, Sample{
		Time:      t,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Altitude:  pos.Altitude,
		Airspeed:  r.flight.Airspeed(),
		Heading:   pos.Heading,
		Roll:      att.Roll,
		Pitch:     att.Pitch,
		ClimbRate: r.flight.ClimbRate(),
		Controls:  r.controls.Controls(),
	})
	r.nextAt = t + r.interval
}

// Samples returns the recorded rows in time order.
func (r *Recorder) Samples() []Sample { return r.samples }

// Duration is the time of the last recorded sample.
func (r *Recorder) Duration() float64 {
	if len(r.samples) == 0 {
		return 0
	}
	return r.samples[len(r.samples)-1].Time
}

// Metrics summarizes the recorded flight.
func (r *Recorder) Metrics() map[string]float64 {
	m := make(map[string]float64)
	if len(r.samples) == 0 {
		return m
	}

	first := r.samples[0]
	minAlt, maxAlt := first.Altitude, first.Altitude
	maxSpeed := first.Airspeed
	minClimb, maxClimb := first.ClimbRate, first.ClimbRate
	sumSpeed := 0.0
	sumEffort := 0.0

	for _, s := range r.samples {
		minAlt = math.Min(minAlt, s.Altitude)
		maxAlt = math.Max(maxAlt, s.Altitude)
		maxSpeed = math.Max(maxSpeed, s.Airspeed)
		minClimb = math.Min(minClimb, s.ClimbRate)
		maxClimb = math.Max(maxClimb, s.ClimbRate)
		sumSpeed += s.Airspeed
		sumEffort += math.Abs(s.Controls.Aileron) +
			math.Abs(s.Controls.Elevator) +
			math.Abs(s.Controls.Rudder)
	}

	last := r.samples[len(r.samples)-1]
	m["min_altitude"] = minAlt
	m["max_altitude"] = maxAlt
	m["max_airspeed"] = maxSpeed
	m["mean_airspeed"] = sumSpeed / float64(len(r.samples))
	m["min_climb_rate"] = minClimb
	m["max_climb_rate"] = maxClimb
	m["final_altitude"] = last.Altitude
	m["final_airspeed"] = last.Airspeed
	m["control_effort"] = sumEffort / float64(len(r.samples))

	return m
}
