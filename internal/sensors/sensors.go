// Package sensors provides measurement models for the aircraft's sensor
// fit: accelerometer, gyroscope, thermometer, static pressure, pitot
// tube and inertial navigation.
//
// Every sensor samples a [Source] and serves a measurement of the form
// true value plus gaussian noise. Measurements refresh lazily at the
// sensor's update rate: reads inside the validity window return the
// same sample, the first read past it draws a new one.
package sensors

import (
	"math/rand"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

// Source is the slice of the flight dynamics surface the sensor models
// sample. [fdm.Exec] satisfies it.
type Source interface {
	SimTime() float64
	Acceleration() fdm.Acceleration
	Rates() fdm.Rates
	Atmosphere() fdm.Atmosphere
	TotalPressure() float64
	Position() fdm.Position
	Attitude() fdm.Attitude
	Airspeed() float64
}

// sensor carries the update rate bookkeeping shared by every sensor
// model.
type sensor struct {
	source   Source
	rate     float64 // Hz
	updateAt float64
	rng      *rand.Rand
}

func newSensor(source Source, rate float64, rng *rand.Rand) sensor {
	return sensor{source: source, rate: rate, rng: rng}
}

func (s *sensor) needsUpdate() bool {
	return s.source.SimTime() > s.updateAt
}

func (s *sensor) scheduleUpdate() {
	s.updateAt = s.source.SimTime() + 1.0/s.rate
}

func (s *sensor) gauss(mu, sigma float64) float64 {
	return mu + sigma*s.rng.NormFloat64()
}

// Sensors bundles the full sensor fit of the aircraft over one source.
type Sensors struct {
	Accelerometer  *Accelerometer
	Gyroscope      *Gyroscope
	Thermometer    *Thermometer
	PressureSensor *PressureSensor
	PitotTube      *PitotTube
	INS            *InertialNavigationSystem
}

// NewSensors wires every sensor model to the source with one seeded
// noise stream, so a run is reproducible for a fixed seed.
func NewSensors(source Source, seed int64) *Sensors {
	rng := rand.New(rand.NewSource(seed))

	return &Sensors{
		Accelerometer:  NewAccelerometer(source, rng),
		Gyroscope:      NewGyroscope(source, rng),
		Thermometer:    NewThermometer(source, rng),
		PressureSensor: NewPressureSensor(source, rng),
		PitotTube:      NewPitotTube(source, rng),
		INS:            NewInertialNavigationSystem(source, rng),
	}
}
