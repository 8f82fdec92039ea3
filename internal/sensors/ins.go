package sensors

import "math/rand"

// InertialNavigationSystem measures attitude, position and airspeed
// with a per channel noise model. True values are read live from the
// source, the noise samples are held for the validity window.
type InertialNavigationSystem struct {
	sensor

	RollMu, RollSigma           float64
	PitchMu, PitchSigma         float64
	HeadingMu, HeadingSigma     float64
	LatitudeMu, LatitudeSigma   float64
	LongitudeMu, LongitudeSigma float64
	AirspeedMu, AirspeedSigma   float64
	AltitudeMu, AltitudeSigma   float64

	rollNoise, pitchNoise, headingNoise float64
	latitudeNoise, longitudeNoise       float64
	airspeedNoise, altitudeNoise        float64
}

// NewInertialNavigationSystem returns an INS updating at 5 Hz.
func NewInertialNavigationSystem(source Source, rng *rand.Rand) *InertialNavigationSystem {
	ins := &InertialNavigationSystem{
		sensor:         newSensor(source, 5.0, rng),
		RollMu:         1.0,
		RollSigma:      0.5,
		PitchMu:        0.7,
		PitchSigma:     0.2,
		HeadingMu:      2.1,
		HeadingSigma:   0.4,
		LatitudeMu:     0.0001,
		LatitudeSigma:  0.00005,
		LongitudeMu:    0.0001,
		LongitudeSigma: 0.00005,
		AirspeedMu:     3.0,
		AirspeedSigma:  1.0,
		AltitudeMu:     7.0,
		AltitudeSigma:  3.0,
	}
	ins.update()
	ins.scheduleUpdate()

	return ins
}

func (ins *InertialNavigationSystem) update() {
	ins.rollNoise = ins.gauss(ins.RollMu, ins.RollSigma)
	ins.pitchNoise = ins.gauss(ins.PitchMu, ins.PitchSigma)
	ins.headingNoise = ins.gauss(ins.HeadingMu, ins.HeadingSigma)
	ins.latitudeNoise = ins.gauss(ins.LatitudeMu, ins.LatitudeSigma)
	ins.longitudeNoise = ins.gauss(ins.LongitudeMu, ins.LongitudeSigma)
	ins.airspeedNoise = ins.gauss(ins.AirspeedMu, ins.AirspeedSigma)
	ins.altitudeNoise = ins.gauss(ins.AltitudeMu, ins.AltitudeSigma)
}

func (ins *InertialNavigationSystem) refresh() {
	if ins.needsUpdate() {
		ins.update()
		ins.scheduleUpdate()
	}
}

// Roll is the measured roll angle in degrees.
func (ins *InertialNavigationSystem) Roll() float64 {
	ins.refresh()
	return ins.TrueRoll() + ins.rollNoise
}

// Pitch is the measured pitch angle in degrees.
func (ins *InertialNavigationSystem) Pitch() float64 {
	ins.refresh()
	return ins.TruePitch() + ins.pitchNoise
}

// Heading is the measured heading in degrees.
func (ins *InertialNavigationSystem) Heading() float64 {
	ins.refresh()
	return ins.TrueHeading() + ins.headingNoise
}

// Latitude is the measured latitude in degrees.
func (ins *InertialNavigationSystem) Latitude() float64 {
	ins.refresh()
	return ins.TrueLatitude() + ins.latitudeNoise
}

// Longitude is the measured longitude in degrees.
func (ins *InertialNavigationSystem) Longitude() float64 {
	ins.refresh()
	return ins.TrueLongitude() + ins.longitudeNoise
}

// Airspeed is the measured true airspeed in m/s.
func (ins *InertialNavigationSystem) Airspeed() float64 {
	ins.refresh()
	return ins.TrueAirspeed() + ins.airspeedNoise
}

// Altitude is the measured altitude in meters.
func (ins *InertialNavigationSystem) Altitude() float64 {
	ins.refresh()
	return ins.TrueAltitude() + ins.altitudeNoise
}

// TrueRoll is the roll angle without sensor noise.
func (ins *InertialNavigationSystem) TrueRoll() float64 {
	return ins.source.Attitude().Roll
}

// TruePitch is the pitch angle without sensor noise.
func (ins *InertialNavigationSystem) TruePitch() float64 {
	return ins.source.Attitude().Pitch
}

// TrueHeading is the heading without sensor noise.
func (ins *InertialNavigationSystem) TrueHeading() float64 {
	return ins.source.Position().Heading
}

// TrueLatitude is the latitude without sensor noise.
func (ins *InertialNavigationSystem) TrueLatitude() float64 {
	return ins.source.Position().Latitude
}

// TrueLongitude is the longitude without sensor noise.
func (ins *InertialNavigationSystem) TrueLongitude() float64 {
	return ins.source.Position().Longitude
}

// TrueAirspeed is the airspeed without sensor noise.
func (ins *InertialNavigationSystem) TrueAirspeed() float64 {
	return ins.source.Airspeed()
}

// TrueAltitude is the altitude without sensor noise.
func (ins *InertialNavigationSystem) TrueAltitude() float64 {
	return ins.source.Position().Altitude
}
