package sensors

import "math/rand"

// Accelerometer measures the acceleration of the body frame. True
// values and noise are sampled together, so a measurement stays
// consistent for the whole validity window.
type Accelerometer struct {
	sensor

	NoiseMu    float64
	NoiseSigma float64

	trueX, trueY, trueZ    float64
	noiseX, noiseY, noiseZ float64
}

// NewAccelerometer returns an accelerometer updating at 250 Hz.
func NewAccelerometer(source Source, rng *rand.Rand) *Accelerometer {
	a := &Accelerometer{
		sensor:     newSensor(source, 250.0, rng),
		NoiseSigma: 0.09,
	}
	a.update()
	a.scheduleUpdate()

	return a
}

func (a *Accelerometer) update() {
	accel := a.source.Acceleration()
	a.trueX = accel.X
	a.trueY = accel.Y
	a.trueZ = accel.Z

	a.noiseX = a.gauss(a.NoiseMu, a.NoiseSigma)
	a.noiseY = a.gauss(a.NoiseMu, a.NoiseSigma)
	a.noiseZ = a.gauss(a.NoiseMu, a.NoiseSigma)
}

func (a *Accelerometer) refresh() {
	if a.needsUpdate() {
		a.update()
		a.scheduleUpdate()
	}
}

// X is the measured acceleration along the body x axis in m/s^2.
func (a *Accelerometer) X() float64 {
	a.refresh()
	return a.trueX + a.noiseX
}

// Y is the measured acceleration along the body y axis in m/s^2.
func (a *Accelerometer) Y() float64 {
	a.refresh()
	return a.trueY + a.noiseY
}

// Z is the measured acceleration along the body z axis in m/s^2.
func (a *Accelerometer) Z() float64 {
	a.refresh()
	return a.trueZ + a.noiseZ
}

// TrueX is the acceleration the x axis noise was applied to.
func (a *Accelerometer) TrueX() float64 {
	a.refresh()
	return a.trueX
}

// TrueY is the acceleration the y axis noise was applied to.
func (a *Accelerometer) TrueY() float64 {
	a.refresh()
	return a.trueY
}

// TrueZ is the acceleration the z axis noise was applied to.
func (a *Accelerometer) TrueZ() float64 {
	a.refresh()
	return a.trueZ
}

// NoiseX is the noise carried by the current x axis sample.
func (a *Accelerometer) NoiseX() float64 {
	a.refresh()
	return a.noiseX
}

// NoiseY is the noise carried by the current y axis sample.
func (a *Accelerometer) NoiseY() float64 {
	a.refresh()
	return a.noiseY
}

// NoiseZ is the noise carried by the current z axis sample.
func (a *Accelerometer) NoiseZ() float64 {
	a.refresh()
	return a.noiseZ
}
