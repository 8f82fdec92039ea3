package sensors

import "math/rand"

// Gyroscope measures the angular velocities of the body frame. Like the
// accelerometer it snapshots true values together with the noise.
type Gyroscope struct {
	sensor

	NoiseMu    float64
	NoiseSigma float64

	trueRoll, truePitch, trueYaw    float64
	noiseRoll, noisePitch, noiseYaw float64
}

// NewGyroscope returns a gyroscope updating at 100 Hz with a small
// constant bias on every axis.
func NewGyroscope(source Source, rng *rand.Rand) *Gyroscope {
	g := &Gyroscope{
		sensor:     newSensor(source, 100.0, rng),
		NoiseMu:    0.002,
		NoiseSigma: 0.0005,
	}
	g.update()
	g.scheduleUpdate()

	return g
}

func (g *Gyroscope) update() {
	rates := g.source.Rates()
	g.trueRoll = rates.Roll
	g.truePitch = rates.Pitch
	g.trueYaw = rates.Yaw

	g.noiseRoll = g.gauss(g.NoiseMu, g.NoiseSigma)
	g.noisePitch = g.gauss(g.NoiseMu, g.NoiseSigma)
	g.noiseYaw = g.gauss(g.NoiseMu, g.NoiseSigma)
}

func (g *Gyroscope) refresh() {
	if g.needsUpdate() {
		g.update()
		g.scheduleUpdate()
	}
}

// RollRate is the measured roll rate in degrees per second.
func (g *Gyroscope) RollRate() float64 {
	g.refresh()
	return g.trueRoll + g.noiseRoll
}

// PitchRate is the measured pitch rate in degrees per second.
func (g *Gyroscope) PitchRate() float64 {
	g.refresh()
	return g.truePitch + g.noisePitch
}

// YawRate is the measured yaw rate in degrees per second.
func (g *Gyroscope) YawRate() float64 {
	g.refresh()
	return g.trueYaw + g.noiseYaw
}

// TrueRollRate is the roll rate the noise was applied to.
func (g *Gyroscope) TrueRollRate() float64 {
	g.refresh()
	return g.trueRoll
}

// TruePitchRate is the pitch rate the noise was applied to.
func (g *Gyroscope) TruePitchRate() float64 {
	g.refresh()
	return g.truePitch
}

// TrueYawRate is the yaw rate the noise was applied to.
func (g *Gyroscope) TrueYawRate() float64 {
	g.refresh()
	return g.trueYaw
}

// NoiseRollRate is the noise carried by the current roll rate sample.
func (g *Gyroscope) NoiseRollRate() float64 {
	g.refresh()
	return g.noiseRoll
}

// NoisePitchRate is the noise carried by the current pitch rate sample.
func (g *Gyroscope) NoisePitchRate() float64 {
	g.refresh()
	return g.noisePitch
}

// NoiseYawRate is the noise carried by the current yaw rate sample.
func (g *Gyroscope) NoiseYawRate() float64 {
	g.refresh()
	return g.noiseYaw
}
