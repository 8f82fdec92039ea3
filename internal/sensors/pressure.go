package sensors

import "math/rand"

// PressureSensor measures the static pressure of the free stream.
type PressureSensor struct {
	sensor

	NoiseMu    float64
	NoiseSigma float64

	noise float64
}

// NewPressureSensor returns a static pressure sensor updating at
// 250 Hz.
func NewPressureSensor(source Source, rng *rand.Rand) *PressureSensor {
	p := &PressureSensor{
		sensor:     newSensor(source, 250.0, rng),
		NoiseMu:    100.0,
		NoiseSigma: 10.0,
	}
	p.update()
	p.scheduleUpdate()

	return p
}

func (p *PressureSensor) update() {
	p.noise = p.gauss(p.NoiseMu, p.NoiseSigma)
}

func (p *PressureSensor) refresh() {
	if p.needsUpdate() {
		p.update()
		p.scheduleUpdate()
	}
}

// Pressure is the measured static pressure in Pascal.
func (p *PressureSensor) Pressure() float64 {
	p.refresh()
	return p.TruePressure() + p.noise
}

// TruePressure is the static pressure without sensor noise.
func (p *PressureSensor) TruePressure() float64 {
	return p.source.Atmosphere().Pressure
}

// Noise is the noise carried by the current sample.
func (p *PressureSensor) Noise() float64 {
	p.refresh()
	return p.noise
}
