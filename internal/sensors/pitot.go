package sensors

import "math/rand"

// PitotTube measures the total pressure seen by the pitot probe.
type PitotTube struct {
	sensor

	NoiseMu    float64
	NoiseSigma float64

	noise float64
}

// NewPitotTube returns a pitot tube updating at 250 Hz.
func NewPitotTube(source Source, rng *rand.Rand) *PitotTube {
	p := &PitotTube{
		sensor:     newSensor(source, 250.0, rng),
		NoiseMu:    100.0,
		NoiseSigma: 10.0,
	}
	p.update()
	p.scheduleUpdate()

	return p
}

func (p *PitotTube) update() {
	p.noise = p.gauss(p.NoiseMu, p.NoiseSigma)
}

func (p *PitotTube) refresh() {
	if p.needsUpdate() {
		p.update()
		p.scheduleUpdate()
	}
}

// Pressure is the measured total pressure in Pascal.
func (p *PitotTube) Pressure() float64 {
	p.refresh()
	return p.TruePressure() + p.noise
}

// TruePressure is the total pressure without sensor noise.
func (p *PitotTube) TruePressure() float64 {
	return p.source.TotalPressure()
}

// Noise is the noise carried by the current sample.
func (p *PitotTube) Noise() float64 {
	p.refresh()
	return p.noise
}
