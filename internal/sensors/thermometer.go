package sensors

import "math/rand"

// Thermometer measures the ambient air temperature. The true value is
// read straight from the atmosphere model, only the noise sample is
// held for the validity window.
type Thermometer struct {
	sensor

	NoiseMu    float64
	NoiseSigma float64

	noise float64
}

// NewThermometer returns a thermometer updating at 50 Hz.
func NewThermometer(source Source, rng *rand.Rand) *Thermometer {
	t := &Thermometer{
		sensor:     newSensor(source, 50.0, rng),
		NoiseMu:    0.1,
		NoiseSigma: 0.5,
	}
	t.update()
	t.scheduleUpdate()

	return t
}

func (t *Thermometer) update() {
	t.noise = t.gauss(t.NoiseMu, t.NoiseSigma)
}

func (t *Thermometer) refresh() {
	if t.needsUpdate() {
		t.update()
		t.scheduleUpdate()
	}
}

// Temperature is the measured air temperature in Kelvin.
func (t *Thermometer) Temperature() float64 {
	t.refresh()
	return t.TrueTemperature() + t.noise
}

// TrueTemperature is the ambient temperature without sensor noise.
func (t *Thermometer) TrueTemperature() float64 {
	return t.source.Atmosphere().Temperature
}

// Noise is the noise carried by the current sample.
func (t *Thermometer) Noise() float64 {
	t.refresh()
	return t.noise
}
