package fdm

import "math"

// International Standard Atmosphere constants for the troposphere.
const (
	seaLevelTemperature = 288.15   // K
	seaLevelPressure    = 101325.0 // Pa
	temperatureLapse    = 0.0065   // K/m
	gasConstantAir      = 287.05   // J/(kg K)
	gravity             = 9.80665  // m/s^2
)

// StandardAtmosphere returns the ISA air state at the given altitude in
// meters. The model covers the troposphere, altitudes are clamped to
// [0, 11000].
func StandardAtmosphere(altitude float64) Atmosphere {
	h := math.Max(0, math.Min(altitude, 11000))
	t := seaLevelTemperature - temperatureLapse*h
	p := seaLevelPressure * math.Pow(t/seaLevelTemperature, gravity/(temperatureLapse*gasConstantAir))

	return Atmosphere{
		Temperature: t,
		Pressure:    p,
		Density:     p / (gasConstantAir * t),
	}
}
