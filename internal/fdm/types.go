package fdm

// Controls holds the normalized command setpoints for the primary flight
// controls. Aileron, elevator and rudder range over [-1, 1] and throttle
// over [0, 1]. The values are commands, not surface positions.
type Controls struct {
	Aileron  float64 `json:"aileron"`
	Elevator float64 `json:"elevator"`
	Rudder   float64 `json:"rudder"`
	Throttle float64 `json:"throttle"`
}

// Position is the geographic state of the aircraft.
type Position struct {
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	Altitude  float64 // meters above mean sea level
	Heading   float64 // degrees true, [0, 360)
}

// Attitude is the orientation of the aircraft body.
type Attitude struct {
	Roll  float64 // degrees, right wing down positive
	Pitch float64 // degrees, nose up positive
}

// Rates holds the body angular rates in degrees per second.
type Rates struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// Acceleration holds the body frame accelerations in m/s^2.
type Acceleration struct {
	X float64
	Y float64
	Z float64
}

// Atmosphere is the ambient air state at the aircraft's altitude.
type Atmosphere struct {
	Temperature float64 // kelvin
	Pressure    float64 // pascals, static
	Density     float64 // kg/m^3
}

// InitialConditions is the state the engine starts from and returns to
// on a reset.
type InitialConditions struct {
	Latitude  float64 // degrees
	Longitude float64 // degrees
	Altitude  float64 // meters
	Airspeed  float64 // m/s
	Heading   float64 // degrees
}
