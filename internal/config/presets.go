package config

import "sort"

var Presets = map[string]*Config{
	"cruise": {
		Dt: DefaultDt, TrimMode: "full",
		Initial: InitialConditionConfig{
			Latitude: DefaultLatitude, Longitude: DefaultLongitude,
			Altitude: 300.0, Airspeed: 30.0, Heading: 45.0,
		},
	},
	"approach": {
		Dt: DefaultDt, TrimMode: "longitudinal",
		Initial: InitialConditionConfig{
			Latitude: DefaultLatitude, Longitude: DefaultLongitude,
			Altitude: 150.0, Airspeed: 22.0, Heading: 210.0,
		},
	},
	"mountain": {
		Dt: DefaultDt, TrimMode: "full",
		Initial: InitialConditionConfig{
			Latitude: 38.5412, Longitude: 22.0168,
			Altitude: 2400.0, Airspeed: 35.0, Heading: 315.0,
		},
	},
	"low-pass": {
		Dt: DefaultDt, TrimMode: "full",
		Initial: InitialConditionConfig{
			Latitude: DefaultLatitude, Longitude: DefaultLongitude,
			Altitude: 15.0, Airspeed: 30.0, Heading: 45.0,
		},
	},
	"parked": {
		Dt: DefaultDt, TrimMode: "ground", StartPaused: true,
		Initial: InitialConditionConfig{
			Latitude: DefaultLatitude, Longitude: DefaultLongitude,
			Altitude: 5.0, Airspeed: 0.0, Heading: 45.0,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
