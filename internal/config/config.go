package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

const (
	DefaultDt        = 0.0166
	DefaultLatitude  = 37.9232
	DefaultLongitude = 23.9217
	DefaultAltitude  = 300.0
	DefaultAirspeed  = 30.0
	DefaultHeading   = 45.0

	DefaultTrimMode   = "full"
	DefaultOutputDir  = "runs"
	DefaultSampleRate = 10.0
)

type Config struct {
	DataPath    string                 `yaml:"data_path"`
	Dt          float64                `yaml:"dt"`
	TrimMode    string                 `yaml:"trim_mode"`
	StartPaused bool                   `yaml:"start_paused"`
	Initial     InitialConditionConfig `yaml:"initial_condition"`
	Output      OutputConfig           `yaml:"output"`
}

type InitialConditionConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Altitude  float64 `yaml:"altitude"`
	Airspeed  float64 `yaml:"airspeed"`
	Heading   float64 `yaml:"heading"`
}

type OutputConfig struct {
	Dir        string  `yaml:"dir"`
	SampleRate float64 `yaml:"sample_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		TrimMode: DefaultTrimMode,
		Initial: InitialConditionConfig{
			Latitude:  DefaultLatitude,
			Longitude: DefaultLongitude,
			Altitude:  DefaultAltitude,
			Airspeed:  DefaultAirspeed,
			Heading:   DefaultHeading,
		},
		Output: OutputConfig{
			Dir:        DefaultOutputDir,
			SampleRate: DefaultSampleRate,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// TrimModeValue resolves the configured trim mode string.
func (c *Config) TrimModeValue() (fdm.TrimMode, error) {
	return fdm.ParseTrimMode(c.TrimMode)
}
