package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStep    = 5e-6
	DefaultGamma   = 1.0
	DefaultMethod  = "midpoint"
	DefaultSamples = 10000
)

// Config describes one solve for the CLI. Field maps are two-column
// text files (z in meters, field value); both are resampled onto a
// uniform grid of Samples points spanning [0, Length].
type Config struct {
	EzMap      string  `yaml:"ez_map"`
	BzMap      string  `yaml:"bz_map"`
	Length     float64 `yaml:"length"`
	Samples    int     `yaml:"samples"`
	Gamma      float64 `yaml:"gamma"`
	Method     string  `yaml:"method"`
	Cumulative bool    `yaml:"cumulative"`
}

func DefaultConfig() *Config {
	return &Config{
		Samples: DefaultSamples,
		Gamma:   DefaultGamma,
		Method:  DefaultMethod,
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
