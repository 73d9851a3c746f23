package config

import "sort"

// Preset is a built-in beamline with synthetic on-axis fields, usable
// without external field-map files.
type Preset struct {
	Description string
	Length      float64 // m
	Samples     int
	Gamma       float64
	Method      string
	Ez          func(z float64) float64 // V/m
	Bz          func(z float64) float64 // T
}

// Fields samples the preset's profiles onto its uniform grid and
// returns the arrays together with the grid spacing.
func (p *Preset) Fields() (ez, bz []float64, h float64) {
	n := p.Samples
	h = p.Length / float64(n-1)
	ez = make([]float64, n)
	bz = make([]float64, n)
	for i := 0; i < n; i++ {
		z := float64(i) * h
		ez[i] = p.Ez(z)
		bz[i] = p.Bz(z)
	}
	return ez, bz, h
}

var presets = map[string]*Preset{
	"gun": {
		Description: "dc gun from rest: 2 MV/m gap over 5 mm, 6 mT solenoid at 0.1-0.2 m",
		Length:      0.5,
		Samples:     100001,
		Gamma:       1,
		Method:      DefaultMethod,
		Ez: func(z float64) float64 {
			if z < 0.005 {
				return 2e6
			}
			return 0
		},
		Bz: func(z float64) float64 {
			if z >= 0.1 && z < 0.2 {
				return 6e-3
			}
			return 0
		},
	},
	"solenoid": {
		Description: "relativistic beam (gamma 4) through a 20 mT solenoid",
		Length:      0.4,
		Samples:     20001,
		Gamma:       4,
		Method:      DefaultMethod,
		Ez:          func(z float64) float64 { return 0 },
		Bz: func(z float64) float64 {
			if z >= 0.1 && z < 0.3 {
				return 20e-3
			}
			return 0
		},
	},
	"drift": {
		Description: "field-free drift at gamma 2",
		Length:      1.0,
		Samples:     5001,
		Gamma:       2,
		Method:      DefaultMethod,
		Ez:          func(z float64) float64 { return 0 },
		Bz:          func(z float64) float64 { return 0 },
	},
}

func GetPreset(name string) *Preset {
	return presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
