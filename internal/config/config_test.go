package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Samples != DefaultSamples {
		t.Errorf("Samples = %d, want %d", cfg.Samples, DefaultSamples)
	}
	if cfg.Gamma != DefaultGamma {
		t.Errorf("Gamma = %g, want %g", cfg.Gamma, DefaultGamma)
	}
	if cfg.Method != DefaultMethod {
		t.Errorf("Method = %q, want %q", cfg.Method, DefaultMethod)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solve.yaml")

	cfg := &Config{
		EzMap:      "ez.dat",
		BzMap:      "bz.dat",
		Length:     0.5,
		Samples:    100001,
		Gamma:      1.0,
		Method:     "constant_field",
		Cumulative: true,
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	// A hand-written partial file inherits the defaults for the keys
	// it leaves out.
	const partial = "length: 0.2\nez_map: ez.dat\n"
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Method != DefaultMethod {
		t.Errorf("Method = %q, want default %q", got.Method, DefaultMethod)
	}
	if got.Samples != DefaultSamples {
		t.Errorf("Samples = %d, want default %d", got.Samples, DefaultSamples)
	}
	if got.Length != 0.2 {
		t.Errorf("Length = %g, want 0.2", got.Length)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("gun")
	if p == nil {
		t.Fatal("GetPreset(gun) = nil")
	}
	if p.Gamma != 1.0 {
		t.Errorf("gun Gamma = %g, want 1", p.Gamma)
	}

	ez, bz, h := p.Fields()
	if len(ez) != p.Samples || len(bz) != p.Samples {
		t.Fatalf("Fields lengths = %d, %d, want %d", len(ez), len(bz), p.Samples)
	}
	if ez[0] == 0 {
		t.Error("gun preset must accelerate at z=0")
	}
	wantH := p.Length / float64(p.Samples-1)
	if h != wantH {
		t.Errorf("h = %g, want %g", h, wantH)
	}

	if GetPreset("warp-drive") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) < 3 {
		t.Fatalf("got %d presets, want at least 3", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
