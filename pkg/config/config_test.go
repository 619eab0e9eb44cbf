package config

import (
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	cfg := Default()
	cfg.InputImages = "a.png,b.png"
	cfg.OutputTensor = "out.pb"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Color {
		t.Error("Expected color loading by default")
	}
	if cfg.Crop != "-1,-1" {
		t.Errorf("Expected default crop \"-1,-1\", got %q", cfg.Crop)
	}
	if cfg.Scale != 256 {
		t.Errorf("Expected default scale 256, got %d", cfg.Scale)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestValidateMissingInputSource(t *testing.T) {
	cfg := Default()
	cfg.OutputTensor = "out.pb"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when neither input source is set")
	}
}

func TestValidateBothInputSources(t *testing.T) {
	cfg := validConfig()
	cfg.InputImageFile = "list.txt"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when both input sources are set")
	}
}

func TestValidateMissingOutput(t *testing.T) {
	cfg := validConfig()
	cfg.OutputTensor = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when output_tensor is empty")
	}
}

func TestCropSize(t *testing.T) {
	cfg := validConfig()

	cases := []struct {
		crop          string
		height, width int
	}{
		{"-1,-1", -1, -1},
		{"224,224", 224, 224},
		{"100, 200", 100, 200},
	}

	for _, tc := range cases {
		cfg.Crop = tc.crop
		height, width, err := cfg.CropSize()
		if err != nil {
			t.Errorf("CropSize(%q) failed: %v", tc.crop, err)
			continue
		}
		if height != tc.height || width != tc.width {
			t.Errorf("CropSize(%q): expected %d,%d got %d,%d", tc.crop, tc.height, tc.width, height, width)
		}
	}
}

func TestCropSizeInvalid(t *testing.T) {
	cfg := validConfig()

	for _, crop := range []string{"", "224", "224,224,224", "a,b"} {
		cfg.Crop = crop
		if _, _, err := cfg.CropSize(); err == nil {
			t.Errorf("Expected error for crop %q", crop)
		}
		if err := cfg.Validate(); err == nil {
			t.Errorf("Expected Validate to reject crop %q", crop)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := validConfig()
	cfg.Preprocess = "subtract128,bgrtorgb"
	cfg.Scale = 128
	cfg.TextOutput = true

	path := filepath.Join(t.TempDir(), "config.json")
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("Round trip mismatch:\n%+v\n%+v", loaded, cfg)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
