package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg RevealConfig
	if err := yaml.Unmarshal(GetDefaultYAML("reveal"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	want := DefaultRevealConfig()
	if cfg != want {
		t.Errorf("embedded default differs from DefaultRevealConfig():\n got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadRevealCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reveal.yaml")
	data := []byte("ball:\n  multiplier: 1.5\nletters: \"ABCD\"\nblocks:\n  rows: 2\n  cols: 2\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadReveal(path)
	if err != nil {
		t.Fatalf("LoadReveal() failed: %v", err)
	}

	if cfg.Ball.Multiplier != 1.5 {
		t.Errorf("Multiplier = %v, expected 1.5", cfg.Ball.Multiplier)
	}
	if cfg.Blocks.Rows != 2 || cfg.Blocks.Cols != 2 {
		t.Errorf("Grid = %dx%d, expected 2x2", cfg.Blocks.Rows, cfg.Blocks.Cols)
	}
	if cfg.Letters != "ABCD" {
		t.Errorf("Letters = %q, expected ABCD", cfg.Letters)
	}
	// Fields absent from the file keep their defaults
	if cfg.Arena.Width != 480 || cfg.Ball.VelocityX != 3 {
		t.Errorf("Missing fields should keep defaults, got width=%v vx=%v", cfg.Arena.Width, cfg.Ball.VelocityX)
	}
}

func TestLoadRevealErrors(t *testing.T) {
	if _, err := LoadReveal(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadReveal() with a missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("ball: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadReveal(bad); err == nil {
		t.Error("LoadReveal() with malformed YAML should fail")
	}
}

func TestApplyRevealPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		level      float64
		paddleW    float64
		multiplier float64
	}{
		{DifficultyEasy, true, 0.0, 90, 1.01},
		{DifficultyNormal, true, 0.3, 65, 1.025},
		{DifficultyHard, true, 0.7, 50, 1.05},
		{DifficultyFixed, false, 0.0, 65, 1.025},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRevealConfig()
			ApplyRevealPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Paddle.Width != tc.paddleW {
				t.Errorf("Paddle.Width = %v, expected %v", cfg.Paddle.Width, tc.paddleW)
			}
			if cfg.Ball.Multiplier != tc.multiplier {
				t.Errorf("Multiplier = %v, expected %v", cfg.Ball.Multiplier, tc.multiplier)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should return DifficultyHard")
	}
	if ParsePreset("insane") != "" {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestDifficultyManager(t *testing.T) {
	tests := []struct {
		name   string
		cfg    DifficultyConfig
		level  float64
		factor float64
	}{
		{"default", DefaultRevealConfig().Difficulty, 0, 1.0},
		{"disabled ignores level", DifficultyConfig{InitialLevel: 0.7, Scaling: ScalingConfig{SpeedMultiplier: 0.5}}, 0, 1.0},
		{"hard", DifficultyConfig{Enabled: true, InitialLevel: 0.7, Scaling: ScalingConfig{SpeedMultiplier: 0.5}}, 0.7, 1.35},
		{"level clamped", DifficultyConfig{Enabled: true, InitialLevel: 3, Scaling: ScalingConfig{SpeedMultiplier: 0.5}}, 1.0, 1.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDifficultyManager(tc.cfg)
			if got := d.Level(); got != tc.level {
				t.Errorf("Level() = %v, expected %v", got, tc.level)
			}
			if got := d.SpeedFactor(); math.Abs(got-tc.factor) > 1e-9 {
				t.Errorf("SpeedFactor() = %v, expected %v", got, tc.factor)
			}
		})
	}
}
