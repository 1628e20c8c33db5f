package config

import "math"

// DifficultyManager derives setup-time game parameters from the difficulty
// configuration.
type DifficultyManager struct {
	cfg   DifficultyConfig
	level float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		level: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the difficulty level (0.0 to 1.0), or 0 when disabled.
func (d *DifficultyManager) Level() float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return d.level
}

// SpeedFactor returns the factor applied to the initial ball velocity.
func (d *DifficultyManager) SpeedFactor() float64 {
	return 1.0 + d.Level()*d.cfg.Scaling.SpeedMultiplier
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
