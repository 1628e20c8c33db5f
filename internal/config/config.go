// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

// RevealConfig contains all configuration for the Block Reveal game.
// Distances are in arena units; the default playfield is 480x540.
type RevealConfig struct {
	Arena      RevealArena      `yaml:"arena"`
	Blocks     RevealBlocks     `yaml:"blocks"`
	Paddle     RevealPaddle     `yaml:"paddle"`
	Ball       RevealBall       `yaml:"ball"`
	Letters    string           `yaml:"letters"` // One grapheme per block, row-major
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RevealArena defines the playfield bounds.
type RevealArena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RevealBlocks defines the block grid layout.
// Row 0 is the row nearest the bottom edge.
type RevealBlocks struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gap          float64 `yaml:"gap"`
	OffsetX      float64 `yaml:"offset_x"`
	OffsetBottom float64 `yaml:"offset_bottom"`
}

// RevealPaddle defines the paddle size, row and per-tick step.
type RevealPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`
	Step   float64 `yaml:"step"`
}

// RevealBall defines the ball's initial state and speed escalation.
type RevealBall struct {
	Radius     float64 `yaml:"radius"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	VelocityX  float64 `yaml:"velocity_x"`
	VelocityY  float64 `yaml:"velocity_y"`
	Multiplier float64 `yaml:"multiplier"` // Applied on every paddle or block hit
}

// DifficultyConfig defines the difficulty level used at setup.
// The level only scales the initial ball velocity; once a game is running
// the velocity changes through hit escalation alone.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the speed factor at level 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
