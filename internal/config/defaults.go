package config

import (
	_ "embed"
)

//go:embed defaults/reveal.yaml
var defaultRevealYAML []byte

// DefaultLetters is the default hidden phrase, one character per block.
const DefaultLetters = "食べられる豆は何？らおせち料理としてうに」という願いか「体調を崩さないよ"

// DefaultRevealConfig returns the default Block Reveal configuration.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{
		Arena: RevealArena{
			Width:  480,
			Height: 540,
		},
		Blocks: RevealBlocks{
			Rows:         4,
			Cols:         9,
			Width:        40,
			Height:       40,
			Gap:          5,
			OffsetX:      35,
			OffsetBottom: 35,
		},
		Paddle: RevealPaddle{
			Width:  65,
			Height: 10,
			Y:      75, // 540 - (4+1)*45 - 240
			Step:   5,
		},
		Ball: RevealBall{
			Radius:     10,
			X:          240,
			Y:          255, // paddle top - diameter + 200
			VelocityX:  3,
			VelocityY:  3,
			Multiplier: 1.025,
		},
		Letters: DefaultLetters,
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "reveal":
		return defaultRevealYAML
	default:
		return nil
	}
}
