package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadReveal loads Block Reveal configuration.
// Search order: customPath -> ~/.reveal/configs/reveal.yaml -> ./configs/reveal.yaml -> embedded default
func LoadReveal(customPath string) (RevealConfig, error) {
	return load("reveal.yaml", customPath, defaultRevealYAML, DefaultRevealConfig)
}

// load resolves a config file through the search order.
// Only an explicit customPath turns read or parse failures into errors; the
// other locations are optional and skipped when unusable. Each candidate is
// decoded on top of the hardcoded defaults so partial files stay playable.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := defaults()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".reveal", "configs", filename)
}

// ApplyRevealPreset modifies the config based on a difficulty preset.
func ApplyRevealPreset(cfg *RevealConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width = 90
		cfg.Ball.Multiplier = 1.01
	case DifficultyHard:
		cfg.Paddle.Width = 50
		cfg.Ball.Multiplier = 1.05
	}
}
