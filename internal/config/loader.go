package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPong loads the configuration for a Pong variant.
// Search order: customPath -> ~/.arcade/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default -> hardcoded default.
//
// Files are decoded over the hardcoded defaults, so a file only needs to
// mention the values it changes.
func LoadPong(variant, customPath string) (PongConfig, error) {
	if GetDefaultYAML(variant) == nil {
		return PongConfig{}, fmt.Errorf("config: unknown variant %q", variant)
	}
	filename := variant + ".yaml"

	// Try custom path first; failures here are reported, not skipped.
	if customPath != "" {
		cfg, err := decodeFile(variant, customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		if cfg, err := decodeFile(variant, path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultPongConfig(variant)
	if err := yaml.Unmarshal(GetDefaultYAML(variant), &cfg); err != nil || cfg.Validate() != nil {
		return DefaultPongConfig(variant), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeFile reads a YAML file on top of the variant defaults.
func decodeFile(variant, path string) (PongConfig, error) {
	cfg := DefaultPongConfig(variant)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPongPreset modifies the config based on a difficulty preset.
// Named presets turn on score progression from their initial level;
// fixed keeps the config's level for the whole match.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		cfg.Difficulty.Progression.Type = "score"
		if cfg.Difficulty.Progression.MaxAt <= 0 {
			cfg.Difficulty.Progression.MaxAt = cfg.Gameplay.WinScore
		}
	}
}
