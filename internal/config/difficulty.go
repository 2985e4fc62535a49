package config

import "math"

// DifficultyManager derives the CPU paddle speed from the difficulty level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsProgressive returns whether the level changes during a match.
func (d *DifficultyManager) IsProgressive() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type == "score"
}

// Level returns the current difficulty level (0.0 to 1.0) for the player's score.
// Without progression the level stays at the initial level.
func (d *DifficultyManager) Level(playerScore int) float64 {
	if !d.IsProgressive() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(playerScore)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// AISpeed returns the CPU paddle max speed for the player's score.
// Speed grows from base to base * (1 + ai_speed_multiplier).
func (d *DifficultyManager) AISpeed(base float64, playerScore int) float64 {
	return base * (1.0 + d.Level(playerScore)*d.cfg.Scaling.AISpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
