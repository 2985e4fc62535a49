package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/pong-classic.yaml
var defaultClassicYAML []byte

// DefaultPongConfig returns the hardcoded configuration for a variant.
// It matches the embedded YAML and is the fallback when that fails to parse.
func DefaultPongConfig(variant string) PongConfig {
	cfg := PongConfig{
		Field: PongField{
			Responsive:      true,
			Width:           800,
			Height:          500,
			CellWidth:       10,
			CellHeight:      20,
			ReferenceWidth:  800,
			ReferenceHeight: 500,
		},
		Ball: PongBall{
			Radius:          10,
			MinRadius:       4,
			BaseSpeed:       5,
			SpeedUp:         1.07,
			LaunchSpreadDeg: 22.5,
			BounceOffset:    1,
		},
		Paddles: PongPaddles{
			Width:  12,
			Height: 80,
		},
		AI: PongAI{
			MaxSpeed: 7,
		},
		Input: PongInput{
			DragGain: 0.7,
			KeyStep:  20,
		},
		Gameplay: PongGameplay{
			WinScore:          12,
			CelebrationFrames: 500,
			AfterWin:          AfterWinHalt,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 12,
			},
			Scaling: ScalingConfig{
				AISpeedMultiplier: 0.5,
			},
		},
	}

	if variant == VariantClassic {
		cfg.Field.Responsive = false
		cfg.Gameplay.WinScore = 0
		cfg.Gameplay.CelebrationFrames = 0
	}
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantPong:
		return defaultPongYAML
	case VariantClassic:
		return defaultClassicYAML
	default:
		return nil
	}
}
