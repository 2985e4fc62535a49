// Package config provides YAML-based game configuration loading and
// difficulty management for the pong platform.
package config

import (
	"errors"
	"fmt"
)

// Variant identifiers. Each one has its own embedded default YAML.
const (
	VariantPong    = "pong"
	VariantClassic = "pong-classic"
)

// After-win behaviors.
const (
	AfterWinHalt    = "halt"
	AfterWinRestart = "restart"
)

// PongConfig contains all configuration for a Pong variant.
// Sizes and speeds are given in reference units of an 800x500 field and
// are scaled to the real field by the game.
type PongConfig struct {
	Field      PongField        `yaml:"field"`
	Ball       PongBall         `yaml:"ball"`
	Paddles    PongPaddles      `yaml:"paddles"`
	AI         PongAI           `yaml:"ai"`
	Input      PongInput        `yaml:"input"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongField defines the play field.
type PongField struct {
	// Responsive fields are sized from the terminal and recomputed on resize.
	Responsive bool `yaml:"responsive"`
	// Width and Height are used when the field is not responsive.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// CellWidth and CellHeight are field units per terminal cell (responsive only).
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	// Reference dimensions the other sizes are expressed against.
	ReferenceWidth  float64 `yaml:"reference_width"`
	ReferenceHeight float64 `yaml:"reference_height"`
}

// PongBall defines ball parameters.
type PongBall struct {
	Radius          float64 `yaml:"radius"`
	MinRadius       float64 `yaml:"min_radius"`
	BaseSpeed       float64 `yaml:"base_speed"`
	SpeedUp         float64 `yaml:"speed_up"`          // Multiplier applied on every paddle hit
	LaunchSpreadDeg float64 `yaml:"launch_spread_deg"` // Max serve angle from horizontal
	BounceOffset    float64 `yaml:"bounce_offset"`     // Gap left between ball and paddle after a hit
}

// PongPaddles defines paddle dimensions.
type PongPaddles struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PongAI defines the CPU paddle.
type PongAI struct {
	MaxSpeed float64 `yaml:"max_speed"` // Max movement per frame
}

// PongInput defines how pointer and keyboard input move the player paddle.
type PongInput struct {
	DragGain float64 `yaml:"drag_gain"` // Fraction of a drag delta applied to the paddle
	KeyStep  float64 `yaml:"key_step"`  // Paddle movement per key press
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore          int    `yaml:"win_score"` // 0 = endless
	CelebrationFrames int    `yaml:"celebration_frames"`
	AfterWin          string `yaml:"after_win"` // "halt" or "restart"
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a match.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Player points at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	AISpeedMultiplier float64 `yaml:"ai_speed_multiplier"` // Added to AI speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown values map to "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Validate reports the first nonsensical value in the config.
func (c PongConfig) Validate() error {
	invalid := func(field string, v any) error {
		return fmt.Errorf("%w: %s = %v", ErrInvalid, field, v)
	}

	if c.Field.Responsive {
		if c.Field.CellWidth <= 0 {
			return invalid("field.cell_width", c.Field.CellWidth)
		}
		if c.Field.CellHeight <= 0 {
			return invalid("field.cell_height", c.Field.CellHeight)
		}
	} else {
		if c.Field.Width <= 0 {
			return invalid("field.width", c.Field.Width)
		}
		if c.Field.Height <= 0 {
			return invalid("field.height", c.Field.Height)
		}
	}
	if c.Field.ReferenceWidth <= 0 || c.Field.ReferenceHeight <= 0 {
		return invalid("field.reference", fmt.Sprintf("%vx%v", c.Field.ReferenceWidth, c.Field.ReferenceHeight))
	}
	if c.Ball.Radius <= 0 {
		return invalid("ball.radius", c.Ball.Radius)
	}
	if c.Ball.BaseSpeed <= 0 {
		return invalid("ball.base_speed", c.Ball.BaseSpeed)
	}
	if c.Ball.SpeedUp <= 1 {
		return invalid("ball.speed_up", c.Ball.SpeedUp)
	}
	if c.Ball.LaunchSpreadDeg <= 0 || c.Ball.LaunchSpreadDeg >= 90 {
		return invalid("ball.launch_spread_deg", c.Ball.LaunchSpreadDeg)
	}
	if c.Ball.BounceOffset < 0 {
		return invalid("ball.bounce_offset", c.Ball.BounceOffset)
	}
	if c.Paddles.Width <= 0 || c.Paddles.Height <= 0 {
		return invalid("paddles", fmt.Sprintf("%vx%v", c.Paddles.Width, c.Paddles.Height))
	}
	if c.Paddles.Height >= c.Field.ReferenceHeight {
		return invalid("paddles.height", c.Paddles.Height)
	}
	if c.AI.MaxSpeed <= 0 {
		return invalid("ai.max_speed", c.AI.MaxSpeed)
	}
	if c.Gameplay.WinScore < 0 {
		return invalid("gameplay.win_score", c.Gameplay.WinScore)
	}
	if c.Gameplay.CelebrationFrames < 0 {
		return invalid("gameplay.celebration_frames", c.Gameplay.CelebrationFrames)
	}
	switch c.Gameplay.AfterWin {
	case AfterWinHalt, AfterWinRestart:
	default:
		return invalid("gameplay.after_win", c.Gameplay.AfterWin)
	}
	switch c.Difficulty.Progression.Type {
	case "score", "none", "":
	default:
		return invalid("difficulty.progression.type", c.Difficulty.Progression.Type)
	}
	return nil
}
