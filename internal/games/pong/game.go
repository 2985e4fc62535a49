// Package pong implements single-player Pong against a CPU paddle.
// The player controls the left paddle with the pointer, drags or keys;
// the CPU tracks the ball with a capped speed on the right.
package pong

import (
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements registry.Game for one Pong variant.
type Game struct {
	variant    string
	cfg        config.PongConfig
	configured bool // cfg was supplied by the caller, skip loading
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	state      *State

	baseAISpeed float64
	autopilot   bool
	lastEvents  StepEvents

	paused      bool
	celebrating bool
	countdown   int
	winner      Side
	gameOver    bool
	matches     int // Matches decided since Reset
}

// New creates a game for the variant. Configuration is loaded on Reset.
func New(variant string) *Game {
	return &Game{variant: variant}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(variant string, cfg config.PongConfig) *Game {
	return &Game{variant: variant, cfg: cfg, configured: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == config.VariantClassic {
		return "Pong Classic"
	}
	return "Pong"
}

// Config returns the configuration in use.
func (g *Game) Config() config.PongConfig {
	return g.cfg
}

// SetAutopilot lets the CPU tracker drive the player paddle too.
func (g *Game) SetAutopilot(on bool) {
	g.autopilot = on
}

// LastEvents returns what happened during the most recent Step.
func (g *Game) LastEvents() StepEvents {
	return g.lastEvents
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.configured {
		g.cfg = loadConfig(g.variant)
	}
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.matches = 0
	g.newMatch()
}

// newMatch starts a fresh match on the current field.
func (g *Game) newMatch() {
	field := g.fieldFor(g.runtime)
	geo := NewGeometry(g.cfg, field)

	g.state = NewState(field, geo, g.rng)
	g.baseAISpeed = geo.Params.AIMaxSpeed
	g.state.Params.AIMaxSpeed = g.difficulty.AISpeed(g.baseAISpeed, 0)

	g.paused = false
	g.celebrating = false
	g.countdown = 0
	g.winner = SideNone
	g.gameOver = false
	g.lastEvents = StepEvents{}
}

// fieldFor returns the field size for the runtime screen.
func (g *Game) fieldFor(runtime core.RuntimeConfig) Field {
	f := g.cfg.Field
	if !f.Responsive {
		return Field{W: f.Width, H: f.Height}
	}
	return Field{
		W: float64(core.Max(runtime.ScreenW, 1)) * f.CellWidth,
		H: float64(core.Max(runtime.ScreenH, 1)) * f.CellHeight,
	}
}

// Resize adapts a responsive field to new screen dimensions without
// restarting the match. Fixed fields only record the new screen size.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH
	if g.state == nil || !g.cfg.Field.Responsive {
		return
	}

	field := g.fieldFor(g.runtime)
	if field == g.state.Field {
		return
	}
	geo := NewGeometry(g.cfg, field)
	Rescale(g.state, field, geo)
	g.baseAISpeed = geo.Params.AIMaxSpeed
	g.state.Params.AIMaxSpeed = g.difficulty.AISpeed(g.baseAISpeed, g.state.Score.Left)
}

// Step advances the game by one tick.
// Once a match is decided nothing moves until the celebration ends.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == nil || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.celebrating {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.celebrating {
		g.countdown--
		if g.countdown <= 0 {
			g.endCelebration()
		}
		return core.StepResult{State: g.State()}
	}

	ApplyInput(g.state, in)
	if g.autopilot {
		Track(g.state, &g.state.Left, g.baseAISpeed)
	}

	g.lastEvents = Step(g.state)
	if g.lastEvents.Scored != SideNone {
		g.state.Params.AIMaxSpeed = g.difficulty.AISpeed(g.baseAISpeed, g.state.Score.Left)
		g.checkWin()
	}

	return core.StepResult{State: g.State()}
}

// checkWin freezes the match once either side reaches the win score.
func (g *Game) checkWin() {
	target := g.cfg.Gameplay.WinScore
	if target <= 0 {
		return
	}

	switch {
	case g.state.Score.Left >= target:
		g.winner = SideLeft
	case g.state.Score.Right >= target:
		g.winner = SideRight
	default:
		return
	}

	g.matches++
	g.celebrating = true
	g.countdown = g.cfg.Gameplay.CelebrationFrames
	if g.countdown <= 0 {
		g.endCelebration()
	}
}

// endCelebration either halts on the final score or starts a new match.
func (g *Game) endCelebration() {
	g.celebrating = false
	g.countdown = 0
	if g.cfg.Gameplay.AfterWin == config.AfterWinRestart {
		g.newMatch()
		return
	}
	g.gameOver = true
}

// Matches returns how many matches were decided since Reset.
func (g *Game) Matches() int {
	return g.matches
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}
	Render(g.Snapshot(), core.NewFieldCanvas(dst, g.state.Field.W, g.state.Field.H))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:       g.state.Score.Left,
		Opponent:    g.state.Score.Right,
		GameOver:    g.gameOver,
		Paused:      g.paused,
		Celebrating: g.celebrating,
	}
}

// Summary describes the current (or just decided) match for storage.
func (g *Game) Summary() core.MatchSummary {
	if g.state == nil {
		return core.MatchSummary{}
	}
	return core.MatchSummary{
		PlayerScore:   g.state.Score.Left,
		OpponentScore: g.state.Score.Right,
		Won:           g.winner == SideLeft,
		Decided:       g.winner != SideNone,
		LongestRally:  g.state.Rally.Longest,
		TopSpeed:      g.state.Rally.TopSpeed,
		Frames:        g.state.Frame,
	}
}

// loadConfig loads the variant config, falling back to defaults on error.
func loadConfig(variant string) config.PongConfig {
	cfg, err := config.LoadPong(variant, configPath)
	if err != nil {
		cfg = config.DefaultPongConfig(variant)
	}
	config.ApplyPongPreset(&cfg, difficultyPreset)
	return cfg
}

// Register both variants with the registry
func init() {
	for _, variant := range []string{config.VariantPong, config.VariantClassic} {
		registry.Register(variant, func() registry.Game {
			return New(variant)
		})
	}
}
