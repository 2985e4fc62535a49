package pong

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestGame creates a game with default config and a custom win setup.
func newTestGame(variant string, winScore, celebration int, afterWin string) *Game {
	cfg := config.DefaultPongConfig(variant)
	cfg.Gameplay.WinScore = winScore
	cfg.Gameplay.CelebrationFrames = celebration
	cfg.Gameplay.AfterWin = afterWin
	g := NewWithConfig(variant, cfg)
	g.Reset(testRuntime(1))
	return g
}

// forceCPUPoint sets the ball up to leave the field on the left next tick.
func forceCPUPoint(g *Game) {
	g.state.Left.Y = 0
	place(g.state, -9.5, 400, -5, 0)
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{config.VariantPong, config.VariantClassic} {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
		}
	}

	g, err := registry.Create(config.VariantClassic)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Pong Classic" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 3000)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%40 == 0 {
			inputs[i].SetPointer(float64(i%7) / 7)
		}
		if i%55 == 0 {
			inputs[i].AddDrag(-0.05)
		}
	}

	run := func() Snapshot {
		g := NewWithConfig(config.VariantPong, config.DefaultPongConfig(config.VariantPong))
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("Determinism failed:\n%+v\n%+v", a, b)
	}
}

func TestResponsiveFieldFollowsScreen(t *testing.T) {
	g := newTestGame(config.VariantPong, 12, 10, config.AfterWinHalt)

	if g.state.Field != (Field{W: 800, H: 480}) {
		t.Fatalf("field = %+v, expected 800x480", g.state.Field)
	}

	g.state.Score = Score{Left: 2, Right: 5}
	g.Resize(core.RuntimeConfig{ScreenW: 100, ScreenH: 30})

	if g.state.Field != (Field{W: 1000, H: 600}) {
		t.Errorf("field after resize = %+v, expected 1000x600", g.state.Field)
	}
	if g.state.Score != (Score{Left: 2, Right: 5}) {
		t.Error("resize must keep the score")
	}
	if !approx(g.state.Left.H, 96) {
		t.Errorf("paddle height = %v, expected 96", g.state.Left.H)
	}
}

func TestClassicFieldIsFixed(t *testing.T) {
	g := newTestGame(config.VariantClassic, 0, 0, config.AfterWinHalt)

	if g.state.Field != (Field{W: 800, H: 500}) {
		t.Fatalf("field = %+v, expected 800x500", g.state.Field)
	}
	g.Resize(core.RuntimeConfig{ScreenW: 120, ScreenH: 40})
	if g.state.Field != (Field{W: 800, H: 500}) {
		t.Errorf("classic field changed on resize: %+v", g.state.Field)
	}
}

func TestClassicIsEndless(t *testing.T) {
	g := newTestGame(config.VariantClassic, 0, 0, config.AfterWinHalt)
	g.state.Score.Right = 40

	forceCPUPoint(g)
	res := g.Step(core.NewInputFrame())

	if res.State.Opponent != 41 {
		t.Errorf("opponent score = %d", res.State.Opponent)
	}
	if res.State.Celebrating || res.State.GameOver {
		t.Error("endless variant should never end")
	}
}

func TestWinFreezesGameplayThenHalts(t *testing.T) {
	g := newTestGame(config.VariantPong, 1, 3, config.AfterWinHalt)

	forceCPUPoint(g)
	res := g.Step(core.NewInputFrame())
	if !res.State.Celebrating {
		t.Fatal("reaching the win score should start the celebration")
	}
	if g.Snapshot().Winner != SideRight {
		t.Errorf("winner = %v, expected right", g.Snapshot().Winner)
	}

	frozen := g.Snapshot()
	for i := 0; i < 2; i++ {
		in := core.NewInputFrame()
		in.SetPointer(0.9)
		g.Step(in)

		now := g.Snapshot()
		if now.Ball != frozen.Ball || now.Left != frozen.Left || now.Right != frozen.Right || now.Score != frozen.Score {
			t.Fatalf("tick %d: gameplay moved during celebration", i)
		}
	}

	res = g.Step(core.NewInputFrame())
	if res.State.Celebrating || !res.State.GameOver {
		t.Errorf("after the countdown the game should halt, got %+v", res.State)
	}

	// Halted games ignore further input
	before := g.Snapshot()
	g.Step(core.NewInputFrame())
	if g.Snapshot() != before {
		t.Error("halted game should not change")
	}

	sum := g.Summary()
	if sum.Won || !sum.Decided || sum.OpponentScore != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestWinThenAutoRestart(t *testing.T) {
	g := newTestGame(config.VariantPong, 1, 2, config.AfterWinRestart)

	forceCPUPoint(g)
	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	res := g.Step(core.NewInputFrame())

	if res.State.GameOver || res.State.Celebrating {
		t.Errorf("restart mode should begin a new match, got %+v", res.State)
	}
	if res.State.Score != 0 || res.State.Opponent != 0 {
		t.Errorf("new match should start at 0-0, got %d-%d", res.State.Score, res.State.Opponent)
	}
	if g.Matches() != 1 {
		t.Errorf("Matches() = %d, expected 1", g.Matches())
	}
}

func TestWinWithoutCelebration(t *testing.T) {
	g := newTestGame(config.VariantPong, 1, 0, config.AfterWinHalt)

	forceCPUPoint(g)
	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Error("zero celebration frames should halt immediately")
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newTestGame(config.VariantPong, 12, 10, config.AfterWinHalt)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("pause action should pause")
	}

	before := g.Snapshot()
	g.Step(core.NewInputFrame())
	if g.Snapshot() != before {
		t.Error("paused game should not change")
	}

	res = g.Step(pause)
	if res.State.Paused {
		t.Error("second pause action should resume")
	}
}

func TestAutopilotReturnsServes(t *testing.T) {
	g := newTestGame(config.VariantClassic, 0, 0, config.AfterWinHalt)
	g.SetAutopilot(true)

	hits := 0
	for i := 0; i < 3000; i++ {
		g.Step(core.NewInputFrame())
		if g.LastEvents().PaddleHit == SideLeft {
			hits++
		}
	}
	if hits == 0 {
		t.Error("autopilot should return at least one ball")
	}
}

func TestDifficultyRaisesAISpeed(t *testing.T) {
	cfg := config.DefaultPongConfig(config.VariantClassic)
	cfg.Difficulty = config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: "score", MaxAt: 2},
		Scaling:     config.ScalingConfig{AISpeedMultiplier: 1},
	}
	g := NewWithConfig(config.VariantClassic, cfg)
	g.Reset(testRuntime(1))

	if g.state.Params.AIMaxSpeed != 7 {
		t.Fatalf("initial AI speed = %v", g.state.Params.AIMaxSpeed)
	}

	g.state.Right.Y = 0
	place(g.state, 809.5, 400, 5, 0)
	g.Step(core.NewInputFrame())

	if g.state.Params.AIMaxSpeed != 10.5 {
		t.Errorf("AI speed after one player point = %v, expected 10.5", g.state.Params.AIMaxSpeed)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(config.VariantPong, 1, 5, config.AfterWinHalt)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, core.FillRune) {
		t.Error("render should draw paddles")
	}

	forceCPUPoint(g)
	g.Step(core.NewInputFrame())
	g.Render(screen)
	if !strings.Contains(screen.String(), "You lose") {
		t.Error("celebration overlay should announce the result")
	}
}

func TestStepBeforeReset(t *testing.T) {
	g := New(config.VariantPong)
	res := g.Step(core.NewInputFrame())
	if res.State != (core.GameState{}) {
		t.Errorf("unset game should report zero state, got %+v", res.State)
	}
	g.Render(core.NewScreen(10, 5)) // Must not panic
}
