package pong

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// newTestState builds an 800x500 state with the default geometry.
func newTestState(t *testing.T, seed int64) *State {
	t.Helper()
	cfg := config.DefaultPongConfig(config.VariantClassic)
	field := Field{W: 800, H: 500}
	return NewState(field, NewGeometry(cfg, field), rand.New(rand.NewSource(seed)))
}

// place sets the ball's position and velocity, keeping Speed consistent.
func place(s *State, x, y, dx, dy float64) {
	s.Ball.X, s.Ball.Y = x, y
	s.Ball.PrevX = x
	s.Ball.DX, s.Ball.DY = dx, dy
	s.Ball.Speed = math.Hypot(dx, dy)
}

func TestGeometryReferenceScaling(t *testing.T) {
	cfg := config.DefaultPongConfig(config.VariantPong)

	geo := NewGeometry(cfg, Field{W: 800, H: 500})
	if geo.PaddleW != 12 || geo.PaddleH != 80 || geo.BallRadius != 10 {
		t.Errorf("reference geometry = %+v", geo)
	}
	if geo.Params.BaseSpeed != 5 || geo.Params.AIMaxSpeed != 7 {
		t.Errorf("reference params = %+v", geo.Params)
	}

	small := NewGeometry(cfg, Field{W: 200, H: 250})
	if small.BallRadius != 4 {
		t.Errorf("ball radius should floor at 4, got %v", small.BallRadius)
	}
	if small.PaddleH != 40 || small.Params.AIMaxSpeed != 3.5 {
		t.Errorf("vertical sizes should follow height: %+v", small)
	}
}

func TestPaddlesStayInBounds(t *testing.T) {
	s := newTestState(t, 7)
	rng := rand.New(rand.NewSource(99))

	for frame := 0; frame < 5000; frame++ {
		in := core.NewInputFrame()
		switch rng.Intn(4) {
		case 0:
			in.SetPointer(rng.Float64()*3 - 1) // Includes samples outside the field
		case 1:
			in.AddDrag(rng.Float64()*2 - 1)
		case 2:
			in.Set(core.ActionUp)
		case 3:
			in.Set(core.ActionDown)
		}
		ApplyInput(s, in)
		Step(s)

		for _, p := range []Paddle{s.Left, s.Right} {
			if p.Y < 0 || p.Y > s.Field.H-p.H {
				t.Fatalf("frame %d: paddle top %v outside [0, %v]", frame, p.Y, s.Field.H-p.H)
			}
		}
	}
}

func TestBallStaysInsideHorizontalBounds(t *testing.T) {
	s := newTestState(t, 3)

	for frame := 0; frame < 5000; frame++ {
		Step(s)
		b := s.Ball
		if b.X < -b.Radius || b.X > s.Field.W+b.Radius {
			t.Fatalf("frame %d: ball x %v escaped without scoring", frame, b.X)
		}
		if !approx(b.Speed, math.Hypot(b.DX, b.DY)) {
			t.Fatalf("frame %d: speed %v != |v| %v", frame, b.Speed, math.Hypot(b.DX, b.DY))
		}
	}
}

func TestWallBounce(t *testing.T) {
	tests := []struct {
		name  string
		y, dy float64
		wantY float64
	}{
		{"top", 12, -4, 10},
		{"bottom", 488, 4, 490},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, 1)
			place(s, 400, tc.y, 3, tc.dy)

			ev := Step(s)

			if !ev.WallBounce {
				t.Fatal("expected a wall bounce")
			}
			if s.Ball.Y != tc.wantY {
				t.Errorf("ball y = %v, expected clamp to %v", s.Ball.Y, tc.wantY)
			}
			if s.Ball.DY != -tc.dy {
				t.Errorf("dy = %v, expected exact negation %v", s.Ball.DY, -tc.dy)
			}
			if s.Ball.DX != 3 || s.Ball.Speed != 5 {
				t.Errorf("wall bounce changed horizontal speed: dx=%v speed=%v", s.Ball.DX, s.Ball.Speed)
			}
		})
	}
}

func TestImpactOffset(t *testing.T) {
	p := Paddle{Y: 100, H: 80}

	tests := []struct {
		y, want float64
	}{
		{140, 0},
		{100, -1},
		{180, 1},
		{120, -0.5},
	}
	for _, tc := range tests {
		if got := p.ImpactOffset(tc.y); got != tc.want {
			t.Errorf("ImpactOffset(%v) = %v, expected %v", tc.y, got, tc.want)
		}
	}

	// Scaled by speed: centre gives no vertical speed, edges give full speed
	speed := 6.5
	if v := speed * p.ImpactOffset(140); v != 0 {
		t.Errorf("centre hit vertical velocity = %v", v)
	}
	if v := speed * p.ImpactOffset(180); v != speed {
		t.Errorf("edge hit vertical velocity = %v, expected %v", v, speed)
	}
}

func TestPaddleHit(t *testing.T) {
	tests := []struct {
		name    string
		x, dx   float64
		side    Side
		wantDir float64
		wantX   float64
	}{
		{"left paddle", 25, -5, SideLeft, 1, 12 + 10 + 1},
		{"right paddle", 775, 5, SideRight, -1, 788 - 10 - 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, 1)
			s.Left.Y, s.Right.Y = 210, 210
			place(s, tc.x, 250, tc.dx, 0)

			ev := Step(s)

			if ev.PaddleHit != tc.side {
				t.Fatalf("PaddleHit = %v, expected %v", ev.PaddleHit, tc.side)
			}
			if !approx(s.Ball.Speed, 5*1.07) {
				t.Errorf("speed = %v, expected %v", s.Ball.Speed, 5*1.07)
			}
			if core.Sign(s.Ball.DX) != tc.wantDir {
				t.Errorf("dx = %v, expected direction %v", s.Ball.DX, tc.wantDir)
			}
			if s.Ball.DY != 0 {
				t.Errorf("centre hit should leave dy = 0, got %v", s.Ball.DY)
			}
			if s.Ball.X != tc.wantX {
				t.Errorf("ball x = %v, expected flush at %v", s.Ball.X, tc.wantX)
			}
			if s.Rally.Hits != 1 || s.Rally.Longest != 1 {
				t.Errorf("rally = %+v", s.Rally)
			}
		})
	}
}

func TestPaddleEdgeHitDeflectsAtFullSpeed(t *testing.T) {
	s := newTestState(t, 1)
	s.Left.Y = 250
	// After integration the ball sits exactly on the paddle's top edge.
	place(s, 25, 250, -5, 0)

	Step(s)

	// dy was set to -speed, then both components were rescaled together.
	if !approx(math.Abs(s.Ball.DX), math.Abs(s.Ball.DY)) {
		t.Errorf("edge hit should leave at 45 degrees: dx=%v dy=%v", s.Ball.DX, s.Ball.DY)
	}
	if s.Ball.DY >= 0 || s.Ball.DX <= 0 {
		t.Errorf("edge hit should go up and right: dx=%v dy=%v", s.Ball.DX, s.Ball.DY)
	}
	if !approx(math.Hypot(s.Ball.DX, s.Ball.DY), s.Ball.Speed) {
		t.Error("velocity length should match speed after a hit")
	}
}

func TestNearVerticalApproachKeepsDirection(t *testing.T) {
	tests := []struct {
		name    string
		x, dx   float64
		wantDir float64
	}{
		{"left paddle", 22.005, -0.01, 1},
		{"right paddle", 777.995, 0.01, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, 1)
			s.Left.Y, s.Right.Y = 210, 210
			place(s, tc.x, 250, tc.dx, 5)
			before := s.Ball.Speed

			ev := Step(s)

			if ev.PaddleHit == SideNone {
				t.Fatal("expected a paddle hit")
			}
			if core.Sign(s.Ball.DX) != tc.wantDir {
				t.Fatalf("dx = %v, expected direction %v", s.Ball.DX, tc.wantDir)
			}
			if !approx(s.Ball.Speed, before*1.07) {
				t.Errorf("speed = %v, expected %v", s.Ball.Speed, before*1.07)
			}

			// Next tick must move the ball away from the paddle, not through it.
			x := s.Ball.X
			Step(s)
			if core.Sign(s.Ball.X-x) != tc.wantDir {
				t.Errorf("ball moved from %v to %v, expected direction %v", x, s.Ball.X, tc.wantDir)
			}
		})
	}
}

func TestScoring(t *testing.T) {
	tests := []struct {
		name      string
		x, dx     float64
		scorer    Side
		wantLeft  int
		wantRight int
		wantDir   float64
	}{
		{"exit right", 809.5, 5, SideLeft, 1, 0, -1},
		{"exit left", -9.5, -5, SideRight, 0, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, 1)
			s.Left.Y, s.Right.Y = 0, 0 // Out of the ball's way
			place(s, tc.x, 400, tc.dx, 0)

			ev := Step(s)

			if ev.Scored != tc.scorer {
				t.Fatalf("Scored = %v, expected %v", ev.Scored, tc.scorer)
			}
			if s.Score.Left != tc.wantLeft || s.Score.Right != tc.wantRight {
				t.Errorf("score = %+v", s.Score)
			}
			if s.Ball.X != 400 || s.Ball.Y != 250 {
				t.Errorf("ball should be re-centred, at (%v, %v)", s.Ball.X, s.Ball.Y)
			}
			if core.Sign(s.Ball.DX) != tc.wantDir {
				t.Errorf("serve dx = %v, expected direction %v", s.Ball.DX, tc.wantDir)
			}
		})
	}
}

func TestServeSpeedAndAngle(t *testing.T) {
	s := newTestState(t, 42)
	limit := 22.5 * math.Pi / 180

	tests := []struct {
		name      string
		prior     float64
		wantSpeed float64
	}{
		{"fast rally halves", 40, 20},
		{"slow rally floors at base", 6, 5},
		{"exactly double base", 10, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				s.Ball.Speed = tc.prior
				dir := float64(i%3 - 1) // -1, 0, 1
				Serve(s, dir)

				if s.Ball.Speed != tc.wantSpeed {
					t.Fatalf("speed = %v, expected %v", s.Ball.Speed, tc.wantSpeed)
				}
				angle := math.Atan2(math.Abs(s.Ball.DY), math.Abs(s.Ball.DX))
				if angle > limit+eps {
					t.Fatalf("launch angle %v exceeds %v", angle, limit)
				}
				if dir != 0 && core.Sign(s.Ball.DX) != dir {
					t.Fatalf("serve dx = %v, expected direction %v", s.Ball.DX, dir)
				}
				if !approx(math.Hypot(s.Ball.DX, s.Ball.DY), s.Ball.Speed) {
					t.Fatal("serve velocity length should match speed")
				}
			}
		})
	}
}

func TestServeRandomDirectionUsesBothSides(t *testing.T) {
	s := newTestState(t, 5)
	seen := map[float64]bool{}
	for i := 0; i < 100; i++ {
		Serve(s, 0)
		seen[core.Sign(s.Ball.DX)] = true
	}
	if !seen[1] || !seen[-1] {
		t.Errorf("random serves should go both ways, saw %v", seen)
	}
}

func TestAIPaddleSpeedCap(t *testing.T) {
	s := newTestState(t, 1)
	s.Right.Y = 0
	place(s, 400, 480, 0, 0)

	Step(s)
	if moved := s.Right.Y; moved > s.Params.AIMaxSpeed+eps {
		t.Errorf("AI moved %v, max %v", moved, s.Params.AIMaxSpeed)
	}

	// A score teleports the ball to the centre; the paddle still crawls.
	s.Right.Y = 420
	s.Left.Y = 0
	place(s, -9.5, 480, -5, 0)
	before := s.Right.Y

	ev := Step(s)
	if ev.Scored != SideRight {
		t.Fatal("expected the CPU to score")
	}
	if moved := math.Abs(s.Right.Y - before); moved > s.Params.AIMaxSpeed+eps {
		t.Errorf("AI moved %v after serve, max %v", moved, s.Params.AIMaxSpeed)
	}
}

func TestAIPaddleSettlesOnBall(t *testing.T) {
	s := newTestState(t, 1)
	s.Right.Y = 100
	place(s, 400, 250, 0, 0)

	for i := 0; i < 100; i++ {
		Step(s)
	}
	if s.Right.Y != 210 {
		t.Errorf("AI paddle top = %v, expected centred on ball at 210", s.Right.Y)
	}
}

func TestHorizontalTravelScenario(t *testing.T) {
	tests := []struct {
		name    string
		paddleY float64
		wantHit bool
	}{
		{"ball at paddle centre", 210, true},
		{"ball on top edge", 250, true},
		{"ball on bottom edge", 170, true},
		{"paddle just below ball", 250.5, false},
		{"paddle far above", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, 1)
			s.Left.Y = tc.paddleY
			place(s, 400, 250, -5, 0)

			hit := false
			for frame := 0; frame < 200; frame++ {
				prev := s.Ball.X
				ev := Step(s)
				if ev.PaddleHit == SideLeft {
					hit = true
					// The hit registers on the tick the leading edge reaches x=12.
					if prev-s.Ball.Radius <= 12 || prev-5-s.Ball.Radius > 12 {
						t.Errorf("hit registered from x=%v", prev)
					}
					break
				}
				if ev.Scored != SideNone {
					break
				}
			}

			if hit != tc.wantHit {
				t.Errorf("hit = %v, expected %v", hit, tc.wantHit)
			}
		})
	}
}

func TestRepeatedHitsEscalateSpeed(t *testing.T) {
	s := newTestState(t, 1)
	s.Left.Y, s.Right.Y = 210, 210
	place(s, 400, 250, -5, 0)

	hits := 0
	last := s.Ball.Speed
	for frame := 0; frame < 10000 && hits < 12; frame++ {
		ev := Step(s)
		if ev.WallBounce || ev.Scored != SideNone {
			t.Fatalf("frame %d: unexpected event %+v", frame, ev)
		}
		if ev.PaddleHit == SideNone {
			continue
		}
		hits++
		if s.Ball.Speed <= last {
			t.Fatalf("hit %d: speed %v did not increase from %v", hits, s.Ball.Speed, last)
		}
		if want := 5 * math.Pow(1.07, float64(hits)); !approx(s.Ball.Speed, want) {
			t.Fatalf("hit %d: speed %v, expected %v", hits, s.Ball.Speed, want)
		}
		last = s.Ball.Speed
	}

	if hits != 12 {
		t.Fatalf("only %d hits happened", hits)
	}
	if s.Rally.Longest != 12 {
		t.Errorf("longest rally = %d, expected 12", s.Rally.Longest)
	}
}

func TestApplyInput(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		build func(*core.InputFrame)
		want  float64
	}{
		{"pointer centres paddle", 0, func(f *core.InputFrame) { f.SetPointer(0.5) }, 210},
		{"pointer below field clamps", 0, func(f *core.InputFrame) { f.SetPointer(2) }, 420},
		{"pointer above field clamps", 200, func(f *core.InputFrame) { f.SetPointer(-1) }, 0},
		{"drag applies gain", 100, func(f *core.InputFrame) { f.AddDrag(0.1) }, 135},
		{"key up", 100, func(f *core.InputFrame) { f.Set(core.ActionUp) }, 80},
		{"key down clamps", 415, func(f *core.InputFrame) { f.Set(core.ActionDown) }, 420},
		{"no input", 123, func(*core.InputFrame) {}, 123},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t, 1)
			s.Left.Y = tc.start
			in := core.NewInputFrame()
			tc.build(&in)

			ApplyInput(s, in)
			if !approx(s.Left.Y, tc.want) {
				t.Errorf("paddle top = %v, expected %v", s.Left.Y, tc.want)
			}
			if s.Right.Y != 210 {
				t.Error("input must not move the CPU paddle")
			}
		})
	}
}

func TestRescale(t *testing.T) {
	s := newTestState(t, 1)
	s.Score = Score{Left: 3, Right: 4}
	s.Left.Y = 420
	place(s, 200, 100, 3, 4)

	cfg := config.DefaultPongConfig(config.VariantPong)
	field := Field{W: 1600, H: 1000}
	Rescale(s, field, NewGeometry(cfg, field))

	if s.Ball.X != 400 || s.Ball.Y != 200 {
		t.Errorf("ball at (%v, %v), expected (400, 200)", s.Ball.X, s.Ball.Y)
	}
	if !approx(s.Ball.Speed, 10) || !approx(math.Hypot(s.Ball.DX, s.Ball.DY), 10) {
		t.Errorf("speed = %v, expected 10", s.Ball.Speed)
	}
	if s.Left.H != 160 || s.Left.Y != 840 {
		t.Errorf("left paddle = %+v", s.Left)
	}
	if s.Right.X != 1600-24 {
		t.Errorf("right paddle x = %v", s.Right.X)
	}
	if s.Score != (Score{Left: 3, Right: 4}) {
		t.Errorf("score changed on rescale: %+v", s.Score)
	}
}
