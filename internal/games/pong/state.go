package pong

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Side identifies one half of the field.
type Side int

const (
	SideNone  Side = iota
	SideLeft       // Player
	SideRight      // CPU
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Field is the play area in field units.
type Field struct {
	W, H float64
}

// Ball is the moving ball. Speed always equals the length of (DX, DY)
// between steps; PrevX is the x position before the last integration.
type Ball struct {
	X, Y   float64
	DX, DY float64
	Radius float64
	Speed  float64
	PrevX  float64
}

// Paddle is a vertical paddle flush with one side of the field.
type Paddle struct {
	X, Y float64 // Top-left corner; X never changes during a match
	W, H float64
}

// Score holds points for both sides.
type Score struct {
	Left, Right int
}

// Params are the tuning values the simulation needs, already scaled to
// the field.
type Params struct {
	BaseSpeed    float64 // Minimum serve speed
	SpeedUp      float64 // Speed multiplier per paddle hit
	LaunchSpread float64 // Max serve angle from horizontal, radians
	BounceOffset float64 // Gap left between ball and paddle after a hit
	AIMaxSpeed   float64 // Max CPU paddle travel per frame
	DragGain     float64 // Fraction of a drag delta applied to the paddle
	KeyStep      float64 // Paddle travel per key press
}

// Geometry holds the field-dependent sizes derived from the config.
type Geometry struct {
	PaddleW, PaddleH float64
	BallRadius       float64
	Params           Params
}

// NewGeometry scales the reference sizes of cfg to the given field.
// Horizontal sizes follow the width ratio and vertical ones the height
// ratio, so a field twice as wide gets a ball twice as fast.
func NewGeometry(cfg config.PongConfig, field Field) Geometry {
	sx := field.W / cfg.Field.ReferenceWidth
	sy := field.H / cfg.Field.ReferenceHeight

	return Geometry{
		PaddleW:    cfg.Paddles.Width * sx,
		PaddleH:    cfg.Paddles.Height * sy,
		BallRadius: math.Max(cfg.Ball.MinRadius, cfg.Ball.Radius*sx),
		Params: Params{
			BaseSpeed:    cfg.Ball.BaseSpeed * sx,
			SpeedUp:      cfg.Ball.SpeedUp,
			LaunchSpread: cfg.Ball.LaunchSpreadDeg * math.Pi / 180,
			BounceOffset: cfg.Ball.BounceOffset,
			AIMaxSpeed:   cfg.AI.MaxSpeed * sy,
			DragGain:     cfg.Input.DragGain,
			KeyStep:      cfg.Input.KeyStep * sy,
		},
	}
}

// Rally tracks statistics about paddle exchanges.
type Rally struct {
	Hits     int     // Paddle hits since the last serve
	Longest  int     // Longest rally of the match
	TopSpeed float64 // Fastest ball of the match
}

// State is the complete simulation state. It is advanced by Step and read
// by Render; nothing outside a State value influences the simulation
// except the input applied through ApplyInput.
type State struct {
	Field  Field
	Ball   Ball
	Left   Paddle
	Right  Paddle
	Score  Score
	Params Params
	Rally  Rally
	Frame  int

	rng *rand.Rand
}

// NewState creates a state with centred paddles and serves the ball in a
// random direction.
func NewState(field Field, geo Geometry, rng *rand.Rand) *State {
	s := &State{
		Field:  field,
		Params: geo.Params,
		rng:    rng,
	}

	top := field.H/2 - geo.PaddleH/2
	s.Left = Paddle{X: 0, Y: top, W: geo.PaddleW, H: geo.PaddleH}
	s.Right = Paddle{X: field.W - geo.PaddleW, Y: top, W: geo.PaddleW, H: geo.PaddleH}

	s.Ball = Ball{Radius: geo.BallRadius, Speed: geo.Params.BaseSpeed}
	Serve(s, 0)
	return s
}

// maxTop returns the largest legal paddle top for the field.
func (s *State) maxTop(p *Paddle) float64 {
	return s.Field.H - p.H
}

// clampPaddle keeps the paddle inside the field.
func (s *State) clampPaddle(p *Paddle) {
	p.Y = core.ClampF(p.Y, 0, s.maxTop(p))
}

// Rescale adapts the state to a new field size. Positions and speeds are
// scaled with the field, paddle and ball sizes are taken from geo, and
// scores and rally statistics are kept.
func Rescale(s *State, field Field, geo Geometry) {
	if s.Field.W <= 0 || s.Field.H <= 0 {
		return
	}
	fx := field.W / s.Field.W
	fy := field.H / s.Field.H

	b := &s.Ball
	angle := math.Atan2(b.DY, b.DX)
	b.X *= fx
	b.PrevX *= fx
	b.Y *= fy
	b.Radius = geo.BallRadius
	b.Speed *= fx
	b.DX = b.Speed * math.Cos(angle)
	b.DY = b.Speed * math.Sin(angle)
	s.Rally.TopSpeed *= fx

	s.Field = field
	s.Params = geo.Params
	b.Y = core.ClampF(b.Y, b.Radius, field.H-b.Radius)

	for _, p := range []*Paddle{&s.Left, &s.Right} {
		p.Y *= fy
		p.W = geo.PaddleW
		p.H = geo.PaddleH
		s.clampPaddle(p)
	}
	s.Left.X = 0
	s.Right.X = field.W - geo.PaddleW
}
