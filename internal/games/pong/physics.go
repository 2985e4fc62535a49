package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// StepEvents reports what happened during one Step.
type StepEvents struct {
	WallBounce bool // Ball reflected off the top or bottom edge
	PaddleHit  Side // Paddle the ball bounced off, if any
	Scored     Side // Side that won a point, if any
}

// Step advances the simulation by one fixed logical tick.
//
// Velocities are expressed per tick, not per second: the ball covers the
// same distance each frame whatever the display refresh rate is. The
// platform keeps the tick rate constant instead of scaling by elapsed time.
func Step(s *State) StepEvents {
	var ev StepEvents
	b := &s.Ball

	s.Frame++
	b.PrevX = b.X
	b.X += b.DX
	b.Y += b.DY

	// Top/bottom walls
	if b.Y-b.Radius < 0 {
		b.Y = b.Radius
		b.DY = -b.DY
		ev.WallBounce = true
	} else if b.Y+b.Radius > s.Field.H {
		b.Y = s.Field.H - b.Radius
		b.DY = -b.DY
		ev.WallBounce = true
	}

	if s.crossesLeft() {
		s.bounce(&s.Left, 1)
		ev.PaddleHit = SideLeft
	}
	if s.crossesRight() {
		s.bounce(&s.Right, -1)
		ev.PaddleHit = SideRight
	}

	// Scoring once the ball is fully out
	if b.X < -b.Radius {
		s.Score.Right++
		ev.Scored = SideRight
		Serve(s, 1)
	} else if b.X > s.Field.W+b.Radius {
		s.Score.Left++
		ev.Scored = SideLeft
		Serve(s, -1)
	}

	Track(s, &s.Right, s.Params.AIMaxSpeed)
	return ev
}

// crossesLeft reports whether the ball crossed the left paddle's face this
// tick. Both the previous and current positions are checked so a fast
// ball cannot skip over the paddle between two frames.
func (s *State) crossesLeft() bool {
	b, p := &s.Ball, &s.Left
	plane := p.X + p.W
	return b.DX < 0 &&
		b.PrevX-b.Radius > plane &&
		b.X-b.Radius <= plane &&
		p.spans(b.Y)
}

// crossesRight is the mirror of crossesLeft.
func (s *State) crossesRight() bool {
	b, p := &s.Ball, &s.Right
	plane := p.X
	return b.DX > 0 &&
		b.PrevX+b.Radius < plane &&
		b.X+b.Radius >= plane &&
		p.spans(b.Y)
}

// spans reports whether y lies on the paddle's face, edges included.
func (p *Paddle) spans(y float64) bool {
	return y >= p.Y && y <= p.Y+p.H
}

// ImpactOffset maps y onto the paddle face: -1 at the top edge, 0 at the
// centre, 1 at the bottom edge.
func (p *Paddle) ImpactOffset(y float64) float64 {
	half := p.H / 2
	return (y - p.Y - half) / half
}

// bounce sends the ball back from paddle p. dir is the new horizontal
// direction, +1 for right and -1 for left.
//
// The direction is forced before the speed-up and the speed-up keeps it,
// so a ball arriving almost vertically still leaves away from the paddle.
func (s *State) bounce(p *Paddle, dir float64) {
	b := &s.Ball

	// Place ball just outside the paddle so the next tick cannot re-trigger
	if dir > 0 {
		b.X = p.X + p.W + b.Radius + s.Params.BounceOffset
	} else {
		b.X = p.X - b.Radius - s.Params.BounceOffset
	}
	b.DX = dir * math.Abs(b.DX)
	b.DY = b.Speed * p.ImpactOffset(b.Y)

	s.speedUp(dir)

	s.Rally.Hits++
	if s.Rally.Hits > s.Rally.Longest {
		s.Rally.Longest = s.Rally.Hits
	}
}

// speedUp multiplies the speed and rescales the velocity along the current
// travel angle. The angle is taken against the horizontal so it lies in
// [-90°, 90°] and the horizontal component keeps the sign dir.
func (s *State) speedUp(dir float64) {
	b := &s.Ball
	b.Speed *= s.Params.SpeedUp

	angle := math.Atan2(b.DY, math.Abs(b.DX))
	b.DX = dir * b.Speed * math.Cos(angle)
	b.DY = b.Speed * math.Sin(angle)

	if b.Speed > s.Rally.TopSpeed {
		s.Rally.TopSpeed = b.Speed
	}
}

// Serve puts the ball back in the centre of the field and launches it.
// dir is +1 (right), -1 (left) or 0 for a random direction.
//
// Speed halves on each serve but never drops below the base speed, so a
// long fast rally still carries some pace into the next one.
func Serve(s *State, dir float64) {
	b := &s.Ball

	if dir == 0 {
		dir = 1
		if s.rng.Float64() < 0.5 {
			dir = -1
		}
	}
	dir = core.Sign(dir)

	b.X = s.Field.W / 2
	b.Y = s.Field.H / 2
	b.PrevX = b.X
	b.Speed = math.Max(b.Speed/2, s.Params.BaseSpeed)

	angle := (s.rng.Float64()*2 - 1) * s.Params.LaunchSpread
	b.DX = b.Speed * dir * math.Cos(angle)
	b.DY = b.Speed * math.Sin(angle)

	s.Rally.Hits = 0
	if b.Speed > s.Rally.TopSpeed {
		s.Rally.TopSpeed = b.Speed
	}
}

// Track moves paddle p toward the ball's height by at most maxSpeed.
// The paddle never snaps, which is what makes the CPU beatable.
func Track(s *State, p *Paddle, maxSpeed float64) {
	target := s.Ball.Y - p.H/2
	diff := target - p.Y
	p.Y += core.Sign(diff) * math.Min(math.Abs(diff), maxSpeed)
	s.clampPaddle(p)
}
