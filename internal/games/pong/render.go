package pong

import (
	"math"
	"strconv"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Colors for rendering
const (
	NetColor    = core.ColorGray
	PlayerColor = core.ColorGreen
	CPUColor    = core.ColorRed
	BallColor   = core.ColorWhite
	TextColor   = core.ColorWhite
)

// Render draws a snapshot onto the canvas: dashed net, paddles, ball and
// scores, then the pause, celebration or game-over overlay.
func Render(snap Snapshot, c core.Canvas) {
	w, h := snap.Field.W, snap.Field.H

	for y := 0.0; y < h; y += 30 {
		c.FillRect(w/2-2, y, 4, 20, NetColor)
	}

	c.FillRect(snap.Left.X, snap.Left.Y, snap.Left.W, snap.Left.H, PlayerColor)
	c.FillRect(snap.Right.X, snap.Right.Y, snap.Right.W, snap.Right.H, CPUColor)
	c.FillCircle(snap.Ball.X, snap.Ball.Y, snap.Ball.Radius, BallColor)

	c.DrawText(strconv.Itoa(snap.Score.Left), w/4, 40, TextColor)
	c.DrawText(strconv.Itoa(snap.Score.Right), w*3/4, 40, TextColor)

	switch {
	case snap.Celebrating:
		renderCelebration(snap, c)
	case snap.GameOver:
		c.DrawText(verdict(snap.Winner), w/2, h/2-20, TextColor)
		c.DrawText(snap.scoreLine()+"  |  Press R to restart", w/2, h/2+20, TextColor)
	case snap.Paused:
		c.DrawText("PAUSED", w/2, h/2-20, TextColor)
		c.DrawText("Press P to resume", w/2, h/2+20, TextColor)
	}
}

// renderCelebration draws the bouncing, flashing win banner.
func renderCelebration(snap Snapshot, c core.Canvas) {
	w, h := snap.Field.W, snap.Field.H
	bounce := math.Sin(float64(snap.Countdown)/8) * 20

	c.DrawText(verdict(snap.Winner)+" !", w/2, h/2+bounce, core.FlashColor(snap.Countdown))
	c.DrawText(snap.scoreLine(), w/2, h/2+bounce+40, TextColor)
}

// verdict returns the banner text from the player's point of view.
func verdict(winner Side) string {
	if winner == SideLeft {
		return "You win"
	}
	return "You lose"
}

func (s Snapshot) scoreLine() string {
	return strconv.Itoa(s.Score.Left) + " - " + strconv.Itoa(s.Score.Right)
}
