package pong

// Snapshot is a read-only copy of everything Render needs. It is a plain
// value, so drawing from it cannot touch the simulation.
type Snapshot struct {
	Variant     string `yaml:"variant"`
	Frame       int    `yaml:"frame"`
	Field       Field  `yaml:"field"`
	Ball        Ball   `yaml:"ball"`
	Left        Paddle `yaml:"left"`
	Right       Paddle `yaml:"right"`
	Score       Score  `yaml:"score"`
	Rally       Rally  `yaml:"rally"`
	Paused      bool   `yaml:"paused"`
	Celebrating bool   `yaml:"celebrating"`
	Countdown   int    `yaml:"countdown"` // Celebration frames left
	Winner      Side   `yaml:"winner"`
	GameOver    bool   `yaml:"game_over"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	if s == nil {
		return Snapshot{Variant: g.variant}
	}
	return Snapshot{
		Variant:     g.variant,
		Frame:       s.Frame,
		Field:       s.Field,
		Ball:        s.Ball,
		Left:        s.Left,
		Right:       s.Right,
		Score:       s.Score,
		Rally:       s.Rally,
		Paused:      g.paused,
		Celebrating: g.celebrating,
		Countdown:   g.countdown,
		Winner:      g.winner,
		GameOver:    g.gameOver,
	}
}

// MarshalYAML writes a side by name.
func (s Side) MarshalYAML() (any, error) {
	return s.String(), nil
}
