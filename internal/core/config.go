package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to size their field and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score       int  // Player score
	Opponent    int  // Opponent (CPU) score
	GameOver    bool // Whether the match has ended and waits for restart
	Paused      bool // Whether the game is paused
	Celebrating bool // Win overlay is running, gameplay is frozen
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// MatchSummary describes a match for score storage.
type MatchSummary struct {
	PlayerScore   int
	OpponentScore int
	Won           bool
	Decided       bool // A side reached the win score
	LongestRally  int
	TopSpeed      float64
	Frames        int
}
