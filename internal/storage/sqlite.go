// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchResult is one finished (or abandoned) match.
type MatchResult struct {
	ID            int64
	GameID        string
	PlayerScore   int
	OpponentScore int
	Won           bool
	Decided       bool // False when the player quit before the win score
	LongestRally  int
	TopSpeed      float64
	Frames        int
	CreatedAt     time.Time
}

// Margin returns the point difference from the player's point of view.
func (m MatchResult) Margin() int {
	return m.PlayerScore - m.OpponentScore
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player_score INTEGER NOT NULL,
			opponent_score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			decided INTEGER NOT NULL DEFAULT 0,
			longest_rally INTEGER NOT NULL DEFAULT 0,
			top_speed REAL NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_top ON matches(game_id, player_score - opponent_score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a match. Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchResult) (int64, error) {
	if m.GameID == "" {
		return 0, errors.New("storage: match has no game id")
	}

	result, err := s.db.Exec(
		`INSERT INTO matches
		 (game_id, player_score, opponent_score, won, decided, longest_rally, top_speed, frames)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.GameID, m.PlayerScore, m.OpponentScore, m.Won, m.Decided,
		m.LongestRally, m.TopSpeed, m.Frames,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, game_id, player_score, opponent_score, won, decided,
	longest_rally, top_speed, frames, created_at`

// RecentMatches retrieves the last N matches for the game, newest first.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// TopMatches retrieves the best N matches for the game.
// Matches are ranked by point margin, then by longest rally.
func (s *Store) TopMatches(gameID string, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY player_score - opponent_score DESC, longest_rally DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryMatches(query string, args ...any) ([]MatchResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []MatchResult
	for rows.Next() {
		var m MatchResult
		var createdAt any
		if err := rows.Scan(
			&m.ID,
			&m.GameID,
			&m.PlayerScore,
			&m.OpponentScore,
			&m.Won,
			&m.Decided,
			&m.LongestRally,
			&m.TopSpeed,
			&m.Frames,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// ClearMatches deletes all matches for the given game.
func (s *Store) ClearMatches(gameID string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID        string
	Played        int
	Decided       int // Matches that reached the win score
	Won           int
	BestRally     int
	TopSpeed      float64
	PointsFor     int
	PointsAgainst int
	LastPlayed    time.Time
}

// WinRate returns the fraction of decided matches that were won.
func (g GameStats) WinRate() float64 {
	if g.Decided == 0 {
		return 0
	}
	return float64(g.Won) / float64(g.Decided)
}

// Stats retrieves aggregated statistics for a specific game.
// A game without matches yields zero stats, not an error.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(decided), 0), COALESCE(SUM(won), 0),
		        COALESCE(MAX(longest_rally), 0),
		        COALESCE(MAX(top_speed), 0), COALESCE(SUM(player_score), 0),
		        COALESCE(SUM(opponent_score), 0), MAX(created_at)
		 FROM matches WHERE game_id = ?`,
		gameID,
	).Scan(
		&stats.Played,
		&stats.Decided,
		&stats.Won,
		&stats.BestRally,
		&stats.TopSpeed,
		&stats.PointsFor,
		&stats.PointsAgainst,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every game that has matches.
func (s *Store) AllStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(decided), SUM(won), MAX(longest_rally), MAX(top_speed),
		        SUM(player_score), SUM(opponent_score), MAX(created_at)
		 FROM matches
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var g GameStats
		var lastPlayed any
		if err := rows.Scan(
			&g.GameID,
			&g.Played,
			&g.Decided,
			&g.Won,
			&g.BestRally,
			&g.TopSpeed,
			&g.PointsFor,
			&g.PointsAgainst,
			&lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		g.LastPlayed = parseTime(lastPlayed)
		stats[g.GameID] = &g
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
