// Package storage provides SQLite-based persistence for finished matches.
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

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// Match is one finished match.
type Match struct {
	ID        int64
	Player    string
	Seed      int64
	Variant   string
	Lines     int
	Pieces    int
	Frames    int
	EndReason string // "topout" or "quit"
	CreatedAt time.Time
}

// PlayerStats contains aggregated statistics for one player.
type PlayerStats struct {
	Player      string
	Matches     int
	BestLines   int
	AvgLines    float64
	TotalLines  int64
	TotalPieces int64
	LastPlayed  time.Time
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
			player TEXT NOT NULL,
			seed INTEGER NOT NULL,
			variant TEXT NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_variant ON matches(variant);
		CREATE INDEX IF NOT EXISTS idx_matches_top ON matches(variant, lines DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_player ON matches(player);
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

// SaveMatch records a finished match and returns the ID of the new row.
func (s *Store) SaveMatch(m Match) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO matches (player, seed, variant, lines, pieces, frames, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Player, m.Seed, m.Variant, m.Lines, m.Pieces, m.Frames, m.EndReason,
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

const matchColumns = `id, player, seed, variant, lines, pieces, frames, end_reason, created_at`

// TopMatches retrieves the best N matches for a variant, ordered by lines
// cleared and then by fewest frames. An empty variant matches all.
func (s *Store) TopMatches(variant string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR variant = ?
		 ORDER BY lines DESC, frames ASC, id ASC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return scanMatches(rows)
}

// RecentMatches retrieves the most recent matches of a player. An empty
// player matches everyone.
func (s *Store) RecentMatches(player string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent matches: %w", err)
	}
	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]Match, error) {
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var createdAt any
		if err := rows.Scan(&m.ID, &m.Player, &m.Seed, &m.Variant, &m.Lines, &m.Pieces, &m.Frames, &m.EndReason, &createdAt); err != nil {
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

// BestLines returns the most lines cleared in one match of a variant.
// Returns 0 if no matches exist.
func (s *Store) BestLines(variant string) (int, error) {
	var lines sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(lines) FROM matches WHERE ? = '' OR variant = ?",
		variant, variant,
	).Scan(&lines)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best lines: %w", err)
	}

	if !lines.Valid {
		return 0, nil
	}

	return int(lines.Int64), nil
}

// PlayerStats retrieves aggregated statistics for one player.
func (s *Store) PlayerStats(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(lines), 0), COALESCE(AVG(lines), 0),
		        COALESCE(SUM(lines), 0), COALESCE(SUM(pieces), 0)
		 FROM matches WHERE player = ?`,
		player,
	).Scan(&stats.Matches, &stats.BestLines, &stats.AvgLines, &stats.TotalLines, &stats.TotalPieces)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches WHERE player = ? ORDER BY id DESC LIMIT 1`,
		player,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearMatches deletes all matches of a variant. An empty variant deletes
// everything.
func (s *Store) ClearMatches(variant string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE ? = '' OR variant = ?", variant, variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}
