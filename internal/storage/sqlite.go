// Package storage provides SQLite-based persistence for leaderboard
// entries, achievement state and lifetime per-mode statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/memory-match/internal/config"
)

// LeaderboardSize is how many entries the scores table retains. Saving an
// entry that falls below the cut-off still succeeds; it is just trimmed.
const LeaderboardSize = 10

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single leaderboard record.
type ScoreEntry struct {
	ID           int64
	PlayerName   string
	Score        int
	Moves        int
	TimeSeconds  int
	Difficulty   string
	Mode         string
	Achievements []string // ids unlocked during that game
	CreatedAt    time.Time
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			time_secs INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL,
			mode TEXT NOT NULL,
			achievements TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC, created_at ASC);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS mode_stats (
			mode TEXT PRIMARY KEY,
			completions INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0
		);
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

// SaveScore records a finished game on the leaderboard and trims the table
// back to LeaderboardSize. Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	ach := e.Achievements
	if ach == nil {
		ach = []string{}
	}
	achJSON, err := json.Marshal(ach)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode achievements: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO scores (player_name, score, moves, time_secs, difficulty, mode, achievements)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.PlayerName, e.Score, e.Moves, e.TimeSeconds, e.Difficulty, e.Mode, string(achJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	// Keep only the best entries; ties break toward the older record.
	_, err = s.db.Exec(
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, created_at ASC, id ASC LIMIT ?
		)`,
		LeaderboardSize,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot trim leaderboard: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N leaderboard entries, best first.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = LeaderboardSize
	}

	rows, err := s.db.Query(
		`SELECT id, player_name, score, moves, time_secs, difficulty, mode, achievements, created_at
		 FROM scores
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score on the leaderboard, 0 when empty.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Qualifies reports whether a score would make the leaderboard.
func (s *Store) Qualifies(score int) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scores").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	if count < LeaderboardSize {
		return true, nil
	}

	var lowest sql.NullInt64
	err = s.db.QueryRow("SELECT MIN(score) FROM scores").Scan(&lowest)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query lowest score: %w", err)
	}
	return lowest.Valid && score > int(lowest.Int64), nil
}

// ClearScores deletes the whole leaderboard.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

func scanScore(rows *sql.Rows) (ScoreEntry, error) {
	var e ScoreEntry
	var achJSON string
	var createdAt any
	if err := rows.Scan(
		&e.ID, &e.PlayerName, &e.Score, &e.Moves, &e.TimeSeconds,
		&e.Difficulty, &e.Mode, &achJSON, &createdAt,
	); err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	if err := json.Unmarshal([]byte(achJSON), &e.Achievements); err != nil {
		// A corrupt cell loses its badge list, not the whole entry.
		e.Achievements = nil
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}
	return e, nil
}

// Get implements the achievements KV port. Any error reads as "no data".
func (s *Store) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set implements the achievements KV port.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set %q: %w", key, err)
	}
	return nil
}

// Completions returns the lifetime number of finished games in a mode.
func (s *Store) Completions(mode config.Mode) int {
	var n int
	err := s.db.QueryRow(
		"SELECT completions FROM mode_stats WHERE mode = ?", string(mode),
	).Scan(&n)
	if err != nil {
		return 0
	}
	return n
}

// Wins returns the lifetime number of won games in a mode. Outside
// multiplayer every completion counts as a win.
func (s *Store) Wins(mode config.Mode) int {
	var n int
	err := s.db.QueryRow(
		"SELECT wins FROM mode_stats WHERE mode = ?", string(mode),
	).Scan(&n)
	if err != nil {
		return 0
	}
	return n
}

// RecordCompletion bumps the lifetime counters for a finished game.
func (s *Store) RecordCompletion(mode config.Mode, won bool) error {
	win := 0
	if won {
		win = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO mode_stats (mode, completions, wins) VALUES (?, 1, ?)
		 ON CONFLICT(mode) DO UPDATE SET
			completions = completions + 1,
			wins = wins + excluded.wins`,
		string(mode), win,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record completion: %w", err)
	}
	return nil
}
