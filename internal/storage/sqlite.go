// Package storage keeps a ledger of finished runs in SQLite.
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

	"github.com/vovakirdan/swarm-beacon/internal/game"
)

// Store manages the SQLite database connection for the run ledger.
type Store struct {
	db *sql.DB
}

// RunEntry is one recorded outcome.
type RunEntry struct {
	ID              int64
	GameID          string
	RoomID          string
	Username        string
	Outcome         string
	Score           int
	Round           int
	TimeSurvivedMs  int64
	MaxAssimilation float64
	BeaconCharge    float64
	Seed            uint32
	CreatedAt       time.Time
}

// NewRunEntry builds a ledger row from an emitted outcome and the session's
// host configuration.
func NewRunEntry(h game.HostConfig, rec game.OutcomeRecord) RunEntry {
	return RunEntry{
		GameID:          h.GameID,
		RoomID:          h.RoomID,
		Username:        h.Username,
		Outcome:         rec.Outcome.String(),
		Score:           rec.Score,
		Round:           rec.Round,
		TimeSurvivedMs:  rec.TimeSurvivedMs,
		MaxAssimilation: rec.MaxAssimilation,
		BeaconCharge:    rec.BeaconCharge,
		Seed:            rec.Seed,
	}
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			room_id TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			round_reached INTEGER NOT NULL,
			time_survived_ms INTEGER NOT NULL,
			max_assimilation REAL NOT NULL,
			beacon_charge REAL NOT NULL,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_username ON runs(username);
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

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, room_id, username, outcome, score, round_reached, time_survived_ms, max_assimilation, beacon_charge, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.GameID, e.RoomID, e.Username, e.Outcome, e.Score, e.Round,
		e.TimeSurvivedMs, e.MaxAssimilation, e.BeaconCharge, int64(e.Seed),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, game_id, room_id, username, outcome, score, round_reached,
	time_survived_ms, max_assimilation, beacon_charge, seed, created_at`

// TopRuns returns the best runs for a game, highest score first. Ties go to
// the earlier run.
func (s *Store) TopRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, limit,
	)
}

// RecentRuns returns the latest runs across all games.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
}

// PlayerRuns returns a player's latest runs.
func (s *Store) PlayerRuns(username string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE username = ? ORDER BY id DESC LIMIT ?`,
		username, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var seed int64
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.GameID, &e.RoomID, &e.Username, &e.Outcome, &e.Score, &e.Round,
			&e.TimeSurvivedMs, &e.MaxAssimilation, &e.BeaconCharge, &seed, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Seed = uint32(seed) //#nosec G115 -- stored from a uint32
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Stats aggregates the ledger for one game.
type Stats struct {
	GameID     string
	Runs       int
	Wins       int
	Losses     int
	BestScore  int
	AvgScore   float64
	BestRound  int
	LastPlayed time.Time
}

// GameStats returns aggregated statistics for a game.
func (s *Store) GameStats(gameID string) (*Stats, error) {
	st := &Stats{GameID: gameID}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'lose' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MAX(round_reached), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&st.Runs, &st.Wins, &st.Losses, &st.BestScore, &st.AvgScore, &st.BestRound)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		st.LastPlayed = parseTime(lastPlayed)
	}
	return st, nil
}

// ClearRuns deletes all runs for a game.
func (s *Store) ClearRuns(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the SQLite text form.
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
