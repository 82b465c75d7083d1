// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-world/internal/sim"
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is a single finished run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Elapsed   time.Duration
	Moves     int
	Outcome   string
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	Wins       int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestTime   time.Duration
	LastPlayed time.Time
}

var _ sim.Reporter = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
	// One writer at a time; reporters run from background goroutines.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
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

// SaveResult records a finished run and returns the inserted ID.
func (s *Store) SaveResult(ctx context.Context, r sim.Result) (int64, error) {
	if r.GameID == "" {
		return 0, errors.New("storage: result has no game id")
	}
	outcome := ""
	if r.Status.Terminal() {
		outcome = r.Status.String()
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (game_id, score, elapsed_ms, moves, outcome) VALUES (?, ?, ?, ?, ?)",
		r.GameID, r.Score, r.Elapsed.Milliseconds(), r.Moves, outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Report implements sim.Reporter. World-map runs carry no score and are
// not recorded.
func (s *Store) Report(ctx context.Context, r sim.Result) error {
	if r.Destination != "" {
		return nil
	}
	_, err := s.SaveResult(ctx, r)
	return err
}

// TopScores retrieves the top N scores for the given game.
// Ties go to the faster run.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, score, elapsed_ms, moves, outcome, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, elapsed_ms ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, score, elapsed_ms, moves, outcome, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, elapsed_ms ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var elapsedMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &elapsedMs, &e.Moves, &e.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles the driver returning either time.Time or text.
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

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

const statsColumns = `game_id, COUNT(*), SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
	COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
	MIN(CASE WHEN outcome = 'won' THEN elapsed_ms END), MAX(created_at)`

func scanStats(sc interface{ Scan(...any) error }) (*GameStats, error) {
	var st GameStats
	var best sql.NullInt64
	var wins sql.NullInt64
	var lastPlayed any
	if err := sc.Scan(&st.GameID, &st.GamesCount, &wins, &st.HighScore, &st.AvgScore, &st.TotalScore, &best, &lastPlayed); err != nil {
		return nil, err
	}
	st.Wins = int(wins.Int64)
	if best.Valid {
		st.BestTime = time.Duration(best.Int64) * time.Millisecond
	}
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}

// GetGameStats retrieves aggregated statistics for a specific game.
// A game with no runs yields zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	row := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM scores WHERE game_id = ? GROUP BY game_id`,
		gameID,
	)
	st, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &GameStats{GameID: gameID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return st, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(`SELECT ` + statsColumns + ` FROM scores GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
