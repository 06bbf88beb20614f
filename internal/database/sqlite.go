// internal/database/sqlite.go
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sstent/stravarchive-go/internal/models"
)

// MemoryPath opens a private database that lives as long as the Index.
const MemoryPath = ":memory:"

const timeLayout = "2006-01-02 15:04:05"

type SQLiteDB struct {
	db *sql.DB
}

var _ Database = (*SQLiteDB)(nil)

func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	sqlite := &SQLiteDB{db: db}
	if err := sqlite.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sqlite, nil
}

// NewIndex opens an in-memory index.
func NewIndex() (*SQLiteDB, error) {
	return NewSQLiteDB(MemoryPath)
}

func (s *SQLiteDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		activity_id TEXT NOT NULL,
		start_time TEXT NOT NULL,
		activity_type TEXT NOT NULL,
		elapsed INTEGER NOT NULL,
		moving REAL,
		distance REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activities_activity_id ON activities(activity_id);
	CREATE INDEX IF NOT EXISTS idx_activities_activity_type ON activities(activity_type);

	CREATE TABLE IF NOT EXISTS flags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT,
		flagged_type TEXT,
		flagged_id TEXT,
		comment TEXT,
		timestamp DATETIME
	);

	CREATE TABLE IF NOT EXISTS media (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT,
		caption TEXT
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Load inserts every record of the archive in a single transaction.
func (s *SQLiteDB) Load(archive *models.Archive) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = insertActivities(tx, archive.Activities); err != nil {
		return err
	}
	if err = insertFlags(tx, archive.Flags); err != nil {
		return err
	}
	if err = insertMedia(tx, archive.Media); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit archive: %w", err)
	}
	return nil
}

func insertActivities(tx *sql.Tx, acts []models.ActivitySummary) error {
	stmt, err := tx.Prepare(`
	INSERT INTO activities (
		activity_id, start_time, activity_type,
		elapsed, moving, distance
	) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare activity insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range acts {
		var moving sql.NullFloat64
		if a.MovingSeconds != nil {
			moving = sql.NullFloat64{Float64: *a.MovingSeconds, Valid: true}
		}
		_, err := stmt.Exec(
			a.ID.String(), a.Date.UTC().Format(timeLayout), a.Type.String(),
			int64(a.ElapsedSeconds), moving, a.Distance,
		)
		if err != nil {
			return fmt.Errorf("failed to insert activity %s: %w", a.ID, err)
		}
	}
	return nil
}

func insertFlags(tx *sql.Tx, flags []models.Flag) error {
	for _, f := range flags {
		_, err := tx.Exec(
			`INSERT INTO flags (category, flagged_type, flagged_id, comment, timestamp) VALUES (?, ?, ?, ?, ?)`,
			f.Category, f.FlaggedType, f.FlaggedID, f.Comment, f.Timestamp.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("failed to insert flag: %w", err)
		}
	}
	return nil
}

func insertMedia(tx *sql.Tx, media []models.Media) error {
	for _, m := range media {
		_, err := tx.Exec(`INSERT INTO media (filename, caption) VALUES (?, ?)`, m.Filename, m.Caption)
		if err != nil {
			return fmt.Errorf("failed to insert media: %w", err)
		}
	}
	return nil
}

func (s *SQLiteDB) GetStats() (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM activities", &stats.Activities},
		{"SELECT COUNT(*) FROM flags", &stats.Flags},
		{"SELECT COUNT(*) FROM media", &stats.Media},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.Query(`
	SELECT activity_type, COUNT(*), SUM(distance), SUM(elapsed),
	       SUM(COALESCE(moving, elapsed)), MAX(distance), MAX(start_time)
	FROM activities
	GROUP BY activity_type
	ORDER BY activity_type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var label, last string
		var ts TypeStats
		if err := rows.Scan(&label, &ts.Count, &ts.TotalDistance, &ts.TotalElapsed,
			&ts.TotalMoving, &ts.MaxDistance, &last); err != nil {
			return nil, err
		}
		// start_time is stored in a sortable layout, so MAX is the latest
		if ts.Last, err = time.Parse(timeLayout, last); err != nil {
			return nil, fmt.Errorf("failed to parse start time %q: %w", last, err)
		}
		if ts.Type, err = models.ParseActivityLabel(label); err != nil {
			return nil, err
		}
		stats.Types = append(stats.Types, ts)
	}

	return stats, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
