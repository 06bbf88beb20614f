// internal/database/models.go
package database

import (
	"time"

	"github.com/sstent/stravarchive-go/internal/models"
)

// TypeStats aggregates every activity of one type.
type TypeStats struct {
	Type          models.ActivityType
	Count         int
	TotalDistance float64 // km
	TotalElapsed  int64   // seconds
	TotalMoving   float64 // seconds, elapsed where moving time is absent
	MaxDistance   float64 // km
	Last          time.Time
}

type Stats struct {
	Activities int
	Flags      int
	Media      int
	Types      []TypeStats
}

// Database is the read side the CLI needs from an archive index.
type Database interface {
	Load(archive *models.Archive) error
	GetStats() (*Stats, error)
	Close() error
}
