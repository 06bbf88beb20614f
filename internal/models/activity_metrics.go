package models

import "time"

// TrackMetrics contains the summary extracted from a raw track file referenced
// by an activity's Filename column.
type TrackMetrics struct {
	Format       string
	Sport        string
	StartTime    time.Time
	Duration     time.Duration
	Distance     float64 // in meters
	MaxHeartRate int
	AvgHeartRate int
	Ascent       float64 // in meters
	Points       int
}
