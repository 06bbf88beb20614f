package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/sstent/stravarchive-go/internal/models"
)

func newTestIndex(t *testing.T) *SQLiteDB {
	t.Helper()
	idx, err := NewIndex()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func activity(id uint64, typ models.ActivityType, elapsed uint32, km float64) models.ActivitySummary {
	return models.ActivitySummary{
		ID:             uint128.From64(id),
		Date:           time.Date(2024, 1, int(id), 7, 0, 0, 0, time.UTC),
		Name:           "activity",
		Type:           typ,
		ElapsedSeconds: elapsed,
		Distance:       km,
	}
}

func TestGetStats(t *testing.T) {
	idx := newTestIndex(t)

	moving := 1500.0
	run := activity(1, models.Run, 1800, 5.0)
	run.MovingSeconds = &moving

	archive := &models.Archive{
		Activities: []models.ActivitySummary{
			run,
			activity(2, models.Ride, 3600, 30.5),
			activity(3, models.Run, 2400, 8.25),
			activity(4, models.AlpineSki, 7200, 12.0),
		},
		Flags: []models.Flag{
			{Category: "Flagged", FlaggedType: "Activity", FlaggedID: "2", Timestamp: time.Now()},
		},
		Media: []models.Media{
			{Filename: "media/a.jpg"},
			{Filename: "media/b.jpg", Caption: "summit"},
		},
	}
	require.NoError(t, idx.Load(archive))

	stats, err := idx.GetStats()
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Activities)
	assert.Equal(t, 1, stats.Flags)
	assert.Equal(t, 2, stats.Media)

	require.Len(t, stats.Types, 3)
	assert.Equal(t, TypeStats{
		Type:          models.AlpineSki,
		Count:         1,
		TotalDistance: 12.0,
		TotalElapsed:  7200,
		TotalMoving:   7200,
		MaxDistance:   12.0,
		Last:          time.Date(2024, 1, 4, 7, 0, 0, 0, time.UTC),
	}, stats.Types[0])
	assert.Equal(t, models.Ride, stats.Types[1].Type)
	assert.Equal(t, models.Run, stats.Types[2].Type)
	assert.Equal(t, 2, stats.Types[2].Count)
	assert.InDelta(t, 13.25, stats.Types[2].TotalDistance, 1e-9)
	assert.Equal(t, int64(4200), stats.Types[2].TotalElapsed)
	assert.InDelta(t, 8.25, stats.Types[2].MaxDistance, 1e-9)
	// moving time of run 1 plus elapsed of run 3, which has none
	assert.InDelta(t, 1500.0+2400.0, stats.Types[2].TotalMoving, 1e-9)
	assert.Equal(t, time.Date(2024, 1, 3, 7, 0, 0, 0, time.UTC), stats.Types[2].Last)
}

func TestGetStatsEmpty(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Load(&models.Archive{}))

	stats, err := idx.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.Activities)
	assert.Empty(t, stats.Types)
}

func TestLoadKeepsLargeIDs(t *testing.T) {
	idx := newTestIndex(t)

	id, err := uint128.FromString("340282366920938463463374607431768211455")
	require.NoError(t, err)
	a := activity(5, models.Walk, 60, 0.1)
	a.ID = id
	require.NoError(t, idx.Load(&models.Archive{Activities: []models.ActivitySummary{a}}))

	var stored string
	require.NoError(t, idx.db.QueryRow("SELECT activity_id FROM activities").Scan(&stored))
	assert.Equal(t, "340282366920938463463374607431768211455", stored)
}
