package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/stravarchive-go/internal/config"
)

const testActivities = "Activity ID,Activity Date,Activity Name,Activity Type,Elapsed Time,Distance,Filename,Moving Time,Distance\n" +
	`1,"Dec 26, 2014, 8:02:53 PM",Evening Run,Run,1800,5.0,activities/1.gpx,1750,5000` + "\n" +
	`2,"Jan 7, 2024, 1:34:17 AM",Night Ride,Ride,3600,20.0,activities/2.fit.gz,,20000` + "\n"

const testGPX = `<?xml version="1.0"?>
<gpx version="1.1" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><type>running</type><trkseg>
    <trkpt lat="0.0" lon="0.0"><time>2014-12-26T20:02:53Z</time></trkpt>
    <trkpt lat="0.0" lon="0.01"><time>2014-12-26T20:32:53Z</time></trkpt>
  </trkseg></trk>
</gpx>`

type testApp struct {
	*App
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := &config.Config{
		Timezone:    "UTC",
		ColumnWidth: 10,
		Logging:     config.LoggingConfig{Level: "error", Format: "text"},
	}
	var out, errOut bytes.Buffer
	app, err := newApp(cfg, &out, &errOut)
	require.NoError(t, err)
	return &testApp{App: app, out: &out, err: &errOut}
}

func writeArchive(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "activities.csv"), []byte(testActivities), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "media.csv"), []byte("Media Filename,Media Caption\nmedia/1.jpg,\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.csv"), []byte("ignored\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "activities"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "activities", "1.gpx"), []byte(testGPX), 0o644))
	return dir
}

func TestVerify(t *testing.T) {
	app := newTestApp(t)
	dir := writeArchive(t)

	code := app.run(context.Background(), []string{"verify", dir})
	require.Equal(t, 0, code, app.out.String())

	out := app.out.String()
	assert.True(t, strings.HasPrefix(out, dir+": OK!\n"))
	assert.Contains(t, out, "activities: 2\n")
	assert.Contains(t, out, "Evening Run")
	assert.Contains(t, out, "  ...\n")
	assert.Contains(t, out, "Night Ride")
	assert.Contains(t, out, "flags: 0\n")
	assert.Contains(t, out, "media: 1\n")
}

func TestVerifyEmptyArchive(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()

	code := app.run(context.Background(), []string{"verify", "--dir", dir})
	require.Equal(t, 0, code)
	assert.Equal(t, dir+": OK!\nactivities: 0\nflags: 0\nmedia: 0\n", app.out.String())
}

func TestVerifyMissingDirectory(t *testing.T) {
	app := newTestApp(t)
	dir := filepath.Join(t.TempDir(), "nope")

	code := app.run(context.Background(), []string{"verify", dir})
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(app.out.String(), dir+": error: failed to read directory"))
}

func TestVerifyMalformedRow(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()
	bad := "Activity ID,Activity Date,Activity Name,Activity Type,Elapsed Time,Distance,Filename,Distance\n" +
		`1,"Dec 26, 2014, 8:02:53 PM",Run,Run,1800,5.0,` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "activities.csv"), []byte(bad), 0o644))

	code := app.run(context.Background(), []string{"verify", dir})
	assert.Equal(t, 1, code)
	assert.Contains(t, app.out.String(), `"Distance (2)"`)
}

func TestTrend(t *testing.T) {
	app := newTestApp(t)
	dir := writeArchive(t)

	code := app.run(context.Background(), []string{"trend", "--dir", dir, "--activity", "run", "--metric", "duration"})
	require.Equal(t, 0, code, app.out.String())

	lines := strings.Split(strings.TrimRight(app.out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"Date", "moving", "elapsed"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2014-12-26", "20:02", "29:10", "30:00"}, strings.Fields(lines[1]))
}

func TestTrendDateRange(t *testing.T) {
	app := newTestApp(t)
	dir := writeArchive(t)

	args := []string{"trend", "--dir", dir, "--activity", "Ride", "--metric", "distance",
		"--since", "2024-01-01", "--until", "2024-01-07"}
	require.Equal(t, 0, app.run(context.Background(), args), app.out.String())
	assert.Contains(t, app.out.String(), "2024-01-07 01:34")

	app = newTestApp(t)
	args[len(args)-1] = "2024-01-06"
	require.Equal(t, 0, app.run(context.Background(), args))
	assert.NotContains(t, app.out.String(), "2024-01-07")
}

func TestTrendRejectsSelectors(t *testing.T) {
	dir := writeArchive(t)
	tests := map[string][]string{
		"unknown activity type": {"trend", "--dir", dir, "--activity", "Swim", "--metric", "duration"},
		"unknown metric":        {"trend", "--dir", dir, "--activity", "Run", "--metric", "cadence"},
		"is after --until":      {"trend", "--dir", dir, "--activity", "Run", "--metric", "duration", "--since", "2024-02-01", "--until", "2024-01-01"},
	}
	for want, args := range tests {
		t.Run(want, func(t *testing.T) {
			app := newTestApp(t)
			assert.Equal(t, 1, app.run(context.Background(), args))
			assert.Contains(t, app.out.String(), want)
		})
	}
}

func TestTrendMissingSelectors(t *testing.T) {
	dir := writeArchive(t)
	for _, args := range [][]string{
		{"trend", "--dir", dir, "--metric", "duration"},
		{"trend", "--dir", dir, "--activity", "Run"},
	} {
		app := newTestApp(t)
		assert.Equal(t, 2, app.run(context.Background(), args), args)
		assert.Empty(t, app.out.String())
		assert.Contains(t, app.err.String(), "--activity and --metric are required")
	}
}

func TestStats(t *testing.T) {
	app := newTestApp(t)
	dir := writeArchive(t)

	require.Equal(t, 0, app.run(context.Background(), []string{"stats", dir}), app.out.String())

	lines := strings.Split(strings.TrimRight(app.out.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"Type", "count", "distance", "elapsed", "moving", "longest", "last"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Ride", "1", "20.00km", "60:00", "60:00", "20.00km", "2024-01-07", "01:34"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Run", "1", "5.00km", "30:00", "29:10", "5.00km", "2014-12-26", "20:02"}, strings.Fields(lines[2]))
	assert.Equal(t, "activities: 2", lines[3])
	assert.Equal(t, "flags: 0", lines[4])
	assert.Equal(t, "media: 1", lines[5])
}

func TestTracks(t *testing.T) {
	app := newTestApp(t)
	dir := writeArchive(t)

	code := app.run(context.Background(), []string{"tracks", "--dir", dir})
	assert.Equal(t, 1, code)

	out := app.out.String()
	assert.Contains(t, out, "gpx")
	assert.Contains(t, out, "30:00")
	assert.Contains(t, out, "1.11km")
	assert.Contains(t, out, "error: failed to open track")
	assert.Contains(t, out, dir+": error: 1 of 2 track files failed")
}

func TestTracksFiltered(t *testing.T) {
	app := newTestApp(t)
	dir := writeArchive(t)

	code := app.run(context.Background(), []string{"tracks", "--dir", dir, "--activity", "Run"})
	require.Equal(t, 0, code, app.out.String())
	assert.NotContains(t, app.out.String(), "error")
}

func TestUsage(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, 2, app.run(context.Background(), nil))
	assert.Contains(t, app.err.String(), "usage: stravarchive")

	app = newTestApp(t)
	assert.Equal(t, 2, app.run(context.Background(), []string{"export"}))
	assert.Contains(t, app.err.String(), `unknown command "export"`)

	app = newTestApp(t)
	assert.Equal(t, 2, app.run(context.Background(), []string{"verify"}))
	assert.Contains(t, app.err.String(), "missing archive directory")
}
