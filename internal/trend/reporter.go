package trend

import (
	"fmt"

	"github.com/sstent/stravarchive-go/internal/models"
)

// Reporter derives the cells of one metric from an activity.
type Reporter interface {
	// Columns are the labels of the derived cells, in order.
	Columns() []string
	// Row returns one cell per column, or false when the activity has no row
	// for this metric.
	Row(a models.ActivitySummary) ([]string, bool)
}

// ReporterFor returns the reporter for a metric.
func ReporterFor(m Metric) (Reporter, error) {
	switch m {
	case Duration:
		return durationReporter{}, nil
	case Distance:
		return distanceReporter{}, nil
	case HeartRate:
		return heartRateReporter{}, nil
	case Elevation:
		return elevationReporter{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, m)
}

type durationReporter struct{}

func (durationReporter) Columns() []string { return []string{"moving", "elapsed"} }

func (durationReporter) Row(a models.ActivitySummary) ([]string, bool) {
	return []string{
		FormatSeconds(a.MovingSeconds),
		FormatDuration(int64(a.ElapsedSeconds)),
	}, true
}

type distanceReporter struct{}

func (distanceReporter) Columns() []string {
	return []string{"distance", "duration", "avg pace", "fastest"}
}

// Row reports moving time as the duration when recorded, elapsed time otherwise.
func (distanceReporter) Row(a models.ActivitySummary) ([]string, bool) {
	duration := FormatDuration(int64(a.ElapsedSeconds))
	if a.MovingSeconds != nil {
		duration = FormatSeconds(a.MovingSeconds)
	}
	return []string{
		FormatDistance(a.Distance),
		duration,
		FormatPace(a.AvgSpeed),
		FormatPace(a.MaxSpeed),
	}, true
}

type heartRateReporter struct{}

func (heartRateReporter) Columns() []string {
	return []string{"avg hr", "max hr", "avg pace", "max pace"}
}

func (heartRateReporter) Row(a models.ActivitySummary) ([]string, bool) {
	if a.AvgHeartRate == nil || a.MaxHeartRate == nil {
		return nil, false
	}
	return []string{
		FormatHeartRate(a.AvgHeartRate),
		FormatHeartRate(a.MaxHeartRate),
		FormatPace(a.AvgSpeed),
		FormatPace(a.MaxSpeed),
	}, true
}

type elevationReporter struct{}

func (elevationReporter) Columns() []string { return []string{"low", "high"} }

func (elevationReporter) Row(a models.ActivitySummary) ([]string, bool) {
	return []string{
		FormatElevation(a.ElevationLow),
		FormatElevation(a.ElevationHigh),
	}, true
}
