package trend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMetric is returned for a metric selector outside the known set.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric selects which derived columns a trend shows.
type Metric int

const (
	Duration Metric = iota + 1
	Distance
	HeartRate
	Elevation
)

// Metrics lists every metric in display order.
var Metrics = []Metric{Duration, Distance, HeartRate, Elevation}

func (m Metric) String() string {
	switch m {
	case Duration:
		return "duration"
	case Distance:
		return "distance"
	case HeartRate:
		return "heart-rate"
	case Elevation:
		return "elevation"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric accepts the metric names case-insensitively; "heartrate" and
// "heart_rate" are accepted for heart-rate.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "duration":
		return Duration, nil
	case "distance":
		return Distance, nil
	case "heart-rate", "heartrate", "heart_rate":
		return HeartRate, nil
	case "elevation":
		return Elevation, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}
