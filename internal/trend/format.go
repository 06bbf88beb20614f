package trend

import (
	"fmt"
	"math"
)

// maxPaceSeconds caps pace values so absurdly slow speeds never overflow.
const maxPaceSeconds = 1 << 31

// FormatDuration renders whole seconds as M:SS with unbounded minutes.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatSeconds rounds a fractional duration; nil renders blank.
func FormatSeconds(seconds *float64) string {
	if seconds == nil || math.IsNaN(*seconds) || math.IsInf(*seconds, 0) {
		return ""
	}
	return FormatDuration(int64(math.Round(*seconds)))
}

// FormatDistance renders kilometers with two decimals.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.2fkm", km)
}

// FormatPace turns a speed in m/s into time per kilometer. Absent, zero,
// negative and non-finite speeds render blank.
func FormatPace(speed *float64) string {
	if speed == nil || !(*speed > 0) || math.IsInf(*speed, 0) {
		return ""
	}
	secs := math.Round(1000 / *speed)
	if secs >= maxPaceSeconds {
		return ""
	}
	return FormatDuration(int64(secs)) + "/km"
}

// FormatElevation renders meters with no decimals; nil renders blank.
func FormatElevation(m *float64) string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%.0fm", *m)
}

// FormatHeartRate renders beats per minute with no decimals; nil renders blank.
func FormatHeartRate(bpm *float64) string {
	if bpm == nil {
		return ""
	}
	return fmt.Sprintf("%.0f", *bpm)
}
