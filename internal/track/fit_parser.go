package track

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/tormoder/fit"

	"github.com/sstent/stravarchive-go/internal/models"
)

type FITParser struct{}

func NewFITParser() *FITParser {
	return &FITParser{}
}

func (p *FITParser) ParseData(data []byte) (*models.TrackMetrics, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("no sessions found in FIT file")
	}

	metrics := &models.TrackMetrics{
		Format:    string(FileTypeFIT),
		Sport:     activity.Sessions[0].Sport.String(),
		StartTime: activity.Sessions[0].StartTime,
		Points:    len(activity.Records),
	}

	// Multi-sport files carry one session per leg.
	var hrWeighted, hrSeconds float64
	for _, session := range activity.Sessions {
		elapsed := session.GetTotalElapsedTimeScaled()
		if !math.IsNaN(elapsed) {
			metrics.Duration += time.Duration(elapsed * float64(time.Second))
		}
		if d := session.GetTotalDistanceScaled(); !math.IsNaN(d) {
			metrics.Distance += d
		}
		if session.TotalAscent != 0xFFFF {
			metrics.Ascent += float64(session.TotalAscent)
		}
		if validHeartRate(session.MaxHeartRate) && int(session.MaxHeartRate) > metrics.MaxHeartRate {
			metrics.MaxHeartRate = int(session.MaxHeartRate)
		}
		if validHeartRate(session.AvgHeartRate) && !math.IsNaN(elapsed) && elapsed > 0 {
			hrWeighted += float64(session.AvgHeartRate) * elapsed
			hrSeconds += elapsed
		}
	}
	if hrSeconds > 0 {
		metrics.AvgHeartRate = int(math.Round(hrWeighted / hrSeconds))
	}

	return metrics, nil
}

func validHeartRate(bpm uint8) bool {
	return bpm != 0 && bpm != 0xFF
}
