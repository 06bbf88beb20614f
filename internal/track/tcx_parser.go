package track

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/sstent/stravarchive-go/internal/models"
)

// TCXParser reads the first activity of a Garmin training center file. Heart
// rate is averaged over trackpoints, falling back to the lap average for laps
// recorded without a track.
type TCXParser struct{}

func NewTCXParser() *TCXParser {
	return &TCXParser{}
}

type tcxDatabase struct {
	Activities tcxActivities `xml:"Activities"`
}

type tcxActivities struct {
	Activity []tcxActivity `xml:"Activity"`
}

type tcxActivity struct {
	Sport string   `xml:"Sport,attr"`
	Laps  []tcxLap `xml:"Lap"`
}

type tcxLap struct {
	StartTime        string       `xml:"StartTime,attr"`
	TotalTimeSeconds float64      `xml:"TotalTimeSeconds"`
	DistanceMeters   float64      `xml:"DistanceMeters"`
	AverageHeartRate tcxHeartRate `xml:"AverageHeartRateBpm"`
	MaximumHeartRate tcxHeartRate `xml:"MaximumHeartRateBpm"`
	Track            tcxTrack     `xml:"Track"`
}

type tcxHeartRate struct {
	Value int `xml:"Value"`
}

type tcxTrack struct {
	Trackpoints []tcxTrackpoint `xml:"Trackpoint"`
}

type tcxTrackpoint struct {
	Time           string       `xml:"Time"`
	AltitudeMeters *float64     `xml:"AltitudeMeters"`
	HeartRateBpm   tcxHeartRate `xml:"HeartRateBpm"`
}

func (p *TCXParser) ParseData(data []byte) (*models.TrackMetrics, error) {
	var tcx tcxDatabase
	if err := xml.Unmarshal(data, &tcx); err != nil {
		return nil, fmt.Errorf("failed to decode TCX: %w", err)
	}

	if len(tcx.Activities.Activity) == 0 || len(tcx.Activities.Activity[0].Laps) == 0 {
		return nil, ErrNoTrackData
	}

	activity := tcx.Activities.Activity[0]
	metrics := &models.TrackMetrics{
		Format: string(FileTypeTCX),
		Sport:  activity.Sport,
	}

	if startTime, err := time.Parse(time.RFC3339, activity.Laps[0].StartTime); err == nil {
		metrics.StartTime = startTime
	}

	// Aggregate data from all laps
	var totalSeconds float64
	var hrValues []int
	var lastAlt *float64
	for _, lap := range activity.Laps {
		totalSeconds += lap.TotalTimeSeconds
		metrics.Distance += lap.DistanceMeters

		if lap.MaximumHeartRate.Value > metrics.MaxHeartRate {
			metrics.MaxHeartRate = lap.MaximumHeartRate.Value
		}

		for _, tp := range lap.Track.Trackpoints {
			metrics.Points++
			if tp.HeartRateBpm.Value > 0 {
				hrValues = append(hrValues, tp.HeartRateBpm.Value)
			}
			if tp.AltitudeMeters != nil {
				if lastAlt != nil && *tp.AltitudeMeters > *lastAlt {
					metrics.Ascent += *tp.AltitudeMeters - *lastAlt
				}
				lastAlt = tp.AltitudeMeters
			}
		}
		if len(lap.Track.Trackpoints) == 0 && lap.AverageHeartRate.Value > 0 {
			hrValues = append(hrValues, lap.AverageHeartRate.Value)
		}
	}
	metrics.Duration = time.Duration(totalSeconds * float64(time.Second))

	if len(hrValues) > 0 {
		sum := 0
		for _, hr := range hrValues {
			sum += hr
			if hr > metrics.MaxHeartRate {
				metrics.MaxHeartRate = hr
			}
		}
		metrics.AvgHeartRate = sum / len(hrValues)
	}

	return metrics, nil
}
