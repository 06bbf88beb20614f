package track

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sstent/stravarchive-go/internal/models"
)

var ErrNoTrackData = errors.New("no track data found")

type gpxFile struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Type     string       `xml:"type"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

// gpxPoint carries the Garmin TrackPointExtension heart rate when present.
type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Ele  float64 `xml:"ele"`
	Time string  `xml:"time"`
	HR   int     `xml:"extensions>TrackPointExtension>hr"`
}

// GPXParser sums great-circle distance and positive elevation change over
// every track segment.
type GPXParser struct{}

func NewGPXParser() *GPXParser {
	return &GPXParser{}
}

func (p *GPXParser) ParseData(data []byte) (*models.TrackMetrics, error) {
	var doc gpxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode GPX: %w", err)
	}

	var points []gpxPoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			points = append(points, seg.Points...)
		}
	}
	if len(points) == 0 {
		return nil, ErrNoTrackData
	}

	metrics := &models.TrackMetrics{
		Format: string(FileTypeGPX),
		Sport:  doc.Tracks[0].Type,
		Points: len(points),
	}

	// points without a parsable timestamp still count toward distance
	var first, last time.Time
	var hrSum, hrCount int
	for i, pt := range points {
		if ts, err := time.Parse(time.RFC3339, pt.Time); err == nil {
			if first.IsZero() {
				first = ts
			}
			last = ts
		}
		if i > 0 {
			metrics.Distance += distanceMeters(points[i-1], pt)
			metrics.Ascent += math.Max(0, pt.Ele-points[i-1].Ele)
		}
		if pt.HR > 0 {
			hrSum += pt.HR
			hrCount++
			metrics.MaxHeartRate = max(metrics.MaxHeartRate, pt.HR)
		}
	}

	metrics.StartTime = first
	metrics.Duration = last.Sub(first)
	if hrCount > 0 {
		metrics.AvgHeartRate = hrSum / hrCount
	}

	return metrics, nil
}

const earthRadiusMeters = 6371000

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// distanceMeters is the great-circle (haversine) distance between two points.
func distanceMeters(a, b gpxPoint) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Pow(math.Sin(dLon/2), 2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
