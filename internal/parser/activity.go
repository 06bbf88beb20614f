package parser

import (
	"github.com/sstent/stravarchive-go/internal/models"
)

// Column names in activities.csv after normalization.
const (
	ColActivityID    = "Activity ID"
	ColActivityDate  = "Activity Date"
	ColActivityName  = "Activity Name"
	ColActivityType  = "Activity Type"
	ColElapsedTime   = "Elapsed Time"
	ColDistance      = "Distance"
	ColMaxHeartRate  = "Max Heart Rate"
	ColAvgHeartRate  = "Average Heart Rate"
	ColFilename      = "Filename"
	ColElapsedTime2  = "Elapsed Time (2)"
	ColMovingTime    = "Moving Time"
	ColDistance2     = "Distance (2)"
	ColMaxSpeed      = "Max Speed"
	ColAvgSpeed      = "Average Speed"
	ColElevationLow  = "Elevation Low"
	ColElevationHigh = "Elevation High"
)

// DecodeActivity decodes one activities.csv row.
func DecodeActivity(r *Record) (models.ActivitySummary, error) {
	var (
		a   models.ActivitySummary
		err error
	)
	if a.ID, err = r.Uint128(ColActivityID); err != nil {
		return a, err
	}
	if a.Date, err = r.Time(ColActivityDate); err != nil {
		return a, err
	}
	if a.Name, err = r.String(ColActivityName); err != nil {
		return a, err
	}
	if a.Type, err = r.ActivityType(ColActivityType); err != nil {
		return a, err
	}
	if a.ElapsedSeconds, err = r.Uint32(ColElapsedTime); err != nil {
		return a, err
	}
	if a.Distance, err = r.Float(ColDistance); err != nil {
		return a, err
	}
	if a.MaxHeartRate, err = r.OptFloat(ColMaxHeartRate); err != nil {
		return a, err
	}
	if a.AvgHeartRate, err = r.OptFloat(ColAvgHeartRate); err != nil {
		return a, err
	}
	if a.Filename, err = r.String(ColFilename); err != nil {
		return a, err
	}
	if a.ElapsedSecondsSecondary, err = r.OptFloat(ColElapsedTime2); err != nil {
		return a, err
	}
	if a.MovingSeconds, err = r.OptFloat(ColMovingTime); err != nil {
		return a, err
	}
	if a.DistanceSecondary, err = r.Float(ColDistance2); err != nil {
		return a, err
	}
	if a.MaxSpeed, err = r.OptFloat(ColMaxSpeed); err != nil {
		return a, err
	}
	if a.AvgSpeed, err = r.OptFloat(ColAvgSpeed); err != nil {
		return a, err
	}
	if a.ElevationLow, err = r.OptFloat(ColElevationLow); err != nil {
		return a, err
	}
	if a.ElevationHigh, err = r.OptFloat(ColElevationHigh); err != nil {
		return a, err
	}
	return a, nil
}
