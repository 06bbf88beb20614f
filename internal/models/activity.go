package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lukechampine.com/uint128"
)

// ErrUnknownActivityType is returned when a label is not one of the known activity types.
var ErrUnknownActivityType = errors.New("unknown activity type")

// ActivityType is the closed set of activity types found in an export.
type ActivityType int

const (
	AlpineSki ActivityType = iota + 1
	Hike
	IceSkate
	Ride
	Run
	Walk
	WeightTraining
	Workout
	Yoga
)

// ActivityTypes lists every known type in label order.
var ActivityTypes = []ActivityType{
	AlpineSki, Hike, IceSkate, Ride, Run, Walk, WeightTraining, Workout, Yoga,
}

var activityLabels = map[ActivityType]string{
	AlpineSki:      "Alpine Ski",
	Hike:           "Hike",
	IceSkate:       "Ice Skate",
	Ride:           "Ride",
	Run:            "Run",
	Walk:           "Walk",
	WeightTraining: "Weight Training",
	Workout:        "Workout",
	Yoga:           "Yoga",
}

var activityIdents = map[ActivityType]string{
	AlpineSki:      "AlpineSki",
	Hike:           "Hike",
	IceSkate:       "IceSkate",
	Ride:           "Ride",
	Run:            "Run",
	Walk:           "Walk",
	WeightTraining: "WeightTraining",
	Workout:        "Workout",
	Yoga:           "Yoga",
}

// String returns the label used by the export, e.g. "Alpine Ski".
func (t ActivityType) String() string {
	if l, ok := activityLabels[t]; ok {
		return l
	}
	return fmt.Sprintf("ActivityType(%d)", int(t))
}

// Ident returns the identifier form, e.g. "AlpineSki".
func (t ActivityType) Ident() string {
	if id, ok := activityIdents[t]; ok {
		return id
	}
	return t.String()
}

// ParseActivityLabel matches an export label exactly. Any other string is an error,
// so a new or renamed type in the export surfaces instead of being dropped.
func ParseActivityLabel(s string) (ActivityType, error) {
	for t, l := range activityLabels {
		if l == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownActivityType, s)
}

// ParseActivitySelector is the lenient form used on the command line. It accepts
// either the label or the identifier, ignoring case.
func ParseActivitySelector(s string) (ActivityType, error) {
	s = strings.TrimSpace(s)
	for _, t := range ActivityTypes {
		if strings.EqualFold(s, activityLabels[t]) || strings.EqualFold(s, activityIdents[t]) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownActivityType, s)
}

// ActivitySummary is one row of activities.csv.
type ActivitySummary struct {
	ID       uint128.Uint128
	Date     time.Time // UTC
	Name     string
	Type     ActivityType
	Filename string

	ElapsedSeconds          uint32
	ElapsedSecondsSecondary *float64
	MovingSeconds           *float64 // expected <= ElapsedSeconds, not enforced

	Distance          float64 // km
	DistanceSecondary float64 // recorded distance, source units

	MaxHeartRate *float64 // bpm
	AvgHeartRate *float64 // bpm

	MaxSpeed *float64 // m/s
	AvgSpeed *float64 // m/s

	ElevationLow  *float64 // m
	ElevationHigh *float64 // m
}

// String renders a one-line summary used by the verify command.
func (a ActivitySummary) String() string {
	return fmt.Sprintf("#%s %s %s %q elapsed=%ds distance=%.2fkm",
		a.ID, a.Date.Format(time.RFC3339), a.Type, a.Name, a.ElapsedSeconds, a.Distance)
}

// Flag is one row of flags.csv.
type Flag struct {
	Category    string
	FlaggedType string
	FlaggedID   string
	Comment     string
	Timestamp   time.Time
}

// Media is one row of media.csv.
type Media struct {
	Filename string
	Caption  string
}

// Archive holds every record decoded from one export directory.
type Archive struct {
	Activities []ActivitySummary
	Flags      []Flag
	Media      []Media
}

// Filter returns the activities of the given type in archive order.
func (a *Archive) Filter(t ActivityType) []ActivitySummary {
	var out []ActivitySummary
	for _, act := range a.Activities {
		if act.Type == t {
			out = append(out, act)
		}
	}
	return out
}
