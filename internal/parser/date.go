package parser

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the export's timestamp format, e.g. "Dec 26, 2014, 8:02:53 PM".
// Day and hour carry no padding.
const DateLayout = "Jan 2, 2006, 3:04:05 PM"

// ErrBadDate wraps every timestamp that does not match DateLayout.
var ErrBadDate = errors.New("invalid export date")

// ParseDate parses an export timestamp. The export carries no zone, and the
// wall clock digits are taken to be UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrBadDate, err)
	}
	return t.UTC(), nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
