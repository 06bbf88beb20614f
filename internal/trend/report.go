// Package trend projects decoded activities into per-metric rows.
package trend

import (
	"sort"
	"time"

	"github.com/sstent/stravarchive-go/internal/models"
)

// Row is one activity in a trend.
type Row struct {
	Date  time.Time
	Cells []string
}

// Table is a trend ready for presentation.
type Table struct {
	Activity models.ActivityType
	Metric   Metric
	Columns  []string
	Rows     []Row
}

// Options narrows a trend by date. A zero bound is open. From is inclusive,
// To is exclusive.
type Options struct {
	From time.Time
	To   time.Time
}

func (o Options) includes(t time.Time) bool {
	if !o.From.IsZero() && t.Before(o.From) {
		return false
	}
	if !o.To.IsZero() && !t.Before(o.To) {
		return false
	}
	return true
}

// Report builds the trend of one metric for one activity type. Rows are
// ordered by date ascending; activities with equal dates keep archive order.
// No matching activity yields an empty table, not an error.
func Report(a *models.Archive, activity models.ActivityType, metric Metric, opts Options) (*Table, error) {
	reporter, err := ReporterFor(metric)
	if err != nil {
		return nil, err
	}

	acts := a.Filter(activity)
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Date.Before(acts[j].Date) })

	table := &Table{
		Activity: activity,
		Metric:   metric,
		Columns:  reporter.Columns(),
	}
	for _, act := range acts {
		if !opts.includes(act.Date) {
			continue
		}
		cells, ok := reporter.Row(act)
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, Row{Date: act.Date, Cells: cells})
	}
	return table, nil
}
