package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sstent/stravarchive-go/internal/database"
	"github.com/sstent/stravarchive-go/internal/models"
	"github.com/sstent/stravarchive-go/internal/track"
	"github.com/sstent/stravarchive-go/internal/trend"
)

const dayLayout = "2006-01-02"

func (app *App) verify(_ context.Context, args []string) (string, error) {
	fs, dir := app.flagSet("verify")
	root, err := app.parseFlags(fs, dir, args)
	if err != nil {
		return root, err
	}

	a, err := app.loader.Load(root)
	if err != nil {
		return root, err
	}

	fmt.Fprintf(app.stdout, "%s: OK!\n", root)
	fmt.Fprintf(app.stdout, "activities: %d\n", len(a.Activities))
	if n := len(a.Activities); n > 0 {
		fmt.Fprintf(app.stdout, "  %s\n", a.Activities[0])
		if n > 1 {
			fmt.Fprintln(app.stdout, "  ...")
			fmt.Fprintf(app.stdout, "  %s\n", a.Activities[n-1])
		}
	}
	fmt.Fprintf(app.stdout, "flags: %d\n", len(a.Flags))
	fmt.Fprintf(app.stdout, "media: %d\n", len(a.Media))
	return root, nil
}

func (app *App) trend(_ context.Context, args []string) (string, error) {
	fs, dir := app.flagSet("trend")
	activity := fs.String("activity", "", "activity type, e.g. Run or \"Alpine Ski\"")
	metric := fs.String("metric", "", "duration, distance, heart-rate or elevation")
	since := fs.String("since", "", "first day to include (YYYY-MM-DD)")
	until := fs.String("until", "", "last day to include (YYYY-MM-DD)")
	root, err := app.parseFlags(fs, dir, args)
	if err != nil {
		return root, err
	}
	if *activity == "" || *metric == "" {
		fmt.Fprintln(app.stderr, "trend: --activity and --metric are required")
		fs.Usage()
		return root, errUsage
	}

	t, err := models.ParseActivitySelector(*activity)
	if err != nil {
		return root, err
	}
	m, err := trend.ParseMetric(*metric)
	if err != nil {
		return root, err
	}
	opts, err := app.dateRange(*since, *until)
	if err != nil {
		return root, err
	}

	a, err := app.loader.Load(root)
	if err != nil {
		return root, err
	}
	table, err := trend.Report(a, t, m, opts)
	if err != nil {
		return root, err
	}
	app.logger.Debug("trend built",
		"activity", t.String(), "metric", m.String(), "rows", len(table.Rows))
	return root, trend.Render(app.stdout, table, app.loc, app.cfg.ColumnWidth)
}

// dateRange turns inclusive calendar days in the configured zone into
// report bounds.
func (app *App) dateRange(since, until string) (trend.Options, error) {
	var opts trend.Options
	if since != "" {
		from, err := time.ParseInLocation(dayLayout, since, app.loc)
		if err != nil {
			return opts, fmt.Errorf("invalid --since: %w", err)
		}
		opts.From = from
	}
	if until != "" {
		to, err := time.ParseInLocation(dayLayout, until, app.loc)
		if err != nil {
			return opts, fmt.Errorf("invalid --until: %w", err)
		}
		opts.To = to.AddDate(0, 0, 1)
	}
	if !opts.From.IsZero() && !opts.To.IsZero() && !opts.From.Before(opts.To) {
		return opts, fmt.Errorf("--since %s is after --until %s", since, until)
	}
	return opts, nil
}

func (app *App) stats(_ context.Context, args []string) (string, error) {
	fs, dir := app.flagSet("stats")
	root, err := app.parseFlags(fs, dir, args)
	if err != nil {
		return root, err
	}

	a, err := app.loader.Load(root)
	if err != nil {
		return root, err
	}

	idx, err := database.NewIndex()
	if err != nil {
		return root, fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	if err := idx.Load(a); err != nil {
		return root, fmt.Errorf("failed to index archive: %w", err)
	}
	stats, err := idx.GetStats()
	if err != nil {
		return root, fmt.Errorf("failed to query index: %w", err)
	}

	rows := make([][]string, 0, len(stats.Types))
	for _, ts := range stats.Types {
		rows = append(rows, []string{
			ts.Type.String(),
			strconv.Itoa(ts.Count),
			trend.FormatDistance(ts.TotalDistance),
			trend.FormatDuration(ts.TotalElapsed),
			trend.FormatSeconds(&ts.TotalMoving),
			trend.FormatDistance(ts.MaxDistance),
			ts.Last.In(app.loc).Format(trend.DateFormat),
		})
	}
	header := []string{"Type", "count", "distance", "elapsed", "moving", "longest", "last"}
	if err := app.printGrid(header, rows); err != nil {
		return root, err
	}
	fmt.Fprintf(app.stdout, "activities: %d\n", stats.Activities)
	fmt.Fprintf(app.stdout, "flags: %d\n", stats.Flags)
	fmt.Fprintf(app.stdout, "media: %d\n", stats.Media)
	return root, nil
}

func (app *App) tracks(ctx context.Context, args []string) (string, error) {
	fs, dir := app.flagSet("tracks")
	activity := fs.String("activity", "", "only this activity type")
	limit := fs.Int("limit", 0, "stop after this many track files (0 for all)")
	root, err := app.parseFlags(fs, dir, args)
	if err != nil {
		return root, err
	}

	var only models.ActivityType
	if *activity != "" {
		if only, err = models.ParseActivitySelector(*activity); err != nil {
			return root, err
		}
	}

	a, err := app.loader.Load(root)
	if err != nil {
		return root, err
	}
	acts := a.Activities
	if only != 0 {
		acts = a.Filter(only)
	}

	results, err := track.NewInspector(root, app.logger).Inspect(ctx, acts, *limit)
	if err != nil {
		return root, err
	}

	failed := 0
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		row := []string{
			res.Activity.Date.In(app.loc).Format(trend.DateFormat),
			res.Activity.Type.String(),
		}
		if res.Err != nil {
			failed++
			row = append(row, "error: "+res.Err.Error())
		} else {
			m := res.Metrics
			row = append(row,
				m.Format,
				trend.FormatDuration(int64(m.Duration.Round(time.Second)/time.Second)),
				trend.FormatDistance(m.Distance/1000),
				strconv.Itoa(m.Points),
			)
		}
		rows = append(rows, row)
	}
	if err := app.printGrid([]string{"Date", "Type", "format", "duration", "distance", "points"}, rows); err != nil {
		return root, err
	}

	if failed > 0 {
		return root, fmt.Errorf("%d of %d track files failed", failed, len(results))
	}
	return root, nil
}

// printGrid writes right-aligned columns at least ColumnWidth wide. A row
// shorter than the header ends with its last cell unpadded.
func (app *App) printGrid(header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = max(app.cfg.ColumnWidth, lipgloss.Width(h))
	}
	for _, row := range rows {
		if len(row) < len(header) {
			continue
		}
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	r := lipgloss.NewRenderer(app.stdout)
	line := func(cells []string, bold bool) string {
		out := make([]string, len(cells))
		for i, c := range cells {
			if len(cells) < len(header) && i == len(cells)-1 {
				out[i] = c
				continue
			}
			out[i] = r.NewStyle().Width(widths[i]).Align(lipgloss.Right).Bold(bold).Render(c)
		}
		return strings.Join(out, " ")
	}

	if _, err := fmt.Fprintln(app.stdout, line(header, true)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(app.stdout, line(row, false)); err != nil {
			return err
		}
	}
	return nil
}
