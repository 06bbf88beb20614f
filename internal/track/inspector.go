package track

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/sstent/stravarchive-go/internal/models"
)

// Result pairs an activity with the metrics decoded from its track file.
// Exactly one of Metrics and Err is set.
type Result struct {
	Activity models.ActivitySummary
	Path     string
	Metrics  *models.TrackMetrics
	Err      error
}

type Inspector struct {
	root   string
	logger *slog.Logger
}

func NewInspector(root string, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{root: root, logger: logger}
}

// Inspect decodes the track file of every activity that names one. A failing
// file is recorded on its Result and does not stop the walk. At most limit
// results are produced when limit is positive.
func (i *Inspector) Inspect(ctx context.Context, acts []models.ActivitySummary, limit int) ([]Result, error) {
	var results []Result
	for _, a := range acts {
		if a.Filename == "" {
			continue
		}
		if limit > 0 && len(results) >= limit {
			break
		}

		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		path := filepath.Join(i.root, filepath.FromSlash(a.Filename))
		res := Result{Activity: a, Path: path}
		res.Metrics, res.Err = ParseFile(path)
		if res.Err != nil {
			i.logger.Warn("failed to inspect track",
				slog.String("path", path),
				slog.String("id", a.ID.String()),
				slog.Any("error", res.Err))
		} else {
			i.logger.Debug("inspected track",
				slog.String("path", path),
				slog.String("format", res.Metrics.Format),
				slog.Int("points", res.Metrics.Points))
		}
		results = append(results, res)
	}
	return results, nil
}
