package parser

import "github.com/sstent/stravarchive-go/internal/models"

// Column names in flags.csv and media.csv.
const (
	ColFlagCategory  = "Category"
	ColFlaggedType   = "Flagged Type"
	ColFlaggedID     = "Flagged ID"
	ColFlagComment   = "Comment"
	ColFlagTimestamp = "Timestamp"
	ColMediaFilename = "Media Filename"
	ColMediaCaption  = "Media Caption"
)

// DecodeFlag decodes one flags.csv row.
func DecodeFlag(r *Record) (models.Flag, error) {
	var (
		f   models.Flag
		err error
	)
	if f.Category, err = r.String(ColFlagCategory); err != nil {
		return f, err
	}
	if f.FlaggedType, err = r.String(ColFlaggedType); err != nil {
		return f, err
	}
	if f.FlaggedID, err = r.String(ColFlaggedID); err != nil {
		return f, err
	}
	if f.Comment, err = r.String(ColFlagComment); err != nil {
		return f, err
	}
	if f.Timestamp, err = r.Time(ColFlagTimestamp); err != nil {
		return f, err
	}
	return f, nil
}

// DecodeMedia decodes one media.csv row.
func DecodeMedia(r *Record) (models.Media, error) {
	var (
		m   models.Media
		err error
	)
	if m.Filename, err = r.String(ColMediaFilename); err != nil {
		return m, err
	}
	if m.Caption, err = r.String(ColMediaCaption); err != nil {
		return m, err
	}
	return m, nil
}
