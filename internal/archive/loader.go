// Package archive loads an extracted export directory into memory.
package archive

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/sstent/stravarchive-go/internal/models"
	"github.com/sstent/stravarchive-go/internal/parser"
)

// Known file names at the top of an export directory.
const (
	ActivitiesFile = "activities.csv"
	FlagsFile      = "flags.csv"
	MediaFile      = "media.csv"
)

type decodeFile func(r io.Reader, a *models.Archive) (int, error)

func into[T any](fn parser.DecodeFunc[T], dst func(*models.Archive) *[]T) decodeFile {
	return func(r io.Reader, a *models.Archive) (int, error) {
		recs, err := parser.Decode(r, fn)
		if err != nil {
			return 0, err
		}
		field := dst(a)
		*field = append(*field, recs...)
		return len(recs), nil
	}
}

var decoders = map[string]decodeFile{
	ActivitiesFile: into(parser.DecodeActivity, func(a *models.Archive) *[]models.ActivitySummary { return &a.Activities }),
	FlagsFile:      into(parser.DecodeFlag, func(a *models.Archive) *[]models.Flag { return &a.Flags }),
	MediaFile:      into(parser.DecodeMedia, func(a *models.Archive) *[]models.Media { return &a.Media }),
}

// Known reports whether name is a file the loader decodes.
func Known(name string) bool {
	_, ok := decoders[name]
	return ok
}

// Loader reads the recognized files of an export directory. Entries it does
// not recognize, including subdirectories, are skipped.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load decodes every recognized file directly inside dir.
func (l *Loader) Load(dir string) (*models.Archive, error) {
	return l.LoadFS(os.DirFS(dir), dir)
}

// LoadFS decodes every recognized file at the root of fsys. root is only used
// to label errors and log lines. Any failure discards the whole archive.
func (l *Loader) LoadFS(fsys fs.FS, root string) (*models.Archive, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	archive := &models.Archive{}
	for _, entry := range entries {
		name := entry.Name()
		decode, ok := decoders[name]
		if !ok || entry.IsDir() {
			l.logger.Debug("skipping entry", slog.String("dir", root), slog.String("name", name))
			continue
		}

		full := filepath.Join(root, name)
		n, err := l.loadFile(fsys, name, decode, archive)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", full, err)
		}
		l.logger.Info("decoded file", slog.String("path", full), slog.Int("records", n))
	}
	return archive, nil
}

func (l *Loader) loadFile(fsys fs.FS, name string, decode decodeFile, archive *models.Archive) (int, error) {
	f, err := fsys.Open(path.Clean(name))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return decode(f, archive)
}
