package track

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/sstent/stravarchive-go/internal/models"
)

// Parser decodes one track file into summary metrics.
type Parser interface {
	ParseData(data []byte) (*models.TrackMetrics, error)
}

// NewParser returns the parser for a detected file type.
func NewParser(fileType FileType) (Parser, error) {
	switch fileType {
	case FileTypeFIT:
		return NewFITParser(), nil
	case FileTypeTCX:
		return NewTCXParser(), nil
	case FileTypeGPX:
		return NewGPXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}

// ParseFile reads a track file, decompressing .gz files, and picks a parser
// by extension first and by content otherwise.
func ParseFile(path string) (*models.TrackMetrics, error) {
	data, err := readTrack(path)
	if err != nil {
		return nil, err
	}

	fileType := DetectFileType(path)
	if fileType == FileTypeUnknown {
		fileType = DetectFileTypeFromData(data)
	}

	p, err := NewParser(fileType)
	if err != nil {
		return nil, err
	}
	return p.ParseData(data)
}

func readTrack(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open track: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsGzip(path) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read track: %w", err)
	}
	return data, nil
}
