// internal/track/detector.go
package track

import (
	"bytes"
	"path/filepath"
	"strings"
)

type FileType string

const (
	FileTypeFIT     FileType = "fit"
	FileTypeTCX     FileType = "tcx"
	FileTypeGPX     FileType = "gpx"
	FileTypeUnknown FileType = "unknown"
)

// IsGzip reports whether a track file name carries a .gz suffix.
func IsGzip(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".gz")
}

// DetectFileType guesses the format from the file name, looking through a
// trailing .gz.
func DetectFileType(name string) FileType {
	if IsGzip(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".fit":
		return FileTypeFIT
	case ".tcx":
		return FileTypeTCX
	case ".gpx":
		return FileTypeGPX
	}
	return FileTypeUnknown
}

// DetectFileTypeFromData looks at the leading bytes of decompressed content.
func DetectFileTypeFromData(data []byte) FileType {
	// FIT header: size byte, then ".FIT" at offset 8
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FileTypeFIT
	}

	head := bytes.TrimSpace(data[:min(len(data), 512)])
	if bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<")) {
		if bytes.Contains(head, []byte("<gpx")) || bytes.Contains(head, []byte("topografix.com/GPX")) {
			return FileTypeGPX
		}
		if bytes.Contains(head, []byte("TrainingCenterDatabase")) {
			return FileTypeTCX
		}
	}

	return FileTypeUnknown
}
