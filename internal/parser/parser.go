package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// DecodeFunc turns one bound row into a typed record.
type DecodeFunc[T any] func(*Record) (T, error)

// Decode reads a comma separated stream whose first row is the header and
// decodes every following row with fn. Decoding is all or nothing: the first
// failing row aborts and no records are returned.
func Decode[T any](r io.Reader, fn DecodeFunc[T]) ([]T, error) {
	rdr := csv.NewReader(r)
	// Short rows are reported per column by Record, not by the csv reader.
	rdr.FieldsPerRecord = -1

	raw, err := rdr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(raw) > 0 {
		raw[0] = strings.TrimPrefix(raw[0], utf8BOM)
	}
	header := NewHeader(raw)

	var out []T
	for {
		cells, err := rdr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := rdr.FieldPos(0)
		rec, err := fn(header.Bind(cells, line))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
