package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lukechampine.com/uint128"

	"github.com/sstent/stravarchive-go/internal/models"
)

var (
	// ErrMissingColumn means the header has no column with the required name.
	ErrMissingColumn = errors.New("column not present in header")
	// ErrMissingField means the row is shorter than the header.
	ErrMissingField = errors.New("row has no value for column")
	// ErrEmptyField means a required value is empty.
	ErrEmptyField = errors.New("required value is empty")
	// ErrNotDecimal means an id holds anything but ASCII digits.
	ErrNotDecimal = errors.New("not an unsigned decimal integer")
)

// DecodeError locates a value that could not be decoded.
type DecodeError struct {
	Line   int
	Column string
	Index  int // -1 when the column is absent from the header
	Value  string
	Row    []string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: column %q (index %d): value %q: %v; row: %s",
		e.Line, e.Column, e.Index, e.Value, e.Err, strings.Join(e.Row, ","))
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Record is one data row bound to a Header. Values are looked up by
// normalized column name, so extra or reordered columns do not matter.
type Record struct {
	header *Header
	cells  []string
	line   int
}

// Bind attaches a data row to the header.
func (h *Header) Bind(cells []string, line int) *Record {
	return &Record{header: h, cells: cells, line: line}
}

// Line is the 1-based line number of the row in its file.
func (r *Record) Line() int { return r.line }

func (r *Record) fail(column string, index int, value string, err error) error {
	return &DecodeError{
		Line:   r.line,
		Column: column,
		Index:  index,
		Value:  value,
		Row:    r.cells,
		Err:    err,
	}
}

// raw returns the cell for a column that must exist in the header.
func (r *Record) raw(name string) (string, int, error) {
	i, ok := r.header.Index(name)
	if !ok {
		return "", -1, r.fail(name, -1, "", ErrMissingColumn)
	}
	if i >= len(r.cells) {
		return "", i, r.fail(name, i, "", ErrMissingField)
	}
	return r.cells[i], i, nil
}

// optional returns the cell for an optional column. A column absent from the
// header or an empty cell is reported as not present; a short row is an error.
func (r *Record) optional(name string) (string, int, bool, error) {
	i, ok := r.header.Index(name)
	if !ok {
		return "", -1, false, nil
	}
	if i >= len(r.cells) {
		return "", i, false, r.fail(name, i, "", ErrMissingField)
	}
	if r.cells[i] == "" {
		return "", i, false, nil
	}
	return r.cells[i], i, true, nil
}

// String returns a required text value; empty is allowed.
func (r *Record) String(name string) (string, error) {
	v, _, err := r.raw(name)
	return v, err
}

// Uint32 decodes a required non-negative integer.
func (r *Record) Uint32(name string) (uint32, error) {
	v, i, err := r.raw(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, r.fail(name, i, v, err)
	}
	return uint32(n), nil
}

// Uint128 decodes a required 128-bit unsigned integer.
func (r *Record) Uint128(name string) (uint128.Uint128, error) {
	v, i, err := r.raw(name)
	if err != nil {
		return uint128.Zero, err
	}
	if v == "" {
		return uint128.Zero, r.fail(name, i, v, ErrEmptyField)
	}
	// FromString scans like fmt: it stops at the first non-digit and takes signs
	// and base prefixes.
	if strings.TrimLeft(v, "0123456789") != "" {
		return uint128.Zero, r.fail(name, i, v, ErrNotDecimal)
	}
	n, err := uint128.FromString(v)
	if err != nil {
		return uint128.Zero, r.fail(name, i, v, err)
	}
	return n, nil
}

// Float decodes a required float.
func (r *Record) Float(name string) (float64, error) {
	v, i, err := r.raw(name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, r.fail(name, i, v, err)
	}
	return f, nil
}

// OptFloat decodes an optional float. Empty means absent; anything else that
// does not parse is an error, never a silent absence.
func (r *Record) OptFloat(name string) (*float64, error) {
	v, i, ok, err := r.optional(name)
	if err != nil || !ok {
		return nil, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, r.fail(name, i, v, err)
	}
	return &f, nil
}

// Time decodes a required export timestamp.
func (r *Record) Time(name string) (time.Time, error) {
	v, i, err := r.raw(name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseDate(v)
	if err != nil {
		return time.Time{}, r.fail(name, i, v, err)
	}
	return t, nil
}

// ActivityType decodes a required activity type label.
func (r *Record) ActivityType(name string) (models.ActivityType, error) {
	v, i, err := r.raw(name)
	if err != nil {
		return 0, err
	}
	t, err := models.ParseActivityLabel(v)
	if err != nil {
		return 0, r.fail(name, i, v, err)
	}
	return t, nil
}
