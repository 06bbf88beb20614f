package parser

import "fmt"

// NormalizeHeaders makes every column name unique. The first occurrence of a
// name is kept as is; later occurrences get the first free " (N)" suffix,
// starting at 2. Positions are preserved.
//
// It must run exactly once on a raw header: a second pass over names that are
// already unique is a no-op, but a raw header mixing "Distance (2)" with a
// repeated "Distance" is only resolved deterministically on the first pass.
func NormalizeHeaders(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, name := range raw {
		if _, dup := seen[name]; dup {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s (%d)", name, n)
				if _, taken := seen[candidate]; !taken {
					name = candidate
					break
				}
			}
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Header maps normalized column names to their positions in a row.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader normalizes a raw header row and indexes it by name.
func NewHeader(raw []string) *Header {
	names := NormalizeHeaders(raw)
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	return &Header{names: names, index: index}
}

// Names returns the normalized column names in file order.
func (h *Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Index returns the position of a normalized column name.
func (h *Header) Index(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

// Len is the number of columns.
func (h *Header) Len() int { return len(h.names) }
