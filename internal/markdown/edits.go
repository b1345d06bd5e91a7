package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

// Edit represents a targeted byte-range replacement.
//
// Start and End are byte offsets into the original source, with End exclusive.
// Replacement replaces source[Start:End].
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ErrOverlappingEdits is returned when two edits cover the same bytes.
var ErrOverlappingEdits = errors.New("invalid edits: overlapping ranges")

// ApplyEdits applies a set of byte-range edits to source and returns the updated content.
//
// Edits must be non-overlapping and refer to offsets in the original source.
// Bytes outside the edited ranges are copied unchanged.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	if err := validateEdits(sorted, len(source)); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(len(source))
	cursor := 0
	for _, e := range sorted {
		out.Write(source[cursor:e.Start])
		out.Write(e.Replacement)
		cursor = e.End
	}
	out.Write(source[cursor:])

	return out.Bytes(), nil
}

// validateEdits expects edits sorted by Start ascending.
func validateEdits(sorted []Edit, size int) error {
	for i, e := range sorted {
		if e.Start < 0 || e.End < 0 {
			return fmt.Errorf("invalid edit[%d]: negative range", i)
		}
		if e.End < e.Start {
			return fmt.Errorf("invalid edit[%d]: end before start", i)
		}
		if e.End > size {
			return fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		}
		if i > 0 && sorted[i-1].End > e.Start {
			return ErrOverlappingEdits
		}
	}
	return nil
}
