package source

import (
	"fmt"

	"fortio.org/safecast"
)

// TextSize is a byte offset or length inside a single file.
type TextSize = uint32

// TextRange is a half-open byte interval [Start, End).
type TextRange struct {
	Start TextSize
	End   TextSize
}

// NewRange builds a range, swapping the bounds when they come in reverse.
func NewRange(start, end TextSize) TextRange {
	if end < start {
		start, end = end, start
	}
	return TextRange{Start: start, End: end}
}

// RangeAt returns the range of length n starting at offset.
func RangeAt(offset, n TextSize) TextRange {
	return TextRange{Start: offset, End: offset + n}
}

// SizeOf converts a Go length into a TextSize, panicking on overflow.
// Source files larger than 4GiB are rejected long before reaching the tree.
func SizeOf(n int) TextSize {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("text size overflow: %w", err))
	}
	return v
}

func (r TextRange) Len() TextSize { return r.End - r.Start }

func (r TextRange) Empty() bool { return r.Start == r.End }

// Contains reports whether offset lies in [Start, End).
func (r TextRange) Contains(offset TextSize) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsInclusive reports whether offset lies in [Start, End].
func (r TextRange) ContainsInclusive(offset TextSize) bool {
	return r.Start <= offset && offset <= r.End
}

// ContainsRange reports whether other lies entirely inside r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Intersects reports whether the two ranges share at least one position.
// Touching ranges count as intersecting so that an empty filter range placed
// at a token boundary still selects the surrounding nodes.
func (r TextRange) Intersects(other TextRange) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Intersect returns the common part of two ranges, if any.
func (r TextRange) Intersect(other TextRange) (TextRange, bool) {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if end < start {
		return TextRange{}, false
	}
	return TextRange{Start: start, End: end}, true
}

// Cover returns the smallest range containing both r and other.
func (r TextRange) Cover(other TextRange) TextRange {
	return TextRange{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Add shifts the range right by offset.
func (r TextRange) Add(offset TextSize) TextRange {
	return TextRange{Start: r.Start + offset, End: r.End + offset}
}

// Sub shifts the range left by offset.
func (r TextRange) Sub(offset TextSize) TextRange {
	return TextRange{Start: r.Start - offset, End: r.End - offset}
}

// Slice returns the part of text covered by the range; out of bounds ranges are clamped.
func (r TextRange) Slice(text string) string {
	n := SizeOf(len(text))
	start, end := min(r.Start, n), min(r.End, n)
	return text[start:end]
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// ParseRange parses the "start..end" form produced by String.
func ParseRange(s string) (TextRange, error) {
	var start, end uint32
	if _, err := fmt.Sscanf(s, "%d..%d", &start, &end); err != nil {
		return TextRange{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if end < start {
		return TextRange{}, fmt.Errorf("invalid range %q: end before start", s)
	}
	return TextRange{Start: start, End: end}, nil
}
