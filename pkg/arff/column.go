package arff

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolve turns a column reference into a position. Integers are returned as
// they are (negative values count from the end of the row, as in slice
// notation). Names are looked up among the attribute names and are only
// accepted for ARFF inputs.
func Resolve(spec string, isARFF bool, names []string) (int, error) {
	s := strings.TrimSpace(spec)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if !isARFF {
		return 0, fmt.Errorf("%w: %q", ErrNamesRequireARFF, spec)
	}
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, spec)
}

// Resolve resolves spec against h.
func (h *Header) Resolve(spec string) (int, error) {
	return Resolve(spec, h.IsARFF, h.AttributeNames)
}

// Range is a contiguous block of columns, First inclusive and Last exclusive.
// When ToEnd is set Last is ignored and the block runs to the end of each
// row, whatever its width.
type Range struct {
	First int
	Last  int
	ToEnd bool
}

// ResolveRange parses "first[:last]". A missing or empty last component
// means through the end of the row.
func ResolveRange(spec string, isARFF bool, names []string) (Range, error) {
	firstSpec, lastSpec, _ := strings.Cut(spec, ":")
	first, err := Resolve(firstSpec, isARFF, names)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", spec, err)
	}
	if strings.TrimSpace(lastSpec) == "" {
		return Range{First: first, ToEnd: true}, nil
	}
	last, err := Resolve(lastSpec, isARFF, names)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", spec, err)
	}
	return Range{First: first, Last: last}, nil
}

// ResolveRange resolves spec against h.
func (h *Header) ResolveRange(spec string) (Range, error) {
	return ResolveRange(spec, h.IsARFF, h.AttributeNames)
}

// Bounds returns the half-open interval the range covers in a row of the
// given width, with slice semantics: negative positions count from the end
// and out-of-range positions are clamped.
func (r Range) Bounds(width int) (lo, hi int) {
	lo = clamp(r.First, width)
	hi = width
	if !r.ToEnd {
		hi = clamp(r.Last, width)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Width is the number of columns the range covers in a row of the given width.
func (r Range) Width(width int) int {
	lo, hi := r.Bounds(width)
	return hi - lo
}

// Slice returns a copy of the part of row covered by the range.
func (r Range) Slice(row []string) []string {
	lo, hi := r.Bounds(len(row))
	out := make([]string, hi-lo)
	copy(out, row[lo:hi])
	return out
}

func (r Range) String() string {
	if r.ToEnd {
		return fmt.Sprintf("%d:", r.First)
	}
	return fmt.Sprintf("%d:%d", r.First, r.Last)
}

// Index normalizes a possibly negative position against width. It fails with
// ErrColumnOutOfRange when the position does not exist.
func Index(pos, width int) (int, error) {
	i := pos
	if i < 0 {
		i += width
	}
	if i < 0 || i >= width {
		return 0, fmt.Errorf("%w: %d (width %d)", ErrColumnOutOfRange, pos, width)
	}
	return i, nil
}

// InsertAt normalizes an insertion position against width with slice
// semantics, so -1 means before the last element.
func InsertAt(pos, width int) int {
	return clamp(pos, width)
}

func clamp(pos, width int) int {
	if pos < 0 {
		pos += width
		if pos < 0 {
			return 0
		}
	}
	if pos > width {
		return width
	}
	return pos
}
