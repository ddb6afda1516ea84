package ast

import "strconv"

// Range is a half-open span [Start, End) of byte offsets into the
// normalized source text.
type Range struct {
	Start int
	End   int
}

// NewRange returns the span [start, end), or nil if it is empty.
// An absent range never stands for offset zero.
func NewRange(start, end int) *Range {
	if end <= start {
		return nil
	}

	return &Range{Start: start, End: end}
}

// Len returns the number of bytes covered by r.
func (r *Range) Len() int {
	if r == nil {
		return 0
	}

	return r.End - r.Start
}

// Contains reports whether o lies within r.
// A nil o is contained by any range; a nil r contains only nil.
func (r *Range) Contains(o *Range) bool {
	if o == nil {
		return true
	}

	if r == nil {
		return false
	}

	return r.Start <= o.Start && o.End <= r.End
}

// Union returns the smallest range covering both r and o.
func (r *Range) Union(o *Range) *Range {
	switch {
	case r == nil:
		return o
	case o == nil:
		return r
	}

	return &Range{Start: min(r.Start, o.Start), End: max(r.End, o.End)}
}

// String formats r as "start:end", or "-" when absent.
func (r *Range) String() string {
	if r == nil {
		return "-"
	}

	return strconv.Itoa(r.Start) + ":" + strconv.Itoa(r.End)
}
