package diag

import "strconv"

// Span is a half-open byte range [Start, End) into the original source text.
// A zero-width span marks an insertion point.
type Span struct {
	Start int
	End   int
}

// NewSpan returns the span [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Point returns a zero-width span at off.
func Point(off int) Span {
	return Span{Start: off, End: off}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}

	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool { return s.Len() == 0 }

// Valid reports whether Start <= End and both are non-negative.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.Start <= s.End
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off < s.End
}

// To returns the smallest span covering both s and other.
func (s Span) To(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}

	if other.End > out.End {
		out.End = other.End
	}

	return out
}

func (s Span) String() string {
	return strconv.Itoa(s.Start) + ".." + strconv.Itoa(s.End)
}
