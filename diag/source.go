package diag

import (
	"sort"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Source wraps the original text so renderers can resolve spans without
// trusting them. Every accessor clamps its input, so a malformed span coming
// from an upstream bug degrades to an empty or truncated range instead of a
// panic.
type Source struct {
	Name string
	Text string

	lineStarts []int
}

// NewSource indexes text for line lookups.
func NewSource(name, text string) *Source {
	starts := []int{0}

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Source{Name: name, Text: text, lineStarts: starts}
}

// Len returns the length of the text in bytes.
func (s *Source) Len() int { return len(s.Text) }

// LineCount returns the number of lines. An empty text has one empty line.
func (s *Source) LineCount() int { return len(s.lineStarts) }

// Clamp coerces span into [0, Len()]. A reversed span collapses to an empty
// span at its (clamped) start; a span running past the end is truncated.
// Offsets inside a multi-byte rune are moved back to the rune start.
func (s *Source) Clamp(span Span) Span {
	start := s.clampOffset(span.Start)
	end := s.clampOffset(span.End)

	if end < start {
		end = start
	}

	return Span{Start: start, End: end}
}

// Slice returns the text covered by the clamped span.
func (s *Source) Slice(span Span) string {
	c := s.Clamp(span)
	return s.Text[c.Start:c.End]
}

// Position resolves a byte offset to a participle position with 1-based line
// and rune column. The offset is clamped first.
func (s *Source) Position(off int) lexer.Position {
	off = s.clampOffset(off)
	line := sort.Search(len(s.lineStarts), func(i int) bool { return s.lineStarts[i] > off }) - 1
	col := utf8.RuneCountInString(s.Text[s.lineStarts[line]:off]) + 1

	return lexer.Position{
		Filename: s.Name,
		Offset:   off,
		Line:     line + 1,
		Column:   col,
	}
}

// Range resolves both ends of a clamped span.
func (s *Source) Range(span Span) (lexer.Position, lexer.Position) {
	c := s.Clamp(span)
	return s.Position(c.Start), s.Position(c.End)
}

// Line returns the text of 1-based line n without its terminator, or "" when
// n is out of range.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[n-1]
	end := len(s.Text)

	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}

	if end > start && s.Text[end-1] == '\r' {
		end--
	}

	return s.Text[start:end]
}

func (s *Source) clampOffset(off int) int {
	switch {
	case off < 0:
		return 0
	case off > len(s.Text):
		return len(s.Text)
	}

	for off > 0 && off < len(s.Text) && !utf8.RuneStart(s.Text[off]) {
		off--
	}

	return off
}
