// Package diag holds the structured diagnostic model shared by the lexer and
// parser: spans, severities, labeled diagnostics and a span-validating source
// wrapper used by renderers.
package diag

import (
	"fmt"
	"slices"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

// Severity levels, most severe first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "severity(" + fmt.Sprint(int(s)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "note", "info":
		*s = SeverityNote
	default:
		return fmt.Errorf("diag: unknown severity %q", text)
	}

	return nil
}

// Label attaches a message to a span. Primary labels point at the offending
// location; secondary labels add context.
type Label struct {
	Span    Span
	Message string
	Primary bool
}

// Diagnostic is a pure value describing one problem found in the source.
// The With* methods return updated copies and never mutate the receiver.
type Diagnostic struct {
	Severity Severity
	Message  string
	Labels   []Label
	Help     string
	Notes    []string
	Code     string
}

// Errorf returns an error-severity diagnostic.
func Errorf(format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

// Warningf returns a warning-severity diagnostic.
func Warningf(format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// Notef returns a note-severity diagnostic.
func Notef(format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityNote, Message: fmt.Sprintf(format, args...)}
}

// WithPrimary adds a primary label.
func (d Diagnostic) WithPrimary(span Span, message string) Diagnostic {
	d.Labels = append(slices.Clip(d.Labels), Label{Span: span, Message: message, Primary: true})
	return d
}

// WithSecondary adds a secondary label.
func (d Diagnostic) WithSecondary(span Span, message string) Diagnostic {
	d.Labels = append(slices.Clip(d.Labels), Label{Span: span, Message: message})
	return d
}

// WithHelp sets the help text.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithNote appends a note. Notes keep their insertion order.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), note)
	return d
}

// WithCode sets the machine-readable code.
func (d Diagnostic) WithCode(code string) Diagnostic {
	d.Code = code
	return d
}

// PrimarySpan returns the span of the first primary label, falling back to
// the first label of any kind.
func (d Diagnostic) PrimarySpan() (Span, bool) {
	for _, l := range d.Labels {
		if l.Primary {
			return l.Span, true
		}
	}

	if len(d.Labels) > 0 {
		return d.Labels[0].Span, true
	}

	return Span{}, false
}

// Error implements error so a diagnostic can travel through error-returning APIs.
func (d Diagnostic) Error() string {
	var b strings.Builder

	b.WriteString(d.Severity.String())

	if d.Code != "" {
		b.WriteString("[" + d.Code + "]")
	}

	b.WriteString(": ")
	b.WriteString(d.Message)

	if span, ok := d.PrimarySpan(); ok {
		b.WriteString(" at " + span.String())
	}

	return b.String()
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	return Count(diags, SeverityError) > 0
}

// Count returns the number of diagnostics with the given severity.
func Count(diags []Diagnostic, sev Severity) int {
	n := 0

	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}

	return n
}

// Sorted returns a copy ordered by primary span start. The sort is stable so
// diagnostics at the same offset keep their emission order.
func Sorted(diags []Diagnostic) []Diagnostic {
	out := slices.Clone(diags)
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		sa, _ := a.PrimarySpan()
		sb, _ := b.PrimarySpan()

		return sa.Start - sb.Start
	})

	return out
}
