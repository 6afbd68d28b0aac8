package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/rlch/gql/diag"
)

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	noteStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// TextFormatter renders diagnostics as annotated source excerpts.
type TextFormatter struct {
	w     io.Writer
	color bool
	tally tally
}

// NewTextFormatter creates a text formatter. With color false the output is
// plain text.
func NewTextFormatter(w io.Writer, color bool) *TextFormatter {
	return &TextFormatter{w: w, color: color}
}

func (t *TextFormatter) paint(style lipgloss.Style, s string) string {
	if !t.color {
		return s
	}

	return style.Render(s)
}

func (t *TextFormatter) severityStyle(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SeverityError:
		return errorStyle
	case diag.SeverityWarning:
		return warningStyle
	default:
		return noteStyle
	}
}

// Format renders every diagnostic of f in source order.
func (t *TextFormatter) Format(f *File) error {
	t.tally.add(f)

	src := f.Source
	if src == nil {
		src = diag.NewSource(f.Name, "")
	}

	var b strings.Builder

	for _, d := range diag.Sorted(f.Diagnostics) {
		t.writeDiagnostic(&b, f.Name, src, d)
	}

	_, err := io.WriteString(t.w, b.String())

	return err
}

func (t *TextFormatter) writeDiagnostic(b *strings.Builder, name string, src *diag.Source, d diag.Diagnostic) {
	style := t.severityStyle(d.Severity)

	head := d.Severity.String()
	if d.Code != "" {
		head += "[" + d.Code + "]"
	}

	fmt.Fprintf(b, "%s%s\n", t.paint(style, head), t.paint(boldStyle, ": "+d.Message))

	labels := orderedLabels(d.Labels)
	width := gutterWidth(src, labels)
	pad := strings.Repeat(" ", width)

	if len(labels) == 0 {
		fmt.Fprintf(b, "%s%s %s\n", pad, t.paint(gutterStyle, "-->"), name)
	} else {
		pos := src.Position(labels[0].Span.Start)
		fmt.Fprintf(b, "%s%s %s:%d:%d\n", pad, t.paint(gutterStyle, "-->"), name, pos.Line, pos.Column)
		fmt.Fprintf(b, "%s %s\n", pad, t.paint(gutterStyle, "|"))

		lastLine := 0

		for _, l := range labels {
			span := src.Clamp(l.Span)
			start, end := src.Range(span)
			text := src.Line(start.Line)

			if start.Line != lastLine {
				num := fmt.Sprintf("%*d", width, start.Line)
				fmt.Fprintf(b, "%s %s %s\n", t.paint(gutterStyle, num), t.paint(gutterStyle, "|"), text)
				lastLine = start.Line
			}

			n := utf8.RuneCountInString(text) - (start.Column - 1)
			if end.Line == start.Line {
				n = end.Column - start.Column
			}

			marker := "-"
			markStyle := gutterStyle

			if l.Primary {
				marker = "^"
				markStyle = style
			}

			underline := strings.Repeat(marker, max(n, 1))
			if l.Message != "" {
				underline += " " + l.Message
			}

			fmt.Fprintf(b, "%s %s %s%s\n", pad, t.paint(gutterStyle, "|"), indent(text, start.Column-1), t.paint(markStyle, underline))
		}
	}

	if d.Help != "" {
		fmt.Fprintf(b, "%s %s %s\n", pad, t.paint(gutterStyle, "="), t.paint(boldStyle, "help: ")+d.Help)
	}

	for _, note := range d.Notes {
		fmt.Fprintf(b, "%s %s %s\n", pad, t.paint(gutterStyle, "="), t.paint(boldStyle, "note: ")+note)
	}

	b.WriteString("\n")
}

// Summary prints the totals across all formatted files.
func (t *TextFormatter) Summary() error {
	c := t.tally
	line := fmt.Sprintf("checked %s: %s, %s", plural(c.files, "file"), plural(c.errors, "error"), plural(c.warnings, "warning"))

	style := dimStyle
	if c.errors > 0 {
		style = errorStyle
	}

	_, err := fmt.Fprintln(t.w, t.paint(style, line))

	return err
}

// orderedLabels puts primary labels first, keeping relative order otherwise.
func orderedLabels(labels []diag.Label) []diag.Label {
	out := make([]diag.Label, 0, len(labels))

	for _, l := range labels {
		if l.Primary {
			out = append(out, l)
		}
	}

	for _, l := range labels {
		if !l.Primary {
			out = append(out, l)
		}
	}

	return out
}

func gutterWidth(src *diag.Source, labels []diag.Label) int {
	width := 1

	for _, l := range labels {
		pos := src.Position(l.Span.Start)
		width = max(width, len(strconv.Itoa(pos.Line)))
	}

	return width
}

// indent returns whitespace lining up with the first n runes of line. Tabs
// are kept so carets stay aligned.
func indent(line string, n int) string {
	var b strings.Builder

	for _, r := range line {
		if n == 0 {
			break
		}

		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}

		n--
	}

	return b.String()
}
