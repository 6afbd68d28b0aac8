// Package report renders diagnostics for people and machines.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/rlch/gql/diag"
)

// File groups the diagnostics produced for one input.
type File struct {
	Name        string
	Source      *diag.Source
	Diagnostics []diag.Diagnostic
}

// NewFile wraps text in a diag.Source and attaches diagnostics.
func NewFile(name, text string, diags []diag.Diagnostic) *File {
	return &File{Name: name, Source: diag.NewSource(name, text), Diagnostics: diags}
}

// Formatter renders files and a final summary.
type Formatter interface {
	Format(file *File) error
	Summary() error
}

// Formatter names accepted by NewFormatter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewFormatter creates a formatter by name. Color only applies to the text
// formatter.
func NewFormatter(name string, w io.Writer, color bool) (Formatter, error) {
	switch name {
	case FormatText, "":
		return NewTextFormatter(w, color), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("report: unknown format %q", name)
	}
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// tally counts diagnostics across formatted files.
type tally struct {
	files    int
	errors   int
	warnings int
	notes    int
}

func (t *tally) add(f *File) {
	t.files++
	t.errors += diag.Count(f.Diagnostics, diag.SeverityError)
	t.warnings += diag.Count(f.Diagnostics, diag.SeverityWarning)
	t.notes += diag.Count(f.Diagnostics, diag.SeverityNote)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}
