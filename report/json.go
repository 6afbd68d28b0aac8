package report

import (
	"encoding/json"
	"io"

	"github.com/rlch/gql/diag"
)

// JSONFormatter collects files and writes a single JSON document on Summary.
type JSONFormatter struct {
	w     io.Writer
	doc   jsonDocument
	tally tally
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w, doc: jsonDocument{Files: []jsonFile{}}}
}

type jsonDocument struct {
	Files    []jsonFile `json:"files"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
	Notes    int        `json:"notes"`
}

type jsonFile struct {
	Name        string           `json:"name"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonDiagnostic struct {
	Severity diag.Severity `json:"severity"`
	Code     string        `json:"code,omitempty"`
	Message  string        `json:"message"`
	Range    *jsonRange    `json:"range,omitempty"`
	Labels   []jsonLabel   `json:"labels,omitempty"`
	Help     string        `json:"help,omitempty"`
	Notes    []string      `json:"notes,omitempty"`
}

type jsonLabel struct {
	Range   jsonRange `json:"range"`
	Message string    `json:"message,omitempty"`
	Primary bool      `json:"primary"`
}

type jsonRange struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Format records the diagnostics of f with resolved positions.
func (j *JSONFormatter) Format(f *File) error {
	j.tally.add(f)

	src := f.Source
	if src == nil {
		src = diag.NewSource(f.Name, "")
	}

	out := jsonFile{Name: f.Name, Diagnostics: make([]jsonDiagnostic, 0, len(f.Diagnostics))}

	for _, d := range diag.Sorted(f.Diagnostics) {
		jd := jsonDiagnostic{
			Severity: d.Severity,
			Code:     d.Code,
			Message:  d.Message,
			Help:     d.Help,
			Notes:    d.Notes,
		}

		if span, ok := d.PrimarySpan(); ok {
			r := resolve(src, span)
			jd.Range = &r
		}

		for _, l := range d.Labels {
			jd.Labels = append(jd.Labels, jsonLabel{Range: resolve(src, l.Span), Message: l.Message, Primary: l.Primary})
		}

		out.Diagnostics = append(out.Diagnostics, jd)
	}

	j.doc.Files = append(j.doc.Files, out)

	return nil
}

// Summary writes the collected document.
func (j *JSONFormatter) Summary() error {
	j.doc.Errors = j.tally.errors
	j.doc.Warnings = j.tally.warnings
	j.doc.Notes = j.tally.notes

	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")

	return enc.Encode(j.doc)
}

func resolve(src *diag.Source, span diag.Span) jsonRange {
	start, end := src.Range(span)

	return jsonRange{
		Start: jsonPosition{Offset: start.Offset, Line: start.Line, Column: start.Column},
		End:   jsonPosition{Offset: end.Offset, Line: end.Line, Column: end.Column},
	}
}
