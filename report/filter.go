package report

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rlch/gql/diag"
)

// Filter selects diagnostics with an expr-lang boolean expression. The
// expression sees severity, code, subsystem, message, file, line and column.
//
//	severity == "error" && subsystem == "parser"
//	code in ["P003", "P_QUANTIFIER"]
type Filter struct {
	source  string
	program *vm.Program
}

// NewFilter compiles expression. An empty expression matches everything.
func NewFilter(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return &Filter{}, nil
	}

	program, err := expr.Compile(expression, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("report: compiling filter %q: %w", expression, err)
	}

	return &Filter{source: expression, program: program}, nil
}

// String returns the compiled expression.
func (f *Filter) String() string { return f.source }

type filterEnv struct {
	Severity  string `expr:"severity"`
	Code      string `expr:"code"`
	Subsystem string `expr:"subsystem"`
	Message   string `expr:"message"`
	File      string `expr:"file"`
	Line      int    `expr:"line"`
	Column    int    `expr:"column"`
}

// Match reports whether d passes the filter. src resolves the line and
// column and may be nil.
func (f *Filter) Match(file string, src *diag.Source, d diag.Diagnostic) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	env := filterEnv{
		Severity:  d.Severity.String(),
		Code:      d.Code,
		Subsystem: diag.Subsystem(d.Code),
		Message:   d.Message,
		File:      file,
	}

	if span, ok := d.PrimarySpan(); ok && src != nil {
		pos := src.Position(span.Start)
		env.Line = pos.Line
		env.Column = pos.Column
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("report: evaluating filter: %w", err)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Apply returns a copy of file holding only the matching diagnostics.
func (f *Filter) Apply(file *File) (*File, error) {
	out := &File{Name: file.Name, Source: file.Source}

	for _, d := range file.Diagnostics {
		ok, err := f.Match(file.Name, file.Source, d)
		if err != nil {
			return nil, err
		}

		if ok {
			out.Diagnostics = append(out.Diagnostics, d)
		}
	}

	return out, nil
}
