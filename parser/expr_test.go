package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/parser"
)

func TestParseExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "concat below additive", input: "1 || 2 + 3", want: "(|| 1 (+ 2 3))"},
		{name: "multiplicative binds tighter", input: "1 + 2 * 3", want: "(+ 1 (* 2 3))"},
		{name: "left associative", input: "1 - 2 - 3", want: "(- (- 1 2) 3)"},
		{name: "AND binds tighter than OR", input: "a OR b AND c", want: "(OR a (AND b c))"},
		{name: "XOR between OR and AND", input: "a OR b XOR c", want: "(OR a (XOR b c))"},
		{name: "NOT above comparison", input: "NOT a = b", want: "(NOT (= a b))"},
		{name: "unary minus over property", input: "-a.b", want: "(- (. a b))"},
		{name: "property chain", input: "a.b.c", want: "(. (. a b) c)"},
		{name: "arrow is less-than minus", input: "a <-1", want: "(< a (- 1))"},
		{name: "parameter", input: "$limit", want: "$limit"},
		{name: "parenthesized", input: "(1 + 2) * 3", want: "(* (+ 1 2) 3)"},
		{name: "IS NOT NULL", input: "x IS NOT NULL", want: "(IS NOT NULL x)"},
		{name: "IS TRUE", input: "x IS TRUE", want: "(IS TRUE x)"},
		{name: "typed shorthand", input: "x :: INT", want: "(IS TYPED x INT)"},
		{name: "IS LABELED", input: "n IS LABELED Person | Org", want: "(IS LABELED n (| Person Org))"},
		{name: "IS colon label", input: "n IS :Person", want: "(IS LABELED n Person)"},
		{name: "IS SOURCE OF", input: "a IS SOURCE OF e", want: "(IS SOURCE OF a e)"},
		{name: "cast", input: "CAST(a AS LIST<INT> NOT NULL)", want: "(cast a LIST<INT> NOT NULL)"},
		{name: "cast with params", input: "CAST(a AS decimal(10, 2))", want: "(cast a DECIMAL(10, 2))"},
		{name: "count star", input: "count(*)", want: "(COUNT *)"},
		{name: "count distinct", input: "COUNT(DISTINCT a)", want: "(COUNT DISTINCT a)"},
		{name: "percentile", input: "percentile_cont(x, 0.5)", want: "(PERCENTILE_CONT x 0.5)"},
		{name: "builtin", input: "abs(-1)", want: "(call ABS (- 1))"},
		{name: "builtin alias", input: "ceiling(x)", want: "(call CEIL x)"},
		{name: "custom function", input: "myFunc(1, 2)", want: "(call myFunc 1 2)"},
		{name: "coalesce", input: "COALESCE(a, 0)", want: "(call COALESCE a 0)"},
		{name: "searched case", input: "CASE WHEN a THEN 1 ELSE 2 END", want: "(case (when a 1) (else 2))"},
		{name: "simple case", input: "CASE x WHEN 1 THEN 'one' END", want: `(case x (when 1 "one"))`},
		{name: "list", input: "[1, 2]", want: "(list 1 2)"},
		{name: "LIST keyword", input: "LIST[]", want: "(list)"},
		{name: "record", input: "{a: 1, 'b c': 2}", want: `(record (a 1) (b c 2))`},
		{name: "path constructor", input: "PATH[a, e, b]", want: "(path a e b)"},
		{name: "date literal", input: "DATE '2024-01-01'", want: `(date "2024-01-01")`},
		{name: "string", input: "'it''s'", want: `"it's"`},
		{name: "booleans", input: "TRUE AND NULL", want: "(AND TRUE NULL)"},
		{name: "exists subquery", input: "EXISTS { MATCH (a) }", want: "(exists {8..19})"},
		{name: "exists expression", input: "EXISTS (a)", want: "(exists a)"},
		{name: "value subquery", input: "VALUE { RETURN 1 }", want: "(value-subquery {7..17})"},
		{name: "all different", input: "ALL_DIFFERENT(a, b)", want: "(ALL_DIFFERENT a b)"},
		{name: "property exists", input: "PROPERTY_EXISTS(n, name)", want: "(PROPERTY_EXISTS n name)"},
		{name: "delimited variable", input: "`my var`", want: "my var"},
		{name: "non-reserved keyword as variable", input: "trail + 1", want: "(+ trail 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, diags := parser.ParseExpression(lex(t, tt.input))
			require.Empty(t, diags)

			if diff := cmp.Diff(tt.want, ast.Format(e)); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseExpressionDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		codes []string
		want  string
	}{
		{
			name:  "chained comparison",
			input: "a < b < c",
			codes: []string{diag.CodeChainedComparison},
			want:  "(< a b)",
		},
		{
			name:  "chained comparison with arrow",
			input: "a = b <-1",
			codes: []string{diag.CodeChainedComparison},
			want:  "(= a b)",
		},
		{
			name:  "missing operand",
			input: "1 +",
			codes: []string{diag.CodeExpected},
			want:  "(+ 1 (bad))",
		},
		{
			name:  "trailing input",
			input: "1 2",
			codes: []string{diag.CodeTrailingInput},
			want:  "1",
		},
		{
			name:  "empty",
			input: "",
			codes: []string{diag.CodeExpected},
			want:  "(bad)",
		},
		{
			name:  "unclosed paren",
			input: "(1 + 2",
			codes: []string{diag.CodeExpected},
			want:  "(+ 1 2)",
		},
		{
			name:  "bad type",
			input: "CAST(a AS 1)",
			codes: []string{diag.CodeType, diag.CodeExpected, diag.CodeTrailingInput},
			want:  "(cast a)",
		},
		{
			name:  "element predicate arity",
			input: "SAME(a)",
			codes: []string{diag.CodeInvalidExpression},
			want:  "(SAME a)",
		},
		{
			name:  "reserved keyword misuse",
			input: "RECORD 1",
			codes: []string{diag.CodeExpected, diag.CodeTrailingInput},
			want:  "(bad)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, diags := parser.ParseExpression(lex(t, tt.input))
			assert.Equal(t, tt.codes, codes(diags))
			assert.Equal(t, tt.want, ast.Format(e))
		})
	}
}

func TestChainedComparisonLabels(t *testing.T) {
	t.Parallel()

	_, diags := parser.ParseExpression(lex(t, "a < b < c"))
	require.Len(t, diags, 1)

	d := diags[0]
	sp, ok := d.PrimarySpan()
	require.True(t, ok)
	assert.Equal(t, diag.NewSpan(6, 7), sp)
	require.Len(t, d.Labels, 2)
	assert.Equal(t, diag.NewSpan(2, 3), d.Labels[1].Span)
	assert.NotEmpty(t, d.Help)
}

func TestLiteralNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "42", want: "42"},
		{input: "1_000", want: "1000"},
		{input: "0x1F", want: "31"},
		{input: "0b101", want: "5"},
		{input: "0o17", want: "15"},
		{input: "1.25", want: "1.25"},
		{input: ".5", want: "0.5"},
		{input: "2e3", want: "2000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			e, diags := parser.ParseExpression(lex(t, tt.input))
			require.Empty(t, diags)

			lit, ok := e.(*ast.Literal)
			require.True(t, ok)
			assert.Equal(t, tt.want, lit.Number.String())
		})
	}
}

func TestFunctionNameClassification(t *testing.T) {
	t.Parallel()

	e, _ := parser.ParseExpression(lex(t, "Upper(x)"))
	call, ok := e.(*ast.FunctionCall)
	require.True(t, ok)
	assert.False(t, call.Name.IsCustom())
	assert.Equal(t, ast.BuiltinUpper, call.Name.Builtin)

	e, _ = parser.ParseExpression(lex(t, "shout(x)"))
	call, ok = e.(*ast.FunctionCall)
	require.True(t, ok)
	assert.True(t, call.Name.IsCustom())
	assert.Equal(t, "shout", call.Name.Custom)
}

func TestExpressionSpans(t *testing.T) {
	t.Parallel()

	e, diags := parser.ParseExpression(lex(t, "a.b + 10"))
	require.Empty(t, diags)

	bin, ok := e.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, diag.NewSpan(0, 8), bin.Span())
	assert.Equal(t, diag.NewSpan(0, 3), bin.Left.Span())
	assert.Equal(t, diag.NewSpan(6, 8), bin.Right.Span())
}
