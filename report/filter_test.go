package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/report"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	src := diag.NewSource("q.gql", "RETURN 'x\nRETURN a < b < c")
	lexErr := diag.Errorf("unterminated string").WithCode(diag.CodeUnterminated).WithPrimary(diag.Span{Start: 7, End: 9}, "")
	parseErr := diag.Errorf("chained").WithCode(diag.CodeChainedComparison).WithPrimary(diag.Span{Start: 23, End: 24}, "")
	warn := diag.Warningf("suspicious").WithCode(diag.CodeQuantifier)

	tests := []struct {
		expr string
		want []bool
	}{
		{``, []bool{true, true, true}},
		{`severity == "error"`, []bool{true, true, false}},
		{`subsystem == "parser"`, []bool{false, true, true}},
		{`code in ["L001", "P_QUANTIFIER"]`, []bool{true, false, true}},
		{`line > 1`, []bool{false, true, false}},
		{`file == "q.gql" && column == 8`, []bool{true, false, false}},
		{`message contains "chain"`, []bool{false, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			f, err := report.NewFilter(tt.expr)
			require.NoError(t, err)

			var got []bool

			for _, d := range []diag.Diagnostic{lexErr, parseErr, warn} {
				ok, err := f.Match("q.gql", src, d)
				require.NoError(t, err)

				got = append(got, ok)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterCompileErrors(t *testing.T) {
	t.Parallel()

	_, err := report.NewFilter(`severity ==`)
	assert.Error(t, err)

	_, err = report.NewFilter(`code`)
	assert.Error(t, err, "non-boolean expressions are rejected")

	_, err = report.NewFilter(`unknown == 1`)
	assert.Error(t, err)
}

func TestFilterApply(t *testing.T) {
	t.Parallel()

	file := report.NewFile("q.gql", "RETURN", []diag.Diagnostic{
		diag.Errorf("a").WithCode(diag.CodeExpected),
		diag.Warningf("b"),
	})

	f, err := report.NewFilter(`severity == "warning"`)
	require.NoError(t, err)

	out, err := f.Apply(file)
	require.NoError(t, err)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "b", out.Diagnostics[0].Message)
	assert.Len(t, file.Diagnostics, 2)

	var nilFilter *report.Filter

	ok, err := nilFilter.Match("q.gql", nil, file.Diagnostics[0])
	require.NoError(t, err)
	assert.True(t, ok)
}
