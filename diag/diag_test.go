package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/gql/diag"
)

func TestDiagnosticBuilder(t *testing.T) {
	t.Parallel()

	base := diag.Errorf("expected %s", "')'")
	d := base.
		WithPrimary(diag.NewSpan(4, 5), "here").
		WithSecondary(diag.NewSpan(0, 1), "opened here").
		WithHelp("close the parenthesis").
		WithNote("first").
		WithNote("second").
		WithCode(diag.CodeExpected)

	assert.Empty(t, base.Labels, "builder must not mutate the receiver")
	assert.Equal(t, diag.SeverityError, d.Severity)
	assert.Equal(t, "expected ')'", d.Message)
	assert.Equal(t, []string{"first", "second"}, d.Notes)
	assert.Equal(t, "close the parenthesis", d.Help)
	assert.Equal(t, "P001", d.Code)

	span, ok := d.PrimarySpan()
	require.True(t, ok)
	assert.Equal(t, diag.NewSpan(4, 5), span)
	assert.Equal(t, "error[P001]: expected ')' at 4..5", d.Error())
}

func TestDiagnosticBuilderDoesNotAlias(t *testing.T) {
	t.Parallel()

	shared := diag.Warningf("w").WithNote("a")
	left := shared.WithNote("left")
	right := shared.WithNote("right")

	assert.Equal(t, []string{"a", "left"}, left.Notes)
	assert.Equal(t, []string{"a", "right"}, right.Notes)
}

func TestPrimarySpanFallsBackToSecondary(t *testing.T) {
	t.Parallel()

	d := diag.Notef("n").WithSecondary(diag.NewSpan(2, 3), "")
	span, ok := d.PrimarySpan()
	require.True(t, ok)
	assert.Equal(t, diag.NewSpan(2, 3), span)

	_, ok = diag.Notef("bare").PrimarySpan()
	assert.False(t, ok)
}

func TestSeverityText(t *testing.T) {
	t.Parallel()

	for _, sev := range []diag.Severity{diag.SeverityError, diag.SeverityWarning, diag.SeverityNote} {
		text, err := sev.MarshalText()
		require.NoError(t, err)

		var back diag.Severity
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, sev, back)
	}

	var s diag.Severity
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}

func TestCountAndSorted(t *testing.T) {
	t.Parallel()

	diags := []diag.Diagnostic{
		diag.Errorf("b").WithPrimary(diag.Point(9), ""),
		diag.Warningf("a").WithPrimary(diag.Point(1), ""),
		diag.Errorf("c").WithPrimary(diag.Point(9), ""),
	}

	assert.True(t, diag.HasErrors(diags))
	assert.Equal(t, 2, diag.Count(diags, diag.SeverityError))

	sorted := diag.Sorted(diags)
	assert.Equal(t, "a", sorted[0].Message)
	assert.Equal(t, "b", sorted[1].Message)
	assert.Equal(t, "c", sorted[2].Message)
	assert.Equal(t, "b", diags[0].Message, "input must stay untouched")
}

func TestSpan(t *testing.T) {
	t.Parallel()

	s := diag.NewSpan(3, 7)
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(7))
	assert.True(t, diag.Point(5).IsEmpty())
	assert.Equal(t, diag.NewSpan(1, 7), s.To(diag.NewSpan(1, 2)))
	assert.False(t, diag.NewSpan(5, 2).Valid())
	assert.Equal(t, 0, diag.NewSpan(5, 2).Len())
}

func TestSubsystem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lexer", diag.Subsystem(diag.CodeUnterminated))
	assert.Equal(t, "parser", diag.Subsystem(diag.CodeQuantifier))
	assert.Equal(t, "", diag.Subsystem(""))
}
