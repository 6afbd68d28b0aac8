package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/parser"
	"github.com/rlch/gql/token"
)

func TestCursorNavigation(t *testing.T) {
	t.Parallel()

	c := parser.NewCursor(lex(t, "a + b"))

	assert.Equal(t, token.IDENT, c.Current().Kind)
	assert.Equal(t, token.PLUS, c.Peek(1).Kind)
	assert.Equal(t, token.EOF, c.Peek(10).Kind)
	assert.Equal(t, token.IDENT, c.Peek(-3).Kind)
	assert.True(t, c.AtSeq(token.IDENT, token.PLUS, token.IDENT))
	assert.False(t, c.AtSeq(token.IDENT, token.MINUS))

	tok := c.Advance()
	assert.Equal(t, "a", tok.Text)
	assert.Equal(t, 1, c.Pos())
	assert.Equal(t, 1, c.PrevEnd())

	_, ok := c.Eat(token.MINUS)
	assert.False(t, ok)

	_, ok = c.Eat(token.PLUS)
	assert.True(t, ok)

	c.Advance()
	assert.True(t, c.At(token.EOF))

	c.Advance()
	assert.Equal(t, 3, c.Pos(), "advance at EOF must not move")
	assert.Equal(t, diag.NewSpan(0, 5), c.SpanFrom(0))
}

func TestCursorSyntheticEOF(t *testing.T) {
	t.Parallel()

	c := parser.NewCursor(nil)
	assert.True(t, c.At(token.EOF))
	assert.Equal(t, 0, c.PrevEnd())

	toks := []token.Token{{Kind: token.IDENT, Text: "x", Span: diag.NewSpan(4, 5)}}
	c = parser.NewCursor(toks)
	c.Advance()
	require.True(t, c.At(token.EOF))
	assert.Equal(t, diag.Point(5), c.Current().Span)
	assert.Len(t, toks, 1, "caller slice must not grow")
}

func TestCursorExpect(t *testing.T) {
	t.Parallel()

	c := parser.NewCursor(lex(t, "( x"))

	sp, ok := c.Expect(token.LPAREN, "")
	assert.True(t, ok)
	assert.Equal(t, diag.NewSpan(0, 1), sp)

	sp, ok = c.Expect(token.RPAREN, "")
	assert.False(t, ok)
	assert.Equal(t, diag.Point(2), sp)
	assert.Equal(t, 1, c.Pos(), "a failed expect must not consume")

	require.Len(t, c.Diagnostics(), 1)
	d := c.Diagnostics()[0]
	assert.Equal(t, diag.CodeExpected, d.Code)
	assert.Equal(t, "expected ')', found identifier 'x'", d.Message)
}

func TestCursorTryRestores(t *testing.T) {
	t.Parallel()

	c := parser.NewCursor(lex(t, "a b c"))
	c.Advance()

	v, ok := parser.Try(c, func() (string, bool) {
		c.Advance()
		c.Expected("something")
		c.Advance()

		return "partial", false
	})
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, 1, c.Pos())
	assert.Empty(t, c.Diagnostics())

	v, ok = parser.Try(c, func() (string, bool) {
		return c.Advance().Text, true
	})
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 2, c.Pos())
}

func TestCheckpointRestore(t *testing.T) {
	t.Parallel()

	c := parser.NewCursor(lex(t, "a b"))
	c.Expected("first")

	cp := c.Checkpoint()
	c.Advance()
	c.Expected("second")
	require.Len(t, c.Diagnostics(), 2)

	c.Restore(cp)
	assert.Equal(t, 0, c.Pos())
	require.Len(t, c.Diagnostics(), 1)
	assert.Equal(t, "expected first, found identifier 'a'", c.Diagnostics()[0].Message)
}

func TestGuardReportsStall(t *testing.T) {
	t.Parallel()

	c := parser.NewCursor(lex(t, "a b"))
	g := c.Guard()

	assert.False(t, g.Stalled("loop"))
	c.Advance()
	assert.False(t, g.Stalled("loop"))
	assert.True(t, g.Stalled("loop"))
	assert.Equal(t, []string{diag.CodeNoProgress}, codes(c.Diagnostics()))
}

func TestCursorLogsRestoreAndStall(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)

	c := parser.NewCursor(lex(t, "a b c"))
	c.SetLogger(zap.New(core))
	c.Advance()

	_, ok := parser.Try(c, func() (int, bool) {
		c.Advance()
		c.Expected("something")
		c.Expected("something else")

		return 0, false
	})
	require.False(t, ok)

	restores := logs.FilterMessage("backtracked").All()
	require.Len(t, restores, 1)
	assert.Equal(t, int64(1), restores[0].ContextMap()["pos"])
	assert.Equal(t, int64(2), restores[0].ContextMap()["dropped"])

	g := c.Guard()
	assert.False(t, g.Stalled("loop"))
	assert.True(t, g.Stalled("loop"))

	stalls := logs.FilterMessage("no progress").All()
	require.Len(t, stalls, 1)
	assert.Equal(t, "loop", stalls[0].ContextMap()["in"])
	assert.Equal(t, int64(1), stalls[0].ContextMap()["pos"])
}

func TestSnapshotReinstate(t *testing.T) {
	t.Parallel()

	c := parser.NewCursor(lex(t, "a b c"))
	c.Expected("kept")

	cp := c.Checkpoint()
	c.Advance()
	c.Expected("first attempt")

	snap := c.Snapshot(cp)
	c.Restore(cp)
	c.Advance()
	c.Advance()
	c.Expected("second attempt")

	c.Reinstate(cp, snap)
	assert.Equal(t, 1, c.Pos())
	require.Len(t, c.Diagnostics(), 2)
	assert.Equal(t, "expected first attempt, found identifier 'b'", c.Diagnostics()[1].Message)
}
