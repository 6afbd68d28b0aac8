package parser

import (
	"go.uber.org/zap"

	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// Cursor is a navigable view over a token slice with diagnostic collection
// and checkpoint/restore backtracking. The slice is never mutated.
type Cursor struct {
	tokens []token.Token
	pos    int
	diags  []diag.Diagnostic
	log    *zap.Logger
}

// NewCursor returns a cursor over tokens. A synthetic EOF is appended when
// the slice does not end with one.
func NewCursor(tokens []token.Token) *Cursor {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.EOF {
		end := 0
		if n > 0 {
			end = tokens[n-1].Span.End
		}

		tokens = append(tokens[:n:n], token.Token{Kind: token.EOF, Span: diag.Point(end)})
	}

	return &Cursor{tokens: tokens, log: zap.NewNop()}
}

// SetLogger sets the logger that traces restores and stalls at debug level.
func (c *Cursor) SetLogger(logger *zap.Logger) {
	if logger != nil {
		c.log = logger
	}
}

// Current returns the token at the cursor. Past the end it returns EOF.
func (c *Cursor) Current() token.Token {
	return c.Peek(0)
}

// Peek returns the token n positions ahead, or EOF.
func (c *Cursor) Peek(n int) token.Token {
	i := c.pos + n
	if i < 0 {
		i = 0
	}

	if i >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}

	return c.tokens[i]
}

// Advance consumes and returns the current token. At EOF it does not move.
func (c *Cursor) Advance() token.Token {
	tok := c.Current()
	if tok.Kind != token.EOF {
		c.pos++
	}

	return tok
}

// At reports whether the current token has one of kinds.
func (c *Cursor) At(kinds ...token.Kind) bool {
	return c.Current().Is(kinds...)
}

// AtSeq reports whether the upcoming tokens have exactly the given kinds.
func (c *Cursor) AtSeq(kinds ...token.Kind) bool {
	for i, k := range kinds {
		if c.Peek(i).Kind != k {
			return false
		}
	}

	return true
}

// Eat consumes the current token if it has kind.
func (c *Cursor) Eat(kind token.Kind) (token.Token, bool) {
	if !c.At(kind) {
		return token.Token{}, false
	}

	return c.Advance(), true
}

// Expect consumes a token of kind and returns its span. Otherwise it reports
// "expected what, found ..." at the current token and does not move. An
// empty what describes the kind itself.
func (c *Cursor) Expect(kind token.Kind, what string) (diag.Span, bool) {
	if tok, ok := c.Eat(kind); ok {
		return tok.Span, true
	}

	if what == "" {
		what = describeKind(kind)
	}

	c.Expected(what)

	return diag.Point(c.Current().Span.Start), false
}

// Expected reports a P001 diagnostic at the current token.
func (c *Cursor) Expected(what string) {
	cur := c.Current()
	c.Report(diag.Errorf("expected %s, found %s", what, cur.Describe()).
		WithPrimary(cur.Span, "unexpected "+cur.Describe()).
		WithCode(diag.CodeExpected))
}

func describeKind(k token.Kind) string {
	switch {
	case k.IsKeyword():
		return "keyword " + k.String()
	case k.IsOperator():
		return "'" + k.String() + "'"
	default:
		return k.String()
	}
}

// Pos returns the current token index.
func (c *Cursor) Pos() int { return c.pos }

// PrevEnd returns the end offset of the last consumed token, or the start of
// the current token when nothing has been consumed.
func (c *Cursor) PrevEnd() int {
	if c.pos == 0 {
		return c.tokens[0].Span.Start
	}

	return c.tokens[c.pos-1].Span.End
}

// SpanFrom returns the span from start to the end of the last consumed token.
func (c *Cursor) SpanFrom(start int) diag.Span {
	end := c.PrevEnd()
	if end < start {
		end = start
	}

	return diag.NewSpan(start, end)
}

// Report records a diagnostic.
func (c *Cursor) Report(d diag.Diagnostic) {
	c.diags = append(c.diags, d)
}

// Diagnostics returns the diagnostics recorded so far.
func (c *Cursor) Diagnostics() []diag.Diagnostic {
	return c.diags
}

// Checkpoint is a saved cursor position and diagnostic count.
type Checkpoint struct {
	Pos   int
	Diags int
}

// Checkpoint saves the current state.
func (c *Cursor) Checkpoint() Checkpoint {
	return Checkpoint{Pos: c.pos, Diags: len(c.diags)}
}

// Restore rolls back to cp, dropping diagnostics reported since.
func (c *Cursor) Restore(cp Checkpoint) {
	c.log.Debug("backtracked",
		zap.Int("pos", cp.Pos),
		zap.Int("from", c.pos),
		zap.Int("dropped", len(c.diags)-cp.Diags),
	)

	c.pos = cp.Pos
	c.diags = c.diags[:cp.Diags]
}

// Snapshot is the state a speculative parse reached after a checkpoint.
type Snapshot struct {
	pos   int
	diags []diag.Diagnostic
}

// Snapshot captures the current position and the diagnostics reported since
// cp, so the state survives a later Restore.
func (c *Cursor) Snapshot(cp Checkpoint) Snapshot {
	return Snapshot{
		pos:   c.pos,
		diags: append([]diag.Diagnostic(nil), c.diags[cp.Diags:]...),
	}
}

// Reinstate discards everything reported after cp and replays s.
func (c *Cursor) Reinstate(cp Checkpoint, s Snapshot) {
	c.log.Debug("reinstated speculative parse",
		zap.Int("pos", s.pos),
		zap.Int("diagnostics", len(s.diags)),
	)

	c.diags = append(c.diags[:cp.Diags], s.diags...)
	c.pos = s.pos
}

// Try runs f speculatively. When f reports failure the cursor position and
// diagnostics are restored as if f never ran.
func Try[T any](c *Cursor, f func() (T, bool)) (T, bool) {
	cp := c.Checkpoint()

	v, ok := f()
	if !ok {
		c.Restore(cp)

		var zero T

		return zero, false
	}

	return v, true
}

// Guard detects loops that stop consuming tokens.
type Guard struct {
	c    *Cursor
	last int
}

// Guard returns a progress guard for one loop.
func (c *Cursor) Guard() *Guard {
	return &Guard{c: c, last: -1}
}

// Stalled reports whether the cursor has not moved since the previous call.
// A stall is reported as a P004 diagnostic; the loop must then exit.
func (g *Guard) Stalled(what string) bool {
	pos := g.c.pos
	if pos == g.last {
		cur := g.c.Current()
		g.c.log.Debug("no progress", zap.String("in", what), zap.Int("pos", pos))
		g.c.Report(diag.Errorf("parser made no progress in %s", what).
			WithPrimary(cur.Span, "stuck here").
			WithCode(diag.CodeNoProgress))

		return true
	}

	g.last = pos

	return false
}
