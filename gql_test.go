package gql_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rlch/gql"
	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

func TestParse(t *testing.T) {
	t.Parallel()

	res := gql.Parse("MATCH (a:Person)-[e:KNOWS]->(b) WHERE a.age > 30 RETURN a.name AS name, b")
	require.Empty(t, res.Diagnostics)
	require.NotNil(t, res.Program)
	assert.False(t, res.HasErrors())
	assert.Equal(t, token.EOF, res.Tokens[len(res.Tokens)-1].Kind)

	want := &ast.Program{Statements: []ast.Statement{
		&ast.MatchStatement{Pattern: &ast.GraphPattern{
			Paths: []*ast.PathPattern{{
				Expr: &ast.PathTerm{Factors: []*ast.PathFactor{
					{Primary: &ast.NodePattern{Filler: &ast.ElementFiller{
						Variable: "a",
						Labels:   &ast.LabelName{Name: "Person"},
					}}},
					{Primary: &ast.EdgePattern{Direction: ast.DirRight, Filler: &ast.ElementFiller{
						Variable: "e",
						Labels:   &ast.LabelName{Name: "KNOWS"},
					}}},
					{Primary: &ast.NodePattern{Filler: &ast.ElementFiller{Variable: "b"}}},
				}},
			}},
			Where: &ast.Comparison{
				Op:    ast.OpGt,
				Left:  &ast.PropertyRef{Target: variable("a"), Property: "age"},
				Right: integer(30),
			},
		}},
		&ast.ReturnStatement{Items: []*ast.ReturnItem{
			{Value: &ast.PropertyRef{Target: variable("a"), Property: "name"}, Alias: "name"},
			{Value: variable("b")},
		}},
	}}

	if diff := cmp.Diff(want, res.Program, cmpIgnoreAST); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDiagnosticOrder(t *testing.T) {
	t.Parallel()

	// The parser error comes first in the source but lexer diagnostics are
	// always listed before parser diagnostics.
	res := gql.Parse("RETURN a < b < c, 'unterminated")
	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, diag.CodeUnterminated, res.Diagnostics[0].Code)
	assert.Equal(t, diag.CodeChainedComparison, res.Diagnostics[1].Code)
	assert.True(t, res.HasErrors())
	require.NotNil(t, res.Program)
	assert.Len(t, res.Program.Statements, 1)
}

func TestParseNeverReturnsNilProgram(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "   ", "/* open", ")))", "MATCH -["} {
		res := gql.Parse(src)
		assert.NotNil(t, res.Program, "source %q", src)
	}
}

func TestParseTokens(t *testing.T) {
	t.Parallel()

	res := gql.ParseTokens(nil)
	assert.Nil(t, res.Program)
	assert.Empty(t, res.Diagnostics)

	toks := gql.Tokenize("RETURN 1").Tokens
	res = gql.ParseTokens(toks)
	require.NotNil(t, res.Program)
	assert.Equal(t, "(program (return 1))", ast.Format(res.Program))
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	res := gql.Tokenize("MATCH (n) $ RETURN n")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.CodeInvalidCharacter, res.Diagnostics[0].Code)

	var kinds []token.Kind
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []token.Kind{
		token.MATCH, token.LPAREN, token.IDENT, token.RPAREN,
		token.RETURN, token.IDENT, token.EOF,
	}, kinds)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	gql.Parse("RETURN 1", gql.WithLogger(zap.New(core)))

	assert.Equal(t, 1, logs.FilterMessage("parsed program").Len())
}
