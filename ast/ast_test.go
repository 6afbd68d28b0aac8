package ast_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
)

func variable(name string) *ast.VariableRef {
	return &ast.VariableRef{Name: name}
}

func integer(v int64) *ast.Literal {
	d := decimal.NewFromInt(v)
	return &ast.Literal{Kind: ast.LitInteger, Text: d.String(), Value: d.String(), Number: d}
}

// MATCH (a:Person)-[e]->{1,3}(b) WHERE a.age > 21 RETURN a, b AS friend
func sampleProgram() *ast.Program {
	return &ast.Program{
		Statements: []ast.Statement{
			&ast.MatchStatement{
				Pattern: &ast.GraphPattern{
					Paths: []*ast.PathPattern{{
						Expr: &ast.PathTerm{Factors: []*ast.PathFactor{
							{Primary: &ast.NodePattern{Filler: &ast.ElementFiller{
								Variable: "a",
								Labels:   &ast.LabelName{Name: "Person"},
							}}},
							{
								Primary:    &ast.EdgePattern{Direction: ast.DirRight, Filler: &ast.ElementFiller{Variable: "e"}},
								Quantifier: &ast.Quantifier{Kind: ast.QuantRange, Min: 1, Max: 3},
							},
							{Primary: &ast.NodePattern{Filler: &ast.ElementFiller{Variable: "b"}}},
						}},
					}},
					Where: &ast.Comparison{
						Op:    ast.OpGt,
						Left:  &ast.PropertyRef{Target: variable("a"), Property: "age"},
						Right: integer(21),
					},
				},
			},
			&ast.ReturnStatement{Items: []*ast.ReturnItem{
				{Value: variable("a")},
				{Value: variable("b"), Alias: "friend"},
			}},
		},
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	want := "(program (match (graph (pattern (seq (node a :Person) (quant (edge right e) {1,3}) (node b)))" +
		" (where (> (. a age) 21)))) (return a (as b friend)))"
	assert.Equal(t, want, ast.Format(sampleProgram()))
}

func TestFormatExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			name: "concat of sum",
			node: &ast.Binary{Op: ast.OpConcat, Left: integer(1), Right: &ast.Binary{Op: ast.OpAdd, Left: integer(2), Right: integer(3)}},
			want: "(|| 1 (+ 2 3))",
		},
		{
			name: "negated predicate",
			node: &ast.Predicate{Kind: ast.PredNull, Negated: true, Subject: variable("x")},
			want: "(IS NOT NULL x)",
		},
		{
			name: "typed predicate",
			node: &ast.Predicate{Kind: ast.PredTyped, Subject: variable("x"), Type: &ast.TypeRef{
				Name: "LIST", Args: []*ast.TypeRef{{Name: "INT"}}, NotNull: true,
			}},
			want: "(IS TYPED x LIST<INT> NOT NULL)",
		},
		{
			name: "count star",
			node: &ast.Aggregate{Func: ast.AggCount, Star: true},
			want: "(COUNT *)",
		},
		{
			name: "custom call",
			node: &ast.FunctionCall{Name: ast.FunctionName{Custom: "myFn"}, Args: []ast.Expr{variable("x")}},
			want: "(call myFn x)",
		},
		{
			name: "builtin call",
			node: &ast.FunctionCall{Name: ast.FunctionName{Builtin: ast.BuiltinAbs}, Args: []ast.Expr{integer(-1)}},
			want: "(call ABS -1)",
		},
		{
			name: "temporal literal",
			node: &ast.Literal{Kind: ast.LitDate, Value: "2024-01-01"},
			want: `(date "2024-01-01")`,
		},
		{
			name: "exists placeholder",
			node: &ast.Exists{Body: diag.NewSpan(7, 20)},
			want: "(exists {7..20})",
		},
		{
			name: "simplified",
			node: &ast.SimplifiedPath{Direction: ast.DirLeft, Contents: &ast.SimplifiedUnion{
				Left:  &ast.SimplifiedLabel{Name: "A"},
				Right: &ast.SimplifiedNegation{Operand: &ast.SimplifiedLabel{Name: "B"}},
			}},
			want: "(simplified left (| A (! B)))",
		},
		{
			name: "unbounded quantifier",
			node: &ast.Quantifier{Kind: ast.QuantRange, Min: 2, Max: ast.Unbounded},
			want: "{2,}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ast.Format(tt.node))
		})
	}
}

func TestChildrenSkipsAbsent(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ast.Children(&ast.NodePattern{}))
	assert.Empty(t, ast.Children(&ast.PathFactor{}))
	assert.Len(t, ast.Children(&ast.Case{Operand: variable("x")}), 1)
	assert.Empty(t, ast.Children(&ast.LabelWildcard{}))
}

func TestInspect(t *testing.T) {
	t.Parallel()

	var names []string

	ast.Inspect(sampleProgram(), func(n ast.Node) bool {
		if v, ok := n.(*ast.VariableRef); ok {
			names = append(names, v.Name)
		}

		// Skip the WHERE clause subtree.
		_, isCmp := n.(*ast.Comparison)

		return !isCmp
	})

	assert.Equal(t, []string{"a", "b"}, names)
}

type variableCounter struct {
	ast.Base[string]
	seen int
}

func (c *variableCounter) VisitVariableRef(*ast.VariableRef) (string, bool) {
	c.seen++
	return "", false
}

type labelFinder struct {
	ast.Base[string]
}

func (labelFinder) VisitLabelName(n *ast.LabelName) (string, bool) {
	return n.Name, true
}

func TestVisitor(t *testing.T) {
	t.Parallel()

	c := &variableCounter{}
	c.Self = c

	_, stopped := ast.Walk[string](c, sampleProgram())
	assert.False(t, stopped)
	assert.Equal(t, 3, c.seen)

	f := &labelFinder{}
	f.Self = f

	got, stopped := ast.Walk[string](f, sampleProgram())
	require.True(t, stopped)
	assert.Equal(t, "Person", got)
}

func TestVisitorMutates(t *testing.T) {
	t.Parallel()

	prog := sampleProgram()
	r := &renamer{from: "a", to: "x"}
	r.Self = r
	ast.Walk[struct{}](r, prog)

	assert.Contains(t, ast.Format(prog), "(. x age)")
}

type renamer struct {
	ast.Base[struct{}]
	from, to string
}

func (r *renamer) VisitVariableRef(n *ast.VariableRef) (struct{}, bool) {
	if n.Name == r.from {
		n.Name = r.to
	}

	return struct{}{}, false
}

func TestLookupBuiltin(t *testing.T) {
	t.Parallel()

	b, ok := ast.LookupBuiltin("CEILING")
	require.True(t, ok)
	assert.Equal(t, ast.BuiltinCeil, b)

	_, ok = ast.LookupBuiltin("FROBNICATE")
	assert.False(t, ok)

	assert.Equal(t, "custom", ast.BuiltinNone.String())
	assert.Equal(t, "COALESCE", ast.FunctionName{Builtin: ast.BuiltinCoalesce}.String())
}
