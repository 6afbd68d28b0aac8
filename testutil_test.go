package gql_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"

	"github.com/rlch/gql/ast"
	"github.com/rlch/gql/diag"
)

// cmpIgnoreAST is a cmp option that ignores source positions so tests can
// compare tree shapes without spelling out spans. Literal numbers are
// compared by value.
var cmpIgnoreAST = cmp.Options{
	cmpopts.IgnoreTypes(diag.Span{}),
	cmpopts.IgnoreFields(ast.Literal{}, "Text"),
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
}

func variable(name string) *ast.VariableRef {
	return &ast.VariableRef{Name: name}
}

func integer(v int64) *ast.Literal {
	return &ast.Literal{Kind: ast.LitInteger, Number: decimal.NewFromInt(v), Value: decimal.NewFromInt(v).String()}
}
