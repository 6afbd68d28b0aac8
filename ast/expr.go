package ast

import (
	"github.com/shopspring/decimal"

	"github.com/rlch/gql/diag"
)

// Literal is a constant value.
type Literal struct {
	NodeMeta
	Kind LiteralKind
	// Text is the literal as written, including quotes. Temporal literals join
	// the keyword and the string with a single space.
	Text string
	// Value is the decoded payload: string contents, or normalized number
	// text without digit separators.
	Value string
	// Number is set for LitInteger and LitFloat.
	Number decimal.Decimal
	// Bool is set for LitBool.
	Bool bool
}

// Unary is a prefix operator application.
type Unary struct {
	NodeMeta
	Op      UnaryOp
	Operand Expr
}

// Binary is an arithmetic or concatenation operator application.
type Binary struct {
	NodeMeta
	Op          BinaryOp
	Left, Right Expr
}

// Logical is AND, OR or XOR.
type Logical struct {
	NodeMeta
	Op          LogicalOp
	Left, Right Expr
}

// Comparison is a single, non-chained comparison.
type Comparison struct {
	NodeMeta
	Op          CompareOp
	Left, Right Expr
}

// PropertyRef is target.property.
type PropertyRef struct {
	NodeMeta
	Target   Expr
	Property string
}

// VariableRef names a bound variable.
type VariableRef struct {
	NodeMeta
	Name string
	// Delimited is set when the name was written in backticks.
	Delimited bool
}

// ParameterRef is $name.
type ParameterRef struct {
	NodeMeta
	Name string
}

// FunctionCall invokes a built-in or user function.
type FunctionCall struct {
	NodeMeta
	Name FunctionName
	Args []Expr
}

// Aggregate is a set function call.
type Aggregate struct {
	NodeMeta
	Func       AggregateFunc
	Quantifier SetQuantifier
	// Star is set for COUNT(*); Arg is nil then.
	Star bool
	Arg  Expr
	// Extra is the percentile of PERCENTILE_CONT and PERCENTILE_DISC.
	Extra Expr
}

// Case is a simple (Operand set) or searched CASE expression.
type Case struct {
	NodeMeta
	Operand Expr
	Whens   []*WhenClause
	Else    Expr
}

// WhenClause is WHEN condition THEN result.
type WhenClause struct {
	NodeMeta
	Condition Expr
	Result    Expr
}

// Cast is CAST(value AS type).
type Cast struct {
	NodeMeta
	Value Expr
	Type  *TypeRef
}

// TypeRef is a value type as written in CAST and IS TYPED.
type TypeRef struct {
	NodeMeta
	// Name is the upper-cased type name.
	Name string
	// Args holds element types, as in LIST<INT>.
	Args []*TypeRef
	// Params holds numeric parameters, as in DECIMAL(10, 2).
	Params  []string
	NotNull bool
}

// Predicate is an IS suffix or a dedicated predicate form.
type Predicate struct {
	NodeMeta
	Kind    PredicateKind
	Negated bool
	Subject Expr
	// Args are the operands of ALL_DIFFERENT, SAME, SOURCE OF and DESTINATION OF.
	Args     []Expr
	Labels   LabelExpr
	Type     *TypeRef
	Property string
}

// ListConstructor is [a, b] or LIST [a, b].
type ListConstructor struct {
	NodeMeta
	Elements []Expr
}

// RecordConstructor is {k: v} or RECORD {k: v}.
type RecordConstructor struct {
	NodeMeta
	Fields []*RecordField
}

// RecordField is one key: value pair.
type RecordField struct {
	NodeMeta
	Key   string
	Value Expr
}

// PathConstructor is PATH [n, e, m].
type PathConstructor struct {
	NodeMeta
	Elements []Expr
}

// SubqueryPlaceholder is VALUE { ... }; only the brace-balanced body span is
// recorded.
type SubqueryPlaceholder struct {
	NodeMeta
	Body diag.Span
}

// Exists is EXISTS (expr) or EXISTS { ... }. For the brace form Inner is nil
// and Body records the balanced body span.
type Exists struct {
	NodeMeta
	Inner Expr
	Body  diag.Span
}

// BadExpr stands in for an expression that could not be parsed.
type BadExpr struct {
	NodeMeta
}

func (*Literal) exprNode()             {}
func (*Unary) exprNode()               {}
func (*Binary) exprNode()              {}
func (*Logical) exprNode()             {}
func (*Comparison) exprNode()          {}
func (*PropertyRef) exprNode()         {}
func (*VariableRef) exprNode()         {}
func (*ParameterRef) exprNode()        {}
func (*FunctionCall) exprNode()        {}
func (*Aggregate) exprNode()           {}
func (*Case) exprNode()                {}
func (*Cast) exprNode()                {}
func (*Predicate) exprNode()           {}
func (*ListConstructor) exprNode()     {}
func (*RecordConstructor) exprNode()   {}
func (*PathConstructor) exprNode()     {}
func (*SubqueryPlaceholder) exprNode() {}
func (*Exists) exprNode()              {}
func (*BadExpr) exprNode()             {}

// =============================================================================
// Function names
// =============================================================================

// Builtin identifies a recognized function.
type Builtin int

// Recognized functions. BuiltinNone marks a custom call.
const (
	BuiltinNone Builtin = iota
	BuiltinAbs
	BuiltinCeil
	BuiltinFloor
	BuiltinSqrt
	BuiltinExp
	BuiltinLn
	BuiltinLog
	BuiltinLog10
	BuiltinPower
	BuiltinMod
	BuiltinSin
	BuiltinCos
	BuiltinTan
	BuiltinCharLength
	BuiltinByteLength
	BuiltinUpper
	BuiltinLower
	BuiltinTrim
	BuiltinLeft
	BuiltinRight
	BuiltinSize
	BuiltinCardinality
	BuiltinElementID
	BuiltinPathLength
	BuiltinElements
	BuiltinNullIf
	BuiltinCoalesce
	BuiltinDate
	BuiltinTime
	BuiltinDatetime
	BuiltinDuration
	BuiltinCurrentDate
	BuiltinCurrentTime
	BuiltinCurrentTimestamp
	builtinCount
)

var builtinNames = [...]string{
	BuiltinAbs:              "ABS",
	BuiltinCeil:             "CEIL",
	BuiltinFloor:            "FLOOR",
	BuiltinSqrt:             "SQRT",
	BuiltinExp:              "EXP",
	BuiltinLn:               "LN",
	BuiltinLog:              "LOG",
	BuiltinLog10:            "LOG10",
	BuiltinPower:            "POWER",
	BuiltinMod:              "MOD",
	BuiltinSin:              "SIN",
	BuiltinCos:              "COS",
	BuiltinTan:              "TAN",
	BuiltinCharLength:       "CHAR_LENGTH",
	BuiltinByteLength:       "BYTE_LENGTH",
	BuiltinUpper:            "UPPER",
	BuiltinLower:            "LOWER",
	BuiltinTrim:             "TRIM",
	BuiltinLeft:             "LEFT",
	BuiltinRight:            "RIGHT",
	BuiltinSize:             "SIZE",
	BuiltinCardinality:      "CARDINALITY",
	BuiltinElementID:        "ELEMENT_ID",
	BuiltinPathLength:       "PATH_LENGTH",
	BuiltinElements:         "ELEMENTS",
	BuiltinNullIf:           "NULLIF",
	BuiltinCoalesce:         "COALESCE",
	BuiltinDate:             "DATE",
	BuiltinTime:             "TIME",
	BuiltinDatetime:         "DATETIME",
	BuiltinDuration:         "DURATION",
	BuiltinCurrentDate:      "CURRENT_DATE",
	BuiltinCurrentTime:      "CURRENT_TIME",
	BuiltinCurrentTimestamp: "CURRENT_TIMESTAMP",
}

// Synonyms accepted in addition to the canonical names.
var builtinAliases = map[string]Builtin{
	"CEILING":          BuiltinCeil,
	"CHARACTER_LENGTH": BuiltinCharLength,
	"OCTET_LENGTH":     BuiltinByteLength,
	"LOCAL_DATETIME":   BuiltinDatetime,
	"ZONED_DATETIME":   BuiltinDatetime,
}

var builtins = func() map[string]Builtin {
	m := make(map[string]Builtin, int(builtinCount)+len(builtinAliases))
	for b := BuiltinNone + 1; b < builtinCount; b++ {
		m[builtinNames[b]] = b
	}

	for name, b := range builtinAliases {
		m[name] = b
	}

	return m
}()

// LookupBuiltin maps an upper-cased function name to its builtin.
func LookupBuiltin(upper string) (Builtin, bool) {
	b, ok := builtins[upper]
	return b, ok
}

func (b Builtin) String() string {
	if b > BuiltinNone && b < builtinCount {
		return builtinNames[b]
	}

	return "custom"
}

// FunctionName is a classified call target. Custom is set, as written, only
// when Builtin is BuiltinNone.
type FunctionName struct {
	Builtin Builtin
	Custom  string
}

// IsCustom reports whether the name is not a recognized builtin.
func (n FunctionName) IsCustom() bool { return n.Builtin == BuiltinNone }

func (n FunctionName) String() string {
	if n.IsCustom() {
		return n.Custom
	}

	return n.Builtin.String()
}
