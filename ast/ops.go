package ast

// LiteralKind classifies a Literal.
type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitBool
	LitUnknown
	LitInteger
	LitFloat
	LitString
	LitDate
	LitTime
	LitDatetime
	LitTimestamp
	LitDuration
)

var literalKindNames = [...]string{
	LitNull:      "null",
	LitBool:      "bool",
	LitUnknown:   "unknown",
	LitInteger:   "integer",
	LitFloat:     "float",
	LitString:    "string",
	LitDate:      "date",
	LitTime:      "time",
	LitDatetime:  "datetime",
	LitTimestamp: "timestamp",
	LitDuration:  "duration",
}

func (k LiteralKind) String() string { return literalKindNames[k] }

// IsTemporal reports whether k is one of the keyword-prefixed temporal forms.
func (k LiteralKind) IsTemporal() bool { return k >= LitDate && k <= LitDuration }

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
)

func (o UnaryOp) String() string {
	switch o {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	default:
		return "NOT"
	}
}

// BinaryOp is an arithmetic or concatenation operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpConcat
)

func (o BinaryOp) String() string {
	return [...]string{"+", "-", "*", "/", "%", "||"}[o]
}

// LogicalOp is AND, OR or XOR.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
	OpXor
)

func (o LogicalOp) String() string {
	return [...]string{"AND", "OR", "XOR"}[o]
}

// CompareOp is a comparison operator.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
)

func (o CompareOp) String() string {
	return [...]string{"=", "<>", "<", ">", "<=", ">="}[o]
}

// PredicateKind selects the predicate form.
type PredicateKind int

const (
	PredNull PredicateKind = iota
	PredTrue
	PredFalse
	PredUnknown
	PredDirected
	PredLabeled
	PredSourceOf
	PredDestinationOf
	PredNormalized
	PredTyped
	PredAllDifferent
	PredSame
	PredPropertyExists
)

var predicateNames = [...]string{
	PredNull:           "IS NULL",
	PredTrue:           "IS TRUE",
	PredFalse:          "IS FALSE",
	PredUnknown:        "IS UNKNOWN",
	PredDirected:       "IS DIRECTED",
	PredLabeled:        "IS LABELED",
	PredSourceOf:       "IS SOURCE OF",
	PredDestinationOf:  "IS DESTINATION OF",
	PredNormalized:     "IS NORMALIZED",
	PredTyped:          "IS TYPED",
	PredAllDifferent:   "ALL_DIFFERENT",
	PredSame:           "SAME",
	PredPropertyExists: "PROPERTY_EXISTS",
}

func (k PredicateKind) String() string { return predicateNames[k] }

// AggregateFunc is a set function.
type AggregateFunc int

const (
	AggCount AggregateFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
	AggCollectList
	AggStddevSamp
	AggStddevPop
	AggPercentileCont
	AggPercentileDisc
)

var aggregateNames = [...]string{
	AggCount:          "COUNT",
	AggSum:            "SUM",
	AggAvg:            "AVG",
	AggMin:            "MIN",
	AggMax:            "MAX",
	AggCollectList:    "COLLECT_LIST",
	AggStddevSamp:     "STDDEV_SAMP",
	AggStddevPop:      "STDDEV_POP",
	AggPercentileCont: "PERCENTILE_CONT",
	AggPercentileDisc: "PERCENTILE_DISC",
}

func (f AggregateFunc) String() string { return aggregateNames[f] }

// Binary reports whether f takes a second argument.
func (f AggregateFunc) Binary() bool {
	return f == AggPercentileCont || f == AggPercentileDisc
}

// SetQuantifier is the optional DISTINCT or ALL inside an aggregate.
type SetQuantifier int

const (
	SetNone SetQuantifier = iota
	SetDistinct
	SetAll
)

func (q SetQuantifier) String() string {
	return [...]string{"", "DISTINCT", "ALL"}[q]
}

// =============================================================================
// Pattern enums
// =============================================================================

// Direction is the orientation an edge pattern matches.
type Direction int

const (
	DirLeft Direction = iota
	DirUndirected
	DirRight
	DirLeftOrUndirected
	DirUndirectedOrRight
	DirLeftOrRight
	DirAny
)

var directionNames = [...]string{
	DirLeft:              "left",
	DirUndirected:        "undirected",
	DirRight:             "right",
	DirLeftOrUndirected:  "left-or-undirected",
	DirUndirectedOrRight: "undirected-or-right",
	DirLeftOrRight:       "left-or-right",
	DirAny:               "any",
}

func (d Direction) String() string { return directionNames[d] }

// MatchMode controls element repetition across a graph pattern.
type MatchMode int

const (
	MatchModeNone MatchMode = iota
	MatchRepeatableElements
	MatchDifferentEdges
)

func (m MatchMode) String() string {
	return [...]string{"", "REPEATABLE ELEMENTS", "DIFFERENT EDGES"}[m]
}

// PathMode restricts repetition within a path.
type PathMode int

const (
	PathModeNone PathMode = iota
	PathWalk
	PathTrail
	PathSimple
	PathAcyclic
)

func (m PathMode) String() string {
	return [...]string{"", "WALK", "TRAIL", "SIMPLE", "ACYCLIC"}[m]
}

// SearchKind is the path search prefix.
type SearchKind int

const (
	SearchNone SearchKind = iota
	SearchAll
	SearchAny
	SearchAllShortest
	SearchAnyShortest
	SearchShortest
)

func (k SearchKind) String() string {
	return [...]string{"", "ALL", "ANY", "ALL SHORTEST", "ANY SHORTEST", "SHORTEST"}[k]
}

// PrefixUnit is the trailing PATH(S) or GROUP(S) of a search prefix.
type PrefixUnit int

const (
	UnitNone PrefixUnit = iota
	UnitPaths
	UnitGroups
)

func (u PrefixUnit) String() string {
	return [...]string{"", "PATHS", "GROUPS"}[u]
}

// QuantifierKind is the syntactic form of a quantifier.
type QuantifierKind int

const (
	QuantStar     QuantifierKind = iota // *
	QuantPlus                           // +
	QuantOptional                       // ?
	QuantFixed                          // {n}
	QuantRange                          // {m,n}, {m,}, {,n}
)

// Unbounded is the Max of a quantifier without an upper bound.
const Unbounded = -1
