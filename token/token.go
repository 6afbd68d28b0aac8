// Package token defines the lexical units produced by the lexer.
package token

import (
	"strconv"

	"github.com/rlch/gql/diag"
)

// Kind classifies a token.
type Kind int

// Token kinds. Keywords live between keywordBeg and keywordEnd; reserved
// keywords come first so IsReserved is a range check.
const (
	EOF Kind = iota

	literalBeg
	IDENT           // n, Person
	DELIMITED_IDENT // `weird name`
	STRING          // 'text' or "text"
	INTEGER         // 42, 0x2A, 1_000
	FLOAT           // 1.5, 2e10
	PARAMETER       // $name
	literalEnd

	operatorBeg
	LPAREN       // (
	RPAREN       // )
	LBRACKET     // [
	RBRACKET     // ]
	LBRACE       // {
	RBRACE       // }
	COMMA        // ,
	SEMICOLON    // ;
	COLON        // :
	DOUBLE_COLON // ::
	DOT          // .
	EQ           // =
	NEQ          // <> or !=
	LT           // <
	GT           // >
	LTE          // <=
	GTE          // >=
	PLUS         // +
	MINUS        // -
	STAR         // *
	SLASH        // /
	PERCENT      // %
	CARET        // ^
	CONCAT       // ||
	PIPE         // |
	MULTISET_ALT // |+|
	AMP          // &
	BANG         // !
	QUESTION     // ?
	TILDE        // ~
	RIGHT_ARROW  // ->
	LEFT_ARROW   // <-
	BOTH_ARROW   // <->
	LEFT_TILDE   // <~
	RIGHT_TILDE  // ~>
	operatorEnd

	keywordBeg
	reservedBeg
	ALL
	AND
	ANY
	AS
	CASE
	CAST
	DISTINCT
	ELSE
	END
	EXISTS
	FALSE
	FILTER
	IS
	KEEP
	LET
	LIST
	MATCH
	NOT
	NULL
	OF
	OPTIONAL
	OR
	PATH
	RECORD
	RETURN
	THEN
	TRUE
	UNKNOWN
	VALUE
	WHEN
	WHERE
	XOR
	YIELD
	ALL_DIFFERENT
	SAME
	PROPERTY_EXISTS
	NULLIF
	COALESCE
	reservedEnd

	// Non-reserved words may also be used as identifiers.
	ACYCLIC
	BINDINGS
	DESTINATION
	DIFFERENT
	DIRECTED
	EDGE
	EDGES
	ELEMENT
	ELEMENTS
	GROUP
	GROUPS
	LABELED
	NORMALIZED
	PATHS
	REPEATABLE
	SHORTEST
	SIMPLE
	SOURCE
	TRAIL
	TYPED
	WALK
	keywordEnd
)

var kindNames = [...]string{
	EOF: "end of input",

	IDENT:           "identifier",
	DELIMITED_IDENT: "delimited identifier",
	STRING:          "string literal",
	INTEGER:         "integer literal",
	FLOAT:           "float literal",
	PARAMETER:       "parameter",

	LPAREN:       "(",
	RPAREN:       ")",
	LBRACKET:     "[",
	RBRACKET:     "]",
	LBRACE:       "{",
	RBRACE:       "}",
	COMMA:        ",",
	SEMICOLON:    ";",
	COLON:        ":",
	DOUBLE_COLON: "::",
	DOT:          ".",
	EQ:           "=",
	NEQ:          "<>",
	LT:           "<",
	GT:           ">",
	LTE:          "<=",
	GTE:          ">=",
	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	PERCENT:      "%",
	CARET:        "^",
	CONCAT:       "||",
	PIPE:         "|",
	MULTISET_ALT: "|+|",
	AMP:          "&",
	BANG:         "!",
	QUESTION:     "?",
	TILDE:        "~",
	RIGHT_ARROW:  "->",
	LEFT_ARROW:   "<-",
	BOTH_ARROW:   "<->",
	LEFT_TILDE:   "<~",
	RIGHT_TILDE:  "~>",

	ALL:             "ALL",
	AND:             "AND",
	ANY:             "ANY",
	AS:              "AS",
	CASE:            "CASE",
	CAST:            "CAST",
	DISTINCT:        "DISTINCT",
	ELSE:            "ELSE",
	END:             "END",
	EXISTS:          "EXISTS",
	FALSE:           "FALSE",
	FILTER:          "FILTER",
	IS:              "IS",
	KEEP:            "KEEP",
	LET:             "LET",
	LIST:            "LIST",
	MATCH:           "MATCH",
	NOT:             "NOT",
	NULL:            "NULL",
	OF:              "OF",
	OPTIONAL:        "OPTIONAL",
	OR:              "OR",
	PATH:            "PATH",
	RECORD:          "RECORD",
	RETURN:          "RETURN",
	THEN:            "THEN",
	TRUE:            "TRUE",
	UNKNOWN:         "UNKNOWN",
	VALUE:           "VALUE",
	WHEN:            "WHEN",
	WHERE:           "WHERE",
	XOR:             "XOR",
	YIELD:           "YIELD",
	ALL_DIFFERENT:   "ALL_DIFFERENT",
	SAME:            "SAME",
	PROPERTY_EXISTS: "PROPERTY_EXISTS",
	NULLIF:          "NULLIF",
	COALESCE:        "COALESCE",

	ACYCLIC:     "ACYCLIC",
	BINDINGS:    "BINDINGS",
	DESTINATION: "DESTINATION",
	DIFFERENT:   "DIFFERENT",
	DIRECTED:    "DIRECTED",
	EDGE:        "EDGE",
	EDGES:       "EDGES",
	ELEMENT:     "ELEMENT",
	ELEMENTS:    "ELEMENTS",
	GROUP:       "GROUP",
	GROUPS:      "GROUPS",
	LABELED:     "LABELED",
	NORMALIZED:  "NORMALIZED",
	PATHS:       "PATHS",
	REPEATABLE:  "REPEATABLE",
	SHORTEST:    "SHORTEST",
	SIMPLE:      "SIMPLE",
	SOURCE:      "SOURCE",
	TRAIL:       "TRAIL",
	TYPED:       "TYPED",
	WALK:        "WALK",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsLiteral reports whether k carries a decoded payload.
func (k Kind) IsLiteral() bool { return k > literalBeg && k < literalEnd }

// IsOperator reports whether k is punctuation or an operator.
func (k Kind) IsOperator() bool { return k > operatorBeg && k < operatorEnd }

// IsKeyword reports whether k is a reserved or non-reserved keyword.
func (k Kind) IsKeyword() bool {
	return k > keywordBeg && k < keywordEnd && k != reservedBeg && k != reservedEnd
}

// IsReserved reports whether k is a reserved keyword that can never name a
// variable.
func (k Kind) IsReserved() bool { return k > reservedBeg && k < reservedEnd }

// Token is an immutable lexical unit.
type Token struct {
	Kind Kind
	Span diag.Span
	// Text is the raw source slice.
	Text string
	// Value is the decoded payload: string contents with escapes resolved,
	// identifier names, parameter names without '$', and number text without
	// digit separators.
	Value string
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}

	return false
}

// Describe renders the token for "expected X, found Y" messages.
func (t Token) Describe() string {
	switch {
	case t.Kind == EOF:
		return "end of input"
	case t.Kind == STRING || t.Kind == DELIMITED_IDENT:
		return t.Kind.String() + " " + t.Text
	case t.Kind.IsLiteral():
		return t.Kind.String() + " '" + t.Text + "'"
	case t.Kind.IsKeyword():
		return "keyword " + t.Kind.String()
	default:
		return "'" + t.Text + "'"
	}
}

func (t Token) String() string {
	return t.Kind.String() + "@" + t.Span.String()
}
