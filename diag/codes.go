package diag

import "strings"

// Lexer codes.
const (
	CodeUnterminated     = "L001" // unclosed comment, string or delimited identifier
	CodeMalformedNumber  = "L002"
	CodeInvalidEscape    = "L003"
	CodeInvalidCharacter = "L004"
)

// Parser codes.
const (
	CodeExpected          = "P001"
	CodeTrailingInput     = "P002"
	CodeChainedComparison = "P003"
	CodeNoProgress        = "P004"
	CodeInvalidExpression = "P005"
	CodePattern           = "P_PATTERN"
	CodeQuantifier        = "P_QUANTIFIER"
	CodeElement           = "P_ELEMENT"
	CodeEdge              = "P_EDGE"
	CodeSimplified        = "P_SIMPLIFIED"
	CodeType              = "P_TYPE"
	CodeStatement         = "P_STATEMENT"
	CodeMutation          = "P_MUT"        // reserved for data-modification statements
	CodeGraphType         = "P_GRAPH_TYPE" // reserved for graph type declarations
)

// Subsystem returns the subsystem a code belongs to: "lexer", "parser" or "".
func Subsystem(code string) string {
	switch {
	case strings.HasPrefix(code, "L"):
		return "lexer"
	case strings.HasPrefix(code, "P"):
		return "parser"
	default:
		return ""
	}
}
