// Package lexer turns GQL source text into tokens. Lexing never stops early:
// every problem becomes a diagnostic and scanning resumes, so the returned
// token slice always ends with exactly one EOF token.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// Tokenize scans src into tokens and lexical diagnostics.
func Tokenize(src string) ([]token.Token, []diag.Diagnostic) {
	l := newLexerState(src)

	for l.next() {
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Span: diag.Point(len(src))})

	return l.tokens, l.diags
}

// Multi-character operators, longest first.
var multiOps = []struct {
	text string
	kind token.Kind
}{
	{"|+|", token.MULTISET_ALT},
	{"<->", token.BOTH_ARROW},
	{"||", token.CONCAT},
	{"->", token.RIGHT_ARROW},
	{"<-", token.LEFT_ARROW},
	{"<~", token.LEFT_TILDE},
	{"~>", token.RIGHT_TILDE},
	{"<>", token.NEQ},
	{"!=", token.NEQ},
	{"<=", token.LTE},
	{">=", token.GTE},
	{"::", token.DOUBLE_COLON},
}

var singleOps = map[rune]token.Kind{
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	'{': token.LBRACE,
	'}': token.RBRACE,
	',': token.COMMA,
	';': token.SEMICOLON,
	':': token.COLON,
	'.': token.DOT,
	'=': token.EQ,
	'<': token.LT,
	'>': token.GT,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'^': token.CARET,
	'|': token.PIPE,
	'&': token.AMP,
	'!': token.BANG,
	'?': token.QUESTION,
	'~': token.TILDE,
}

// lexerState holds the state for one Tokenize call.
type lexerState struct {
	input  string
	offset int
	tokens []token.Token
	diags  []diag.Diagnostic

	// upper is per-lexer: a cases.Caser must not be shared across goroutines.
	upper cases.Caser
}

func newLexerState(input string) *lexerState {
	return &lexerState{
		input: input,
		upper: cases.Upper(language.Und),
	}
}

// next scans one token or trivia run. It returns false at end of input.
func (l *lexerState) next() bool {
	if l.eof() {
		return false
	}

	start := l.offset
	r := l.peek()

	switch {
	case unicode.IsSpace(r):
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}
	case l.match("//") || l.match("--"):
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}
	case l.match("/*"):
		l.skipBlockComment()
	case r == '\'' || r == '"':
		l.scanQuoted(r, token.STRING)
	case r == '`':
		l.scanQuoted(r, token.DELIMITED_IDENT)
	case isDigit(r) || (r == '.' && isDigit(l.peekAt(1))):
		l.scanNumber()
	case isIdentStart(r):
		l.scanIdent()
	case r == '$':
		l.scanParameter()
	default:
		if !l.scanOperator() {
			l.advance()
			l.report(diag.Errorf("invalid character %q", r).
				WithPrimary(diag.NewSpan(start, l.offset), "not valid in a query").
				WithCode(diag.CodeInvalidCharacter))
		}
	}

	return true
}

func (l *lexerState) eof() bool {
	return l.offset >= len(l.input)
}

func (l *lexerState) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])

	return r
}

// peekAt looks n bytes ahead. Callers only step over ASCII.
func (l *lexerState) peekAt(n int) rune {
	off := l.offset + n
	if off >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[off:])

	return r
}

func (l *lexerState) advance() rune {
	if l.eof() {
		return 0
	}

	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size

	return r
}

func (l *lexerState) match(s string) bool {
	return strings.HasPrefix(l.input[l.offset:], s)
}

func (l *lexerState) emit(kind token.Kind, start int, value string) {
	l.tokens = append(l.tokens, token.Token{
		Kind:  kind,
		Span:  diag.NewSpan(start, l.offset),
		Text:  l.input[start:l.offset],
		Value: value,
	})
}

func (l *lexerState) report(d diag.Diagnostic) {
	l.diags = append(l.diags, d)
}

// skipBlockComment discards a possibly nested block comment.
func (l *lexerState) skipBlockComment() {
	start := l.offset
	depth := 0

	for !l.eof() {
		switch {
		case l.match("/*"):
			depth++
			l.offset += 2
		case l.match("*/"):
			depth--
			l.offset += 2

			if depth == 0 {
				return
			}
		default:
			l.advance()
		}
	}

	l.report(diag.Errorf("unclosed block comment").
		WithPrimary(diag.NewSpan(start, l.offset), "comment starts here and runs to the end of input").
		WithHelp("close the comment with '*/'; block comments nest").
		WithCode(diag.CodeUnterminated))
}

func (l *lexerState) scanIdent() {
	start := l.offset
	l.advance()

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	text := l.input[start:l.offset]

	if kind, ok := token.Lookup(l.upper.String(text)); ok {
		l.emit(kind, start, text)
		return
	}

	l.emit(token.IDENT, start, text)
}

func (l *lexerState) scanParameter() {
	start := l.offset
	l.advance() // $

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	if l.offset == start+1 {
		l.report(diag.Errorf("invalid character '$'").
			WithPrimary(diag.NewSpan(start, l.offset), "expected a parameter name after '$'").
			WithCode(diag.CodeInvalidCharacter))

		return
	}

	l.emit(token.PARAMETER, start, l.input[start+1:l.offset])
}

func (l *lexerState) scanOperator() bool {
	start := l.offset

	for _, op := range multiOps {
		if l.match(op.text) {
			l.offset += len(op.text)
			l.emit(op.kind, start, op.text)

			return true
		}
	}

	kind, ok := singleOps[l.peek()]
	if !ok {
		return false
	}

	l.advance()
	l.emit(kind, start, l.input[start:l.offset])

	return true
}

// Character helpers.

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
