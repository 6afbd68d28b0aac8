package lexer

import (
	"strconv"
	"strings"

	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/token"
)

// scanQuoted scans a string literal or delimited identifier opened by quote.
// The token is emitted even when the literal is malformed.
func (l *lexerState) scanQuoted(quote rune, kind token.Kind) {
	start := l.offset
	l.advance()

	var b strings.Builder

	for {
		if l.eof() {
			what := "string literal"
			if kind == token.DELIMITED_IDENT {
				what = "delimited identifier"
			}

			l.report(diag.Errorf("unclosed %s", what).
				WithPrimary(diag.NewSpan(start, l.offset), "missing closing "+string(quote)).
				WithCode(diag.CodeUnterminated))
			l.emit(kind, start, b.String())

			return
		}

		r := l.peek()

		switch r {
		case quote:
			l.advance()

			if l.peek() == quote {
				l.advance()
				b.WriteRune(quote)

				continue
			}

			l.emit(kind, start, b.String())

			return
		case '\\':
			l.scanEscape(&b)
		default:
			b.WriteRune(l.advance())
		}
	}
}

func (l *lexerState) scanEscape(b *strings.Builder) {
	start := l.offset
	l.advance() // backslash

	if l.eof() {
		return
	}

	e := l.advance()

	switch e {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '\'', '"', '`', '\\':
		b.WriteRune(e)
	case 'u':
		hex := l.input[l.offset:min(l.offset+4, len(l.input))]
		if len(hex) == 4 && strings.IndexFunc(hex, func(r rune) bool { return !isHexDigit(r) }) < 0 {
			n, _ := strconv.ParseUint(hex, 16, 32)
			l.offset += 4
			b.WriteRune(rune(n))

			return
		}

		l.report(diag.Errorf("invalid unicode escape").
			WithPrimary(diag.NewSpan(start, l.offset), "expected four hex digits after \\u").
			WithCode(diag.CodeInvalidEscape))
		b.WriteRune(e)
	default:
		l.report(diag.Errorf("invalid escape sequence \\%c", e).
			WithPrimary(diag.NewSpan(start, l.offset), "unknown escape").
			WithHelp(`valid escapes are \n \t \r \' \" \`+"`"+` \\ and \uXXXX`).
			WithCode(diag.CodeInvalidEscape))
		b.WriteRune(e)
	}
}

// scanNumber scans decimal, float and prefixed integer literals. Digit
// separators are validated after matching so a malformed number is still one
// token.
func (l *lexerState) scanNumber() {
	start := l.offset

	if l.peek() == '0' {
		switch l.peekAt(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			l.scanPrefixedInteger(start)
			return
		}
	}

	intPart := l.digits(isDigit)
	isFloat := false
	problem := ""

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		isFloat = true

		if frac := l.digits(isDigit); !validGroups(frac) {
			problem = "misplaced digit separator in fraction"
		}
	}

	if intPart != "" && !validGroups(intPart) {
		problem = "misplaced digit separator"
	}

	if r := l.peek(); r == 'e' || r == 'E' {
		l.advance()
		isFloat = true

		if r := l.peek(); r == '+' || r == '-' {
			l.advance()
		}

		exp := l.digits(isDigit)

		switch {
		case exp == "":
			problem = "missing exponent digits"
		case !validGroups(exp):
			problem = "misplaced digit separator in exponent"
		}
	}

	kind := token.INTEGER
	if isFloat {
		kind = token.FLOAT
	}

	l.finishNumber(kind, start, problem)
}

func (l *lexerState) scanPrefixedInteger(start int) {
	l.advance() // 0
	base := l.advance()

	valid := isDigit
	name := "decimal"

	switch base {
	case 'x', 'X':
		valid, name = isHexDigit, "hexadecimal"
	case 'o', 'O':
		valid, name = func(r rune) bool { return r >= '0' && r <= '7' }, "octal"
	case 'b', 'B':
		valid, name = func(r rune) bool { return r == '0' || r == '1' }, "binary"
	}

	problem := ""
	// Swallow trailing digits so 0b102 is one malformed token.
	body := l.digits(isHexDigit)

	switch {
	case body == "":
		problem = "missing " + name + " digits"
	case strings.IndexFunc(body, func(r rune) bool { return r != '_' && !valid(r) }) >= 0:
		problem = "invalid digit in " + name + " literal"
	case !validGroups(strings.TrimPrefix(body, "_")):
		problem = "misplaced digit separator"
	}

	l.finishNumber(token.INTEGER, start, problem)
}

func (l *lexerState) finishNumber(kind token.Kind, start int, problem string) {
	text := l.input[start:l.offset]

	if problem != "" {
		d := diag.Errorf("malformed number %q", text).
			WithPrimary(diag.NewSpan(start, l.offset), problem).
			WithCode(diag.CodeMalformedNumber)
		if strings.Contains(problem, "separator") {
			d = d.WithHelp("'_' may only appear between digits")
		}

		l.report(d)
	}

	l.emit(kind, start, strings.ReplaceAll(text, "_", ""))
}

// digits consumes a run of digits and separators and returns it.
func (l *lexerState) digits(valid func(rune) bool) string {
	start := l.offset

	for !l.eof() {
		r := l.peek()
		if r != '_' && !valid(r) {
			break
		}

		l.advance()
	}

	return l.input[start:l.offset]
}

func validGroups(s string) bool {
	return s != "" &&
		s[0] != '_' &&
		s[len(s)-1] != '_' &&
		!strings.Contains(s, "__")
}
