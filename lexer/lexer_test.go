package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/lexer"
	"github.com/rlch/gql/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

func codes(diags []diag.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Code)
	}

	return out
}

func TestTokenizeKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "empty",
			input: "",
			want:  []token.Kind{token.EOF},
		},
		{
			name:  "keywords are case insensitive",
			input: "match Optional RETURN",
			want:  []token.Kind{token.MATCH, token.OPTIONAL, token.RETURN, token.EOF},
		},
		{
			name:  "non-reserved keyword",
			input: "shortest Trail",
			want:  []token.Kind{token.SHORTEST, token.TRAIL, token.EOF},
		},
		{
			name:  "node and edge",
			input: "(a:Person)-[e]->(b)",
			want: []token.Kind{
				token.LPAREN, token.IDENT, token.COLON, token.IDENT, token.RPAREN,
				token.MINUS, token.LBRACKET, token.IDENT, token.RBRACKET, token.RIGHT_ARROW,
				token.LPAREN, token.IDENT, token.RPAREN, token.EOF,
			},
		},
		{
			name:  "longest match",
			input: "|+| || | <-> <- <> <= < ~> <~ ~ :: : !=",
			want: []token.Kind{
				token.MULTISET_ALT, token.CONCAT, token.PIPE,
				token.BOTH_ARROW, token.LEFT_ARROW, token.NEQ, token.LTE, token.LT,
				token.RIGHT_TILDE, token.LEFT_TILDE, token.TILDE,
				token.DOUBLE_COLON, token.COLON, token.NEQ, token.EOF,
			},
		},
		{
			name:  "simplified opening",
			input: "-/:Knows/->",
			want: []token.Kind{
				token.MINUS, token.SLASH, token.COLON, token.IDENT, token.SLASH, token.RIGHT_ARROW, token.EOF,
			},
		},
		{
			name:  "line comments",
			input: "MATCH // rest\n-- another\nRETURN",
			want:  []token.Kind{token.MATCH, token.RETURN, token.EOF},
		},
		{
			name:  "nested block comment",
			input: "MATCH /* outer /* inner */ outer */ RETURN",
			want:  []token.Kind{token.MATCH, token.RETURN, token.EOF},
		},
		{
			name:  "literals",
			input: "'s' \"d\" `id` 42 1.5 $p",
			want: []token.Kind{
				token.STRING, token.STRING, token.DELIMITED_IDENT,
				token.INTEGER, token.FLOAT, token.PARAMETER, token.EOF,
			},
		},
		{
			name:  "property access is not a float",
			input: "n.age",
			want:  []token.Kind{token.IDENT, token.DOT, token.IDENT, token.EOF},
		},
		{
			name:  "leading dot float",
			input: ".5",
			want:  []token.Kind{token.FLOAT, token.EOF},
		},
		{
			name:  "unicode identifier",
			input: "naïve",
			want:  []token.Kind{token.IDENT, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			toks, diags := lexer.Tokenize(tt.input)
			assert.Empty(t, diags)

			if diff := cmp.Diff(tt.want, kinds(toks)); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		kind  token.Kind
		value string
	}{
		{`'it''s'`, token.STRING, "it's"},
		{`"a\tb\n"`, token.STRING, "a\tb\n"},
		{`'é'`, token.STRING, "é"},
		{`'\\\''`, token.STRING, `\'`},
		{"`odd name`", token.DELIMITED_IDENT, "odd name"},
		{"`a``b`", token.DELIMITED_IDENT, "a`b"},
		{"1_000_000", token.INTEGER, "1000000"},
		{"0x_FF", token.INTEGER, "0xFF"},
		{"0o17", token.INTEGER, "0o17"},
		{"0b1010", token.INTEGER, "0b1010"},
		{"6.02e23", token.FLOAT, "6.02e23"},
		{"1E-3", token.FLOAT, "1E-3"},
		{"$name", token.PARAMETER, "name"},
		{"Person", token.IDENT, "Person"},
		{"'line\none'", token.STRING, "line\none"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			toks, diags := lexer.Tokenize(tt.input)
			require.Empty(t, diags)
			require.Len(t, toks, 2)
			assert.Equal(t, tt.kind, toks[0].Kind)
			assert.Equal(t, tt.value, toks[0].Value)
			assert.Equal(t, tt.input, toks[0].Text)
		})
	}
}

func TestTokenizeDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantKinds []token.Kind
		wantCodes []string
	}{
		{
			name:      "unclosed string",
			input:     "'unclosed",
			wantKinds: []token.Kind{token.STRING, token.EOF},
			wantCodes: []string{diag.CodeUnterminated},
		},
		{
			name:      "unclosed delimited identifier",
			input:     "`abc",
			wantKinds: []token.Kind{token.DELIMITED_IDENT, token.EOF},
			wantCodes: []string{diag.CodeUnterminated},
		},
		{
			name:      "unclosed block comment",
			input:     "MATCH /* /* */",
			wantKinds: []token.Kind{token.MATCH, token.EOF},
			wantCodes: []string{diag.CodeUnterminated},
		},
		{
			name:      "invalid escape",
			input:     `'\q'`,
			wantKinds: []token.Kind{token.STRING, token.EOF},
			wantCodes: []string{diag.CodeInvalidEscape},
		},
		{
			name:      "short unicode escape",
			input:     `'\u12'`,
			wantKinds: []token.Kind{token.STRING, token.EOF},
			wantCodes: []string{diag.CodeInvalidEscape},
		},
		{
			name:      "trailing separator",
			input:     "1_",
			wantKinds: []token.Kind{token.INTEGER, token.EOF},
			wantCodes: []string{diag.CodeMalformedNumber},
		},
		{
			name:      "doubled separator",
			input:     "1__0",
			wantKinds: []token.Kind{token.INTEGER, token.EOF},
			wantCodes: []string{diag.CodeMalformedNumber},
		},
		{
			name:      "missing exponent",
			input:     "1e+",
			wantKinds: []token.Kind{token.FLOAT, token.EOF},
			wantCodes: []string{diag.CodeMalformedNumber},
		},
		{
			name:      "bad binary digit",
			input:     "0b102",
			wantKinds: []token.Kind{token.INTEGER, token.EOF},
			wantCodes: []string{diag.CodeMalformedNumber},
		},
		{
			name:      "empty hex",
			input:     "0x",
			wantKinds: []token.Kind{token.INTEGER, token.EOF},
			wantCodes: []string{diag.CodeMalformedNumber},
		},
		{
			name:      "invalid characters resume",
			input:     "a @ # b",
			wantKinds: []token.Kind{token.IDENT, token.IDENT, token.EOF},
			wantCodes: []string{diag.CodeInvalidCharacter, diag.CodeInvalidCharacter},
		},
		{
			name:      "bare dollar",
			input:     "$ x",
			wantKinds: []token.Kind{token.IDENT, token.EOF},
			wantCodes: []string{diag.CodeInvalidCharacter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			toks, diags := lexer.Tokenize(tt.input)

			if diff := cmp.Diff(tt.wantKinds, kinds(toks)); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tt.wantCodes, codes(diags)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}

			for _, d := range diags {
				assert.Equal(t, diag.SeverityError, d.Severity)
				sp, ok := d.PrimarySpan()
				assert.True(t, ok)
				assert.True(t, sp.Valid(), "diagnostic %v has invalid span", d)
			}
		})
	}
}

func TestUnclosedStringKeepsContent(t *testing.T) {
	t.Parallel()

	toks, diags := lexer.Tokenize("'unclosed")
	require.Len(t, diags, 1)
	assert.Equal(t, "unclosed", toks[0].Value)
	assert.Equal(t, diag.NewSpan(0, 9), toks[0].Span)
	sp, _ := diags[0].PrimarySpan()
	assert.Equal(t, diag.NewSpan(0, 9), sp)
	assert.Contains(t, diags[0].Message, "unclosed string literal")
}

func TestKeywordKeepsText(t *testing.T) {
	t.Parallel()

	toks, _ := lexer.Tokenize("Match")
	assert.Equal(t, token.MATCH, toks[0].Kind)
	assert.Equal(t, "Match", toks[0].Text)
}

// checkCoverage asserts that gaps between tokens hold only trivia or
// diagnosed text and that spans are ordered and in bounds.
func checkCoverage(t *testing.T, src string, toks []token.Token, diags []diag.Diagnostic) {
	t.Helper()

	require.NotEmpty(t, toks)

	last := toks[len(toks)-1]
	assert.Equal(t, token.EOF, last.Kind)
	assert.Equal(t, diag.Point(len(src)), last.Span)

	prev := 0
	for i, tok := range toks {
		require.LessOrEqual(t, prev, tok.Span.Start, "token %d overlaps its predecessor", i)
		require.LessOrEqual(t, tok.Span.End, len(src))
		assert.Equal(t, src[tok.Span.Start:tok.Span.End], tok.Text)

		if i < len(toks)-1 {
			assert.NotEqual(t, token.EOF, tok.Kind)
		}

		prev = tok.Span.End
	}

	for _, d := range diags {
		sp, _ := d.PrimarySpan()
		assert.LessOrEqual(t, sp.Start, sp.End)
		assert.LessOrEqual(t, sp.End, len(src))
	}
}

func TestSpanCoverage(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"MATCH (a:Person WHERE a.age > 21)-[e:KNOWS]->{1,3}(b) RETURN a, b",
		"MATCH p = ANY SHORTEST (a)-/:Knows|Likes/->(b) RETURN p",
		"'unclosed",
		"/* never closed",
		"1__2 0x 0b9 @",
		"é ñ `x` $y",
	}

	for _, src := range inputs {
		toks, diags := lexer.Tokenize(src)
		checkCoverage(t, src, toks, diags)
	}
}

func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"MATCH (n) RETURN n",
		"MATCH /* a /* b */ */ (a)<-[e]-(b)",
		"'\\u00e9' \"x\\q\" `y``z`",
		"1_000.5e-3 0xFF 0o7 0b1",
		"-/:A&!B/~> <~/x/~ |+| ||",
		"\xff\xfe",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		toks, diags := lexer.Tokenize(src)
		checkCoverage(t, src, toks, diags)
	})
}
