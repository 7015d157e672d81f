package tint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---------------------------------------------------------------

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := Tokenize(src)
	require.NoError(t, err, "source: %q", src)
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	end := len(tokens)
	if end > 0 && tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	require.Equal(t, want, typesWithoutEOF(got), "source: %q", src)
	return got
}

// --- tests -----------------------------------------------------------------

func Test_Lexer_Numbers(t *testing.T) {
	got := wantTypes(t, "42 3.14 .5 5.", []TokenType{NUMBER, NUMBER, NUMBER, NUMBER})
	assert.Equal(t, "42", got[0].Text)
	assert.Equal(t, "3.14", got[1].Text)
	assert.Equal(t, ".5", got[2].Text)
	assert.Equal(t, "5.", got[3].Text)
}

func Test_Lexer_Identifiers(t *testing.T) {
	got := wantTypes(t, "x foo _bar baz123", []TokenType{IDENT, IDENT, IDENT, IDENT})
	assert.Equal(t, "_bar", got[2].Text)
}

func Test_Lexer_Keywords(t *testing.T) {
	wantTypes(t, "if else while TRUE FALSE print",
		[]TokenType{IF, ELSE, WHILE, BOOLEAN, BOOLEAN, PRINT})
}

func Test_Lexer_ReservedFutureKeywords(t *testing.T) {
	// Recognized lexically even though the grammar has no rule for them.
	wantTypes(t, "for break continue return function",
		[]TokenType{FOR, BREAK, CONTINUE, RETURN, FUNCTION})
}

func Test_Lexer_KeywordNeverIdentifier(t *testing.T) {
	got := wantTypes(t, "TRUE TRUEX xTRUE", []TokenType{BOOLEAN, IDENT, IDENT})
	assert.Equal(t, "TRUEX", got[1].Text)
}

func Test_Lexer_WordOperators(t *testing.T) {
	got := wantTypes(t, "a and b or not c", []TokenType{IDENT, AND, IDENT, OR, BANG, IDENT})
	// The raw lexeme is preserved even though the kind is the symbol form.
	assert.Equal(t, "and", got[1].Text)
	assert.Equal(t, "not", got[4].Text)
}

func Test_Lexer_Operators(t *testing.T) {
	wantTypes(t, "+ - * / % == != <= >= && || = ! < >",
		[]TokenType{PLUS, MINUS, STAR, SLASH, PERCENT, EQ, NEQ, LESS_EQ, GREATER_EQ,
			AND, OR, ASSIGN, BANG, LESS, GREATER})
}

func Test_Lexer_TwoCharBeforeOneChar(t *testing.T) {
	// "===" must lex as "==" then "=", never three "=".
	wantTypes(t, "===", []TokenType{EQ, ASSIGN})
	wantTypes(t, "<=>", []TokenType{LESS_EQ, GREATER})
}

func Test_Lexer_Punctuation(t *testing.T) {
	wantTypes(t, "( ) { } [ ] ; , .",
		[]TokenType{LROUND, RROUND, LCURLY, RCURLY, LSQUARE, RSQUARE, SEMI, COMMA, PERIOD})
}

func Test_Lexer_Strings(t *testing.T) {
	got := wantTypes(t, `"hello" 'world'`, []TokenType{STRING, STRING})
	// Raw lexemes keep their quotes; the parser strips them.
	assert.Equal(t, `"hello"`, got[0].Text)
	assert.Equal(t, `'world'`, got[1].Text)
}

func Test_Lexer_StringEscapes(t *testing.T) {
	got := wantTypes(t, `"a\"b" 'c\'d'`, []TokenType{STRING, STRING})
	assert.Equal(t, `"a\"b"`, got[0].Text)
	assert.Equal(t, `'c\'d'`, got[1].Text)
}

func Test_Lexer_Comments(t *testing.T) {
	wantTypes(t, "x = 1 // trailing comment\ny = 2",
		[]TokenType{IDENT, ASSIGN, NUMBER, IDENT, ASSIGN, NUMBER})
	wantTypes(t, "# full-line comment\nz", []TokenType{IDENT})
	// "//" wins over division; a lone "/" is still an operator.
	wantTypes(t, "a / b", []TokenType{IDENT, SLASH, IDENT})
}

func Test_Lexer_LocationTracking(t *testing.T) {
	got := toks(t, "x = 5\ny = 10")
	require.Len(t, got, 7) // six tokens plus EOF

	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 1, got[0].Col)

	y := got[3]
	assert.Equal(t, "y", y.Text)
	assert.Equal(t, 2, y.Line)
	assert.Equal(t, 1, y.Col)
}

func Test_Lexer_ColumnAdvancesOverSkippedInput(t *testing.T) {
	got := toks(t, "ab   = 1")
	assert.Equal(t, 6, got[1].Col, "'=' sits after identifier and three spaces")

	got = toks(t, "# note\n  x")
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, 3, got[0].Col)
}

func Test_Lexer_EOFToken(t *testing.T) {
	got := toks(t, "x = 5")
	last := got[len(got)-1]
	assert.Equal(t, EOF, last.Type)
	assert.Equal(t, 1, last.Line)
	assert.Equal(t, 6, last.Col)

	got = toks(t, "")
	require.Len(t, got, 1)
	assert.Equal(t, EOF, got[0].Type)
}

func Test_Lexer_UnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("x = 1\ny = @")
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 2, lexErr.Line)
	assert.Equal(t, 5, lexErr.Col)
	assert.Contains(t, lexErr.Msg, "@")
}

func Test_Lexer_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`x = "abc`)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Line)
	assert.Equal(t, 5, lexErr.Col)
	assert.Contains(t, lexErr.Msg, `"`)
}

func Test_Lexer_LoneAmpersandAndPipe(t *testing.T) {
	_, err := Tokenize("a & b")
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, lexErr.Msg, "&")

	_, err = Tokenize("a | b")
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, lexErr.Msg, "|")
}
