// lexer.go — byte-level scanner that turns Tint source into located tokens.
//
// The scanner tries pattern classes in a fixed priority order at every
// position: comments, keywords/word-operators (via the keywords table after
// scanning a word), numbers, strings, identifiers, two-character operators,
// one-character operators, whitespace. The ordering is observable: "TRUE"
// must never lex as an identifier, "==" must never lex as two "=".
//
// Positions are 1-based. Column counts characters from the start of the line
// and advances by the consumed lexeme length for every match, including
// skipped whitespace and comments; a literal newline increments the line and
// resets the column to 1.
package tint

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Literals & identifiers
	NUMBER
	STRING
	BOOLEAN
	IDENT

	// Keywords. Several of these (FOR, BREAK, CONTINUE, RETURN, FUNCTION)
	// are recognized lexically but have no grammar support yet; the parser
	// rejects them as unexpected tokens.
	PRINT
	IF
	ELSE
	WHILE
	FOR
	BREAK
	CONTINUE
	RETURN
	FUNCTION

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	AND  // "&&" or the word "and"
	OR   // "||" or the word "or"
	BANG // "!" or the word "not"

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LCURLY  // "{"
	RCURLY  // "}"
	LSQUARE // "["
	RSQUARE // "]"
	SEMI    // ";"
	COMMA   // ","
	PERIOD  // "."
)

var tokenNames = map[TokenType]string{
	EOF:        "EOF",
	NUMBER:     "number",
	STRING:     "string",
	BOOLEAN:    "boolean",
	IDENT:      "identifier",
	PRINT:      "print",
	IF:         "if",
	ELSE:       "else",
	WHILE:      "while",
	FOR:        "for",
	BREAK:      "break",
	CONTINUE:   "continue",
	RETURN:     "return",
	FUNCTION:   "function",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	ASSIGN:     "=",
	EQ:         "==",
	NEQ:        "!=",
	LESS:       "<",
	LESS_EQ:    "<=",
	GREATER:    ">",
	GREATER_EQ: ">=",
	AND:        "&&",
	OR:         "||",
	BANG:       "!",
	LROUND:     "(",
	RROUND:     ")",
	LCURLY:     "{",
	RCURLY:     "}",
	LSQUARE:    "[",
	RSQUARE:    "]",
	SEMI:       ";",
	COMMA:      ",",
	PERIOD:     ".",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is an immutable lexeme with its kind and 1-based source position.
// String tokens keep their surrounding quotes; the parser strips them.
type Token struct {
	Type TokenType
	Text string
	Line int
	Col  int
}

// keywords map; word-operators lex to the same kinds as their symbol forms.
var keywords = map[string]TokenType{
	"TRUE":     BOOLEAN,
	"FALSE":    BOOLEAN,
	"print":    PRINT,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"function": FUNCTION,
	"and":      AND,
	"or":       OR,
	"not":      BANG,
}

// LexError reports an input position where no token pattern matched.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer scans a Tint source string into tokens.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 1-based column of l.cur

	// position of the current token's first character
	tokStartLine int
	tokStartCol  int

	tokens []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Tokenize scans the whole source and returns its tokens, EOF included.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

// advance consumes one byte. A newline bumps the line counter and resets the
// column; everything else, including bytes inside strings, advances the
// column by one.
func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType) Token {
	tok := Token{
		Type: tt,
		Text: l.src[l.start:l.cur],
		Line: l.tokStartLine,
		Col:  l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// ----- scanners -----

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

// skipLineComment consumes "//..." or "#..." up to (not including) the newline.
func (l *Lexer) skipLineComment() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			l.start = l.cur
			return
		}
		l.advance()
	}
}

// scanNumber consumes the remainder of a numeric literal. The caller has
// already consumed the first digit, or a dot known to be followed by a digit.
// "5." is a valid literal; trailing digits after the dot are optional when
// digits precede it.
func (l *Lexer) scanNumber() {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	if b, ok := l.peek(); ok && b == '.' && l.src[l.start] != '.' {
		l.advance()
		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
	}
}

// scanString consumes a quoted literal, keeping the raw text. Backslash
// escapes any following character; the closing quote must match the opener.
// Returns false when the string never terminates.
func (l *Lexer) scanString(del byte) bool {
	for {
		b, ok := l.peek()
		if !ok {
			return false
		}
		l.advance()
		if b == '\\' {
			if _, ok := l.peek(); ok {
				l.advance()
			}
			continue
		}
		if b == del {
			return true
		}
	}
}

func (l *Lexer) scanWord() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	for {
		l.skipWhitespace()
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col

		if l.isAtEnd() {
			return l.addToken(EOF), nil
		}

		ch, _ := l.advance()

		// Comments win over the division operator.
		if ch == '/' {
			if b, ok := l.peek(); ok && b == '/' {
				l.skipLineComment()
				continue
			}
			return l.addToken(SLASH), nil
		}
		if ch == '#' {
			l.skipLineComment()
			continue
		}

		// Words: keywords, word-operators, identifiers.
		if isAlpha(ch) {
			word := l.scanWord()
			if tt, ok := keywords[word]; ok {
				return l.addToken(tt), nil
			}
			return l.addToken(IDENT), nil
		}

		// Numbers: digits, or a dot that starts a fraction.
		if isDigit(ch) {
			l.scanNumber()
			return l.addToken(NUMBER), nil
		}
		if ch == '.' {
			if b, ok := l.peek(); ok && isDigit(b) {
				l.scanNumber()
				return l.addToken(NUMBER), nil
			}
			return l.addToken(PERIOD), nil
		}

		// Strings.
		if ch == '"' || ch == '\'' {
			if !l.scanString(ch) {
				return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
			}
			return l.addToken(STRING), nil
		}

		// Two-character operators before their one-character prefixes.
		switch ch {
		case '=':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(EQ), nil
			}
			return l.addToken(ASSIGN), nil
		case '!':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(NEQ), nil
			}
			return l.addToken(BANG), nil
		case '<':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(LESS_EQ), nil
			}
			return l.addToken(LESS), nil
		case '>':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(GREATER_EQ), nil
			}
			return l.addToken(GREATER), nil
		case '&':
			if b, ok := l.peek(); ok && b == '&' {
				l.advance()
				return l.addToken(AND), nil
			}
			return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
		case '|':
			if b, ok := l.peek(); ok && b == '|' {
				l.advance()
				return l.addToken(OR), nil
			}
			return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
		}

		// One-character operators and punctuation.
		switch ch {
		case '+':
			return l.addToken(PLUS), nil
		case '-':
			return l.addToken(MINUS), nil
		case '*':
			return l.addToken(STAR), nil
		case '%':
			return l.addToken(PERCENT), nil
		case '(':
			return l.addToken(LROUND), nil
		case ')':
			return l.addToken(RROUND), nil
		case '{':
			return l.addToken(LCURLY), nil
		case '}':
			return l.addToken(RCURLY), nil
		case '[':
			return l.addToken(LSQUARE), nil
		case ']':
			return l.addToken(RSQUARE), nil
		case ';':
			return l.addToken(SEMI), nil
		case ',':
			return l.addToken(COMMA), nil
		}

		return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
