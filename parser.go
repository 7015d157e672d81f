// parser.go — recursive-descent parser for Tint.
//
// One function per grammar level, precedence climbing from lowest to highest
// binding:
//
//	program     := statement* EOF
//	statement   := ';'* (print_stmt | if_stmt | while_stmt | block | assignment | expr_stmt)
//	assignment  := IDENTIFIER '=' expression ';'?
//	print_stmt  := 'print' expression ';'?
//	if_stmt     := 'if' '(' expression ')' statement ('else' statement)? ';'?
//	while_stmt  := 'while' '(' expression ')' statement ';'?
//	block       := '{' statement* '}'
//	expr_stmt   := expression ';'?
//	expression  := logical_or
//	logical_or  := logical_and ('||' logical_and)*
//	logical_and := equality ('&&' equality)*
//	equality    := comparison (('=='|'!=') comparison)*
//	comparison  := term (('<'|'>'|'<='|'>=') term)*
//	term        := factor (('+'|'-') factor)*
//	factor      := unary (('*'|'/'|'%') unary)*
//	unary       := ('!'|'-') unary | primary
//	primary     := NUMBER | STRING | BOOLEAN | IDENTIFIER | '(' expression ')'
//
// A statement starting with an identifier is an assignment only when the next
// token is '='; otherwise it is an expression statement. Parenthesized
// expressions produce no wrapper node. Keywords the lexer recognizes without
// grammar support (for, break, continue, return, function) surface here as
// "unexpected token" parse errors.
package tint

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a token that does not fit the grammar.
type ParseError struct {
	Msg string
	Tok Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Tok.Line, e.Tok.Col, e.Msg)
}

// Parse tokenizes and parses a complete source string.
func Parse(src string) (*Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses an already-tokenized source. The token slice must end
// with an EOF token, as produced by Tokenize.
func ParseTokens(toks []Token) (*Program, error) {
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		toks = append(toks, Token{Type: EOF, Line: 1, Col: 1})
	}
	p := &parser{toks: toks}
	return p.program()
}

type parser struct {
	toks []Token
	i    int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) peekN(n int) Token {
	idx := p.i + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, &ParseError{Msg: msg, Tok: p.peek()}
}

// ─────────────────────────────── statements ────────────────────────────────

func (p *parser) program() (*Program, error) {
	start := p.peek()
	var stmts []Node
	for !p.atEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return &Program{Line: start.Line, Col: start.Col, Stmts: stmts}, nil
}

// statement parses one statement, skipping any leading semicolons. It returns
// (nil, nil) when only semicolons remained before EOF.
func (p *parser) statement() (Node, error) {
	for p.match(SEMI) {
	}
	if p.atEnd() {
		return nil, nil
	}

	switch p.peek().Type {
	case PRINT:
		return p.printStmt()
	case IF:
		return p.ifStmt()
	case WHILE:
		return p.whileStmt()
	case LCURLY:
		return p.block()
	case IDENT:
		if p.peekN(1).Type == ASSIGN {
			return p.assignment()
		}
	}
	return p.exprStmt()
}

// needStatement is statement for positions where a statement is mandatory
// (if/else branches, while bodies).
func (p *parser) needStatement() (Node, error) {
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, &ParseError{Msg: "expected statement", Tok: p.peek()}
	}
	return stmt, nil
}

func (p *parser) assignment() (Node, error) {
	name, err := p.need(IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ASSIGN, "expected '=' in assignment"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.match(SEMI)
	return &Assign{Line: name.Line, Col: name.Col, Name: name.Text, Value: value}, nil
}

func (p *parser) printStmt() (Node, error) {
	kw, err := p.need(PRINT, "expected 'print'")
	if err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.match(SEMI)
	return &Print{Line: kw.Line, Col: kw.Col, Value: value}, nil
}

func (p *parser) ifStmt() (Node, error) {
	kw, err := p.need(IF, "expected 'if'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "expected ')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.needStatement()
	if err != nil {
		return nil, err
	}
	var els Node
	if p.match(ELSE) {
		if els, err = p.needStatement(); err != nil {
			return nil, err
		}
	}
	p.match(SEMI)
	return &If{Line: kw.Line, Col: kw.Col, Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) whileStmt() (Node, error) {
	kw, err := p.need(WHILE, "expected 'while'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "expected ')' after condition"); err != nil {
		return nil, err
	}
	body, err := p.needStatement()
	if err != nil {
		return nil, err
	}
	p.match(SEMI)
	return &While{Line: kw.Line, Col: kw.Col, Cond: cond, Body: body}, nil
}

func (p *parser) block() (Node, error) {
	open, err := p.need(LCURLY, "expected '{'")
	if err != nil {
		return nil, err
	}
	var stmts []Node
	for p.peek().Type != RCURLY && !p.atEnd() {
		stmt, serr := p.statement()
		if serr != nil {
			return nil, serr
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.need(RCURLY, "expected '}'"); err != nil {
		return nil, err
	}
	return &Block{Line: open.Line, Col: open.Col, Stmts: stmts}, nil
}

func (p *parser) exprStmt() (Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.match(SEMI)
	return expr, nil
}

// ─────────────────────────────── expressions ───────────────────────────────

func (p *parser) expression() (Expr, error) {
	return p.logicalOr()
}

// binaryLevel parses a left-associative run of the given operator tokens with
// operands from the next-tighter level.
func (p *parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.prev()
		right, rerr := next()
		if rerr != nil {
			return nil, rerr
		}
		left = &Binary{
			Line: op.Line, Col: op.Col,
			Op:   op.Type.String(),
			Left: left, Right: right,
		}
	}
	return left, nil
}

func (p *parser) logicalOr() (Expr, error) {
	return p.binaryLevel(p.logicalAnd, OR)
}

func (p *parser) logicalAnd() (Expr, error) {
	return p.binaryLevel(p.equality, AND)
}

func (p *parser) equality() (Expr, error) {
	return p.binaryLevel(p.comparison, EQ, NEQ)
}

func (p *parser) comparison() (Expr, error) {
	return p.binaryLevel(p.term, LESS, GREATER, LESS_EQ, GREATER_EQ)
}

func (p *parser) term() (Expr, error) {
	return p.binaryLevel(p.factor, PLUS, MINUS)
}

func (p *parser) factor() (Expr, error) {
	return p.binaryLevel(p.unary, STAR, SLASH, PERCENT)
}

func (p *parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Line: op.Line, Col: op.Col, Op: op.Type.String(), Operand: operand}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.i++
		return p.numberLit(tok)
	case STRING:
		p.i++
		return &StringLit{Line: tok.Line, Col: tok.Col, Val: decodeString(tok.Text)}, nil
	case BOOLEAN:
		p.i++
		return &BoolLit{Line: tok.Line, Col: tok.Col, Val: tok.Text == "TRUE"}, nil
	case IDENT:
		p.i++
		return &Ident{Line: tok.Line, Col: tok.Col, Name: tok.Text}, nil
	case LROUND:
		p.i++
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "expected ')' after expression"); err != nil {
			return nil, err
		}
		// Grouping leaves no trace in the AST.
		return expr, nil
	}
	return nil, &ParseError{Msg: fmt.Sprintf("unexpected token: %s", tok.Type), Tok: tok}
}

// numberLit converts a NUMBER token into an integer or float literal node.
// A decimal point anywhere in the lexeme makes it a float.
func (p *parser) numberLit(tok Token) (Expr, error) {
	if strings.Contains(tok.Text, ".") {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &ParseError{Msg: fmt.Sprintf("invalid number literal %q", tok.Text), Tok: tok}
		}
		return &NumberLit{Line: tok.Line, Col: tok.Col, Val: Num(f)}, nil
	}
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return nil, &ParseError{Msg: fmt.Sprintf("invalid number literal %q", tok.Text), Tok: tok}
	}
	return &NumberLit{Line: tok.Line, Col: tok.Col, Val: Int(n)}, nil
}

// decodeString strips the surrounding quotes and rewrites the escapes \n, \t,
// \" and \'. A backslash before any other character is kept as-is.
func decodeString(raw string) string {
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			switch body[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case '\'':
				b.WriteByte('\'')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
