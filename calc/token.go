package calc

import "strconv"

// TokenKind identifies which variant of the Token union is populated.
type TokenKind int

const (
	tokenEOF TokenKind = iota
	TokenNumber
	TokenOperator
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	default:
		return "end of input"
	}
}

// Token is a lexical unit of an expression: either a decimal number or one of
// the operator symbols + - * / % ( ).
type Token struct {
	Kind    TokenKind
	Value   float64
	Op      byte
	Literal string
	Pos     Position
}

// Position identifies a line and column in the expression source. Columns
// count runes and start at 1.
type Position struct {
	Line   int
	Column int
}

// NumberToken builds a number token without source information.
func NumberToken(v float64) Token {
	return Token{Kind: TokenNumber, Value: v, Literal: strconv.FormatFloat(v, 'f', -1, 64)}
}

// OperatorToken builds an operator token without source information.
func OperatorToken(op byte) Token {
	return Token{Kind: TokenOperator, Op: op, Literal: string(op)}
}

func (t Token) IsNumber() bool {
	return t.Kind == TokenNumber
}

func (t Token) isOp(op byte) bool {
	return t.Kind == TokenOperator && t.Op == op
}

func (t Token) String() string {
	if t.Literal != "" {
		return t.Literal
	}
	if t.Kind == TokenNumber {
		return strconv.FormatFloat(t.Value, 'f', -1, 64)
	}
	if t.Kind == TokenOperator {
		return string(t.Op)
	}
	return ""
}

var precedences = map[byte]int{
	'+': 1,
	'-': 1,
	'*': 2,
	'/': 2,
	'%': 2,
}

// Precedence reports the binding strength of a binary operator. Parentheses
// and unknown symbols report false.
func Precedence(op byte) (int, bool) {
	prec, ok := precedences[op]
	return prec, ok
}

func isOperatorSymbol(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '(', ')':
		return true
	default:
		return false
	}
}
