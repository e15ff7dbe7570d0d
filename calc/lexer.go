package calc

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch  rune
	eof bool

	strict bool
}

func newLexer(input string, strict bool) *lexer {
	l := &lexer{input: input, line: 1, column: 0, strict: strict}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		if !l.eof && l.ch != '\n' {
			l.column++
		}
		l.width = 0
		l.ch = 0
		l.eof = true
		return
	}

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.column++
	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

// nextToken returns the next token or a token of kind tokenEOF once the
// input is exhausted.
func (l *lexer) nextToken() (Token, error) {
	for !l.eof {
		pos := Position{Line: l.line, Column: l.column}
		switch {
		case isWhitespace(l.ch):
			l.readRune()
		case isOperatorSymbol(l.ch):
			tok := Token{Kind: TokenOperator, Op: byte(l.ch), Literal: string(l.ch), Pos: pos}
			l.readRune()
			return tok, nil
		case isDigit(l.ch):
			return l.readNumber(pos), nil
		default:
			if l.strict {
				return Token{}, newError(ErrInvalidCharacter, pos, l.input, fmt.Sprintf("invalid character %q", l.ch))
			}
			l.readRune()
		}
	}
	return Token{Kind: tokenEOF, Pos: Position{Line: l.line, Column: l.column}}, nil
}

func (l *lexer) readNumber(pos Position) Token {
	start := l.currentOffset()
	hasDot := false

	for {
		l.readRune()
		if l.eof {
			break
		}
		if l.ch == '.' && !hasDot && isDigit(l.peekRune()) {
			hasDot = true
			continue
		}
		if !isDigit(l.ch) {
			break
		}
	}

	literal := l.input[start:l.currentOffset()]
	// a digit run always parses; literals past float64 range come back as +Inf
	value, _ := strconv.ParseFloat(literal, 64)
	return Token{Kind: TokenNumber, Value: value, Literal: literal, Pos: pos}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
