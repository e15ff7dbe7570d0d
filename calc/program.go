package calc

import "strings"

// Program is a compiled expression held in postfix form.
type Program struct {
	engine  *Engine
	source  string
	postfix []Token
}

// Eval evaluates the program. It may be called any number of times,
// concurrently, and always yields the same result.
func (p *Program) Eval() (float64, error) {
	value, err := p.engine.Evaluate(p.postfix)
	if err != nil {
		return 0, p.engine.fail(p.source, err)
	}
	return value, nil
}

// Postfix returns a copy of the program's postfix tokens.
func (p *Program) Postfix() []Token {
	out := make([]Token, len(p.postfix))
	copy(out, p.postfix)
	return out
}

// Source returns the expression the program was compiled from.
func (p *Program) Source() string {
	return p.source
}

// String renders the postfix form with tokens separated by spaces.
func (p *Program) String() string {
	return JoinTokens(p.postfix)
}

// JoinTokens renders tokens separated by single spaces.
func JoinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}
