package calc

import "fmt"

// toPostfix reorders infix tokens into postfix order with the shunting-yard
// algorithm. Operators of equal precedence pop before the incoming one, so
// every operator is left associative.
func toPostfix(tokens []Token, strict bool) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens)/2+1)

	for _, tok := range tokens {
		switch {
		case tok.IsNumber():
			output = append(output, tok)
		case tok.isOp('('):
			stack = append(stack, tok)
		case tok.isOp(')'):
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.isOp('(') {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched && strict {
				return nil, newError(ErrUnbalancedParentheses, tok.Pos, "", "unmatched ')'")
			}
		case tok.Kind == TokenOperator:
			prec, ok := precedences[tok.Op]
			if !ok {
				return nil, newError(ErrInvalidCharacter, tok.Pos, "", fmt.Sprintf("unknown operator %q", tok.Op))
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.isOp('(') || precedences[top.Op] < prec {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		default:
			return nil, newError(ErrMalformedExpression, tok.Pos, "", fmt.Sprintf("unexpected %s token", tok.Kind))
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		top := stack[i]
		if top.isOp('(') {
			if strict {
				return nil, newError(ErrUnbalancedParentheses, top.Pos, "", "unmatched '('")
			}
			continue
		}
		output = append(output, top)
	}

	return output, nil
}
