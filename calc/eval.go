package calc

import (
	"fmt"
	"math"
)

func evaluatePostfix(postfix []Token, strict bool) (float64, error) {
	stack := make([]float64, 0, len(postfix)/2+1)

	for _, tok := range postfix {
		if tok.IsNumber() {
			stack = append(stack, tok.Value)
			continue
		}
		if tok.Kind != TokenOperator {
			return 0, newError(ErrMalformedExpression, tok.Pos, "", fmt.Sprintf("unexpected %s token", tok.Kind))
		}
		if len(stack) < 2 {
			return 0, newError(ErrMalformedExpression, tok.Pos, "", fmt.Sprintf("operator %q is missing an operand", tok.Op))
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		result, err := applyOperator(tok, a, b, strict)
		if err != nil {
			return 0, err
		}
		stack = append(stack, result)
	}

	switch len(stack) {
	case 1:
		return stack[0], nil
	case 0:
		return 0, newError(ErrMalformedExpression, Position{}, "", "nothing to evaluate")
	default:
		return 0, newError(ErrMalformedExpression, Position{}, "", fmt.Sprintf("%d values left without an operator", len(stack)))
	}
}

func applyOperator(tok Token, a, b float64, strict bool) (float64, error) {
	switch tok.Op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if strict && b == 0 {
			return 0, newError(ErrDivisionByZero, tok.Pos, "", "division by zero")
		}
		return a / b, nil
	case '%':
		if strict && b == 0 {
			return 0, newError(ErrDivisionByZero, tok.Pos, "", "modulo by zero")
		}
		return math.Mod(a, b), nil
	default:
		return 0, newError(ErrMalformedExpression, tok.Pos, "", fmt.Sprintf("unexpected operator %q", tok.Op))
	}
}
