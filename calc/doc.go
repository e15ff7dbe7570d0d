// Package calc implements a small arithmetic expression engine. Expressions
// are built from decimal literals (`12`, `3.5`), the binary operators
// `+ - * / %` and parentheses:
//   - Tokenize splits the input into number and operator tokens.
//   - ToPostfix reorders tokens with the shunting-yard algorithm; `*`, `/`
//     and `%` bind tighter than `+` and `-`, and all operators are left
//     associative.
//   - Evaluate runs the postfix form on an operand stack.
//
// Engines default to strict mode, which reports invalid characters,
// unbalanced parentheses and division by zero as errors. Lenient mode drops
// unknown characters, ignores stray parentheses and lets division by zero
// produce IEEE infinities and NaN.
package calc
