// Package calc implements a floating-point calculator for infix arithmetic.
//
// Expressions contain decimal numbers, the binary operators + - * / and ^,
// unary minus, and parentheses. Evaluation tokenizes the text, rewrites each
// minus sign that cannot be subtraction as negation, converts the tokens to
// postfix order with the shunting-yard algorithm, and evaluates the postfix
// sequence on a stack. "2^3^2" is "2^(3^2)", and "2*-3" is "2*(-3)".
//
// Evaluate is safe for concurrent use. Each call keeps all of its state
// local.
package calc
