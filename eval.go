package calc

import (
	"errors"
	"math"
	"strconv"
)

// operand is a value on the evaluation stack along with the position of the
// token that produced it.
type operand struct {
	v   float64
	pos int
}

// EvalPostfix evaluates a postfix token sequence with a single stack pass.
func EvalPostfix(postfix []Token) (float64, error) {
	if len(postfix) == 0 {
		return 0, &ParseError{Col: 0, Problem: EmptyExpression}
	}
	stack := make([]operand, 0, len(postfix)/2+1)
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			v, err := parseNum(tok)
			if err != nil {
				return 0, err
			}
			stack = append(stack, operand{v, tok.Pos})
		case TokenOp:
			n := arity(tok.Op)
			if n == 0 {
				return 0, &EvaluationError{Col: tok.Pos, Token: tok.String(), Problem: UnknownOperator}
			}
			if len(stack) < n {
				return 0, &ParseError{Col: tok.Pos, Problem: MissingOperand}
			}
			var r float64
			var problem EvalProblem
			if n == 1 {
				r = -stack[len(stack)-1].v
			} else {
				a, b := stack[len(stack)-2].v, stack[len(stack)-1].v
				r, problem = apply(tok.Op, a, b)
			}
			if problem == evalNone && (math.IsInf(r, 0) || math.IsNaN(r)) {
				problem = Overflow
			}
			if problem != evalNone {
				return 0, &EvaluationError{Col: tok.Pos, Token: tok.String(), Problem: problem}
			}
			stack = stack[:len(stack)-n]
			stack = append(stack, operand{r, tok.Pos})
		default:
			return 0, &EvaluationError{Col: tok.Pos, Token: tok.Text, Problem: InvalidToken}
		}
	}
	if len(stack) > 1 {
		return 0, &ParseError{Col: stack[1].pos, Problem: ExtraOperand}
	}
	return stack[0].v, nil
}

// parseNum converts a number token's lexeme to a float64.
func parseNum(tok Token) (float64, error) {
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &EvaluationError{Col: tok.Pos, Token: tok.Text, Problem: Overflow}
		}
		return 0, &EvaluationError{Col: tok.Pos, Token: tok.Text, Problem: InvalidToken}
	}
	return v, nil
}

// arity gets the number of operands an operator consumes, or 0 if the
// operator is unknown.
func arity(op Op) int {
	switch op {
	case OpNeg:
		return 1
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return 2
	default:
		return 0
	}
}

// apply computes a op b for a binary operator.
func apply(op Op, a, b float64) (float64, EvalProblem) {
	switch op {
	case OpAdd:
		return a + b, evalNone
	case OpSub:
		return a - b, evalNone
	case OpMul:
		return a * b, evalNone
	case OpDiv:
		if b == 0 {
			return 0, DivisionByZero
		}
		return a / b, evalNone
	case OpPow:
		switch {
		case a == 0 && b < 0:
			return 0, DivisionByZero
		case a < 0 && b != math.Trunc(b) && !math.IsInf(b, 0):
			return 0, NotReal
		}
		return math.Pow(a, b), evalNone
	default:
		return 0, UnknownOperator
	}
}
