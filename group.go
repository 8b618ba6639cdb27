package calc

import "strings"

// grouped is a rendered subexpression, its nesting height, and the position
// of the token that produced it.
type grouped struct {
	s   string
	h   int
	pos int
}

// Group renders postfix tokens as infix with every operation bracketed, so
// the grouping the converter chose is explicit. Brackets alternate between
// round and square by nesting height: "2+3*4" is "[2 + (3 * 4)]". Group
// reports the same operand count errors as EvalPostfix.
func Group(postfix []Token) (string, error) {
	if len(postfix) == 0 {
		return "", &ParseError{Col: 0, Problem: EmptyExpression}
	}
	var stack []grouped
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			stack = append(stack, grouped{s: tok.Text, pos: tok.Pos})
		case TokenOp:
			n := arity(tok.Op)
			if n == 0 {
				return "", &EvaluationError{Col: tok.Pos, Token: tok.String(), Problem: UnknownOperator}
			}
			if len(stack) < n {
				return "", &ParseError{Col: tok.Pos, Problem: MissingOperand}
			}
			var b strings.Builder
			g := grouped{pos: tok.Pos}
			if n == 1 {
				x := stack[len(stack)-1]
				g.h = x.h + 1
				b.WriteString("-")
				b.WriteString(x.s)
			} else {
				x, y := stack[len(stack)-2], stack[len(stack)-1]
				g.h = max(x.h, y.h) + 1
				b.WriteString(x.s)
				b.WriteString(" " + tok.Op.String() + " ")
				b.WriteString(y.s)
			}
			g.s = bracket(b.String(), g.h)
			stack = append(stack[:len(stack)-n], g)
		default:
			return "", &EvaluationError{Col: tok.Pos, Token: tok.Text, Problem: InvalidToken}
		}
	}
	if len(stack) > 1 {
		return "", &ParseError{Col: stack[1].pos, Problem: ExtraOperand}
	}
	return stack[0].s, nil
}

func bracket(s string, h int) string {
	if h%2 == 0 {
		return "[" + s + "]"
	}
	return "(" + s + ")"
}
