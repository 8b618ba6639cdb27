package calc

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// yields reports whether an operator already on the stack must be output
// before p is pushed.
func (p operator) yields(top operator) bool {
	if p.prec != top.prec {
		return top.prec > p.prec
	}
	return !p.right
}

// opinfo gets the precedence and associativity of an operator. Unknown
// operators have the lowest precedence and are left for the evaluator to
// reject.
func opinfo(op Op) operator {
	switch op {
	case OpAdd, OpSub:
		return operator{1, false}
	case OpMul, OpDiv:
		return operator{2, false}
	case OpPow:
		return operator{3, true}
	case OpNeg:
		return operator{4, true}
	default:
		return operator{}
	}
}

// ToPostfix converts annotated infix tokens to postfix order using the
// shunting-yard algorithm. The result contains no parentheses.
func ToPostfix(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	var stack []Token
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNum:
			out = append(out, tok)
		case TokenOp:
			p := opinfo(tok.Op)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == TokenLeftParen || !p.yields(opinfo(top.Op)) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case TokenLeftParen:
			stack = append(stack, tok)
		case TokenRightParen:
			for {
				if len(stack) == 0 {
					return nil, &ParseError{Col: tok.Pos, Problem: UnmatchedClose}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == TokenLeftParen {
					break
				}
				out = append(out, top)
			}
		default:
			panic("calc: unknown token kind: " + tok.Kind.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == TokenLeftParen {
			return nil, &ParseError{Col: top.Pos, Problem: UnclosedOpen}
		}
		out = append(out, top)
	}
	return out, nil
}
