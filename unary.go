package calc

// Annotate returns a copy of toks in which each - that begins the
// expression, follows an operator, or follows an open parenthesis is
// OpNeg instead of OpSub.
func Annotate(toks []Token) []Token {
	r := make([]Token, len(toks))
	prev := tokenNone
	for i, tok := range toks {
		if tok.Kind == TokenOp && tok.Op == OpSub {
			switch prev {
			case tokenNone, TokenOp, TokenLeftParen:
				tok.Op = OpNeg
			}
		}
		r[i] = tok
		prev = tok.Kind
	}
	return r
}
