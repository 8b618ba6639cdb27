package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the kind of token.
	Kind TokenKind
	// Text is the lexeme. Numbers keep their literal text until evaluation.
	Text string
	// Op is the operator for TokenOp tokens.
	Op Op
	// Pos is the rune offset of the token in the input.
	Pos int
}

// String returns the token's text as it appears in postfix listings. The
// unary minus operator is written as ~ to distinguish it from subtraction.
func (t Token) String() string {
	if t.Kind == TokenOp {
		return t.Op.String()
	}
	return t.Text
}

// TokenKind is the kind of a Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNum is a numeric literal.
	TokenNum
	// TokenOp is an operator.
	TokenOp
	// TokenLeftParen is (.
	TokenLeftParen
	// TokenRightParen is ).
	TokenRightParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenLeftParen:
		return "LeftParen"
	case TokenRightParen:
		return "RightParen"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Op is an operator.
type Op int8

const (
	// OpNone is the zero Op. It is never produced by Tokenize.
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	// OpNeg is unary minus. Only Annotate produces it.
	OpNeg
)

// Operators contains the runes which are considered to be operators, in the
// order of OpAdd through OpPow.
const Operators = "+-*/^"

func (op Op) String() string {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return Operators[op-OpAdd : op-OpAdd+1]
	case OpNeg:
		return "~"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// FormatTokens joins the tokens with spaces, e.g. "2 3 4 * +".
func FormatTokens(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// excerptLen is the maximum number of runes of unconsumed input in a
// TokenizeError.
const excerptLen = 10

type lexer struct {
	src []rune
	off int
}

// Tokenize scans text into tokens, skipping whitespace.
func Tokenize(text string) ([]Token, error) {
	l := lexer{src: []rune(text)}
	var toks []Token
	for {
		tok, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// next scans the next token from the input. At the end of the input, the
// result is false with a nil error.
func (l *lexer) next() (Token, bool, error) {
	for l.off < len(l.src) && unicode.IsSpace(l.src[l.off]) {
		l.off++
	}
	if l.off >= len(l.src) {
		return Token{}, false, nil
	}
	tok := Token{Pos: l.off}
	r := l.src[l.off]
	switch {
	case '0' <= r && r <= '9', r == '.':
		text, ok := l.scanNum()
		if !ok {
			return tok, false, l.error()
		}
		tok.Kind = TokenNum
		tok.Text = text
		return tok, true, nil
	case r == '(':
		tok.Kind = TokenLeftParen
	case r == ')':
		tok.Kind = TokenRightParen
	default:
		k := strings.IndexRune(Operators, r)
		if k < 0 {
			return tok, false, l.error()
		}
		tok.Kind = TokenOp
		tok.Op = OpAdd + Op(k)
	}
	tok.Text = string(r)
	l.off++
	return tok, true, nil
}

// scanNum scans digits[.digits] or .digits. If there is no number at the
// current offset, the offset is unchanged and the result is false.
func (l *lexer) scanNum() (string, bool) {
	start := l.off
	whole := l.digits()
	if l.off < len(l.src) && l.src[l.off] == '.' {
		l.off++
		if frac := l.digits(); whole == 0 && frac == 0 {
			l.off = start
			return "", false
		}
	}
	return string(l.src[start:l.off]), true
}

func (l *lexer) digits() int {
	n := 0
	for l.off < len(l.src) && '0' <= l.src[l.off] && l.src[l.off] <= '9' {
		l.off++
		n++
	}
	return n
}

func (l *lexer) error() error {
	end := l.off + excerptLen
	if end > len(l.src) {
		end = len(l.src)
	}
	return &TokenizeError{
		Col:     l.off,
		Excerpt: string(l.src[l.off:end]),
	}
}
