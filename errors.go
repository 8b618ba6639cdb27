package calc

import "strconv"

// TokenizeError indicates input text that is not a number, operator, or
// parenthesis. It implements Error.
type TokenizeError struct {
	// Col is the rune offset of the first unrecognized character.
	Col int
	// Excerpt is a short piece of the unconsumed input starting at Col.
	Excerpt string
}

func (err *TokenizeError) Error() string {
	return "unexpected character at position " + strconv.Itoa(err.Col) + ": " + strconv.Quote(err.Excerpt)
}

func (err *TokenizeError) Pos() int {
	return err.Col
}

// ParseProblem describes the kind of structural malformation in a ParseError.
type ParseProblem int8

const (
	problemNone ParseProblem = iota
	// UnmatchedClose is a close parenthesis with no open parenthesis.
	UnmatchedClose
	// UnclosedOpen is an open parenthesis that is never closed.
	UnclosedOpen
	// MissingOperand is an operator without enough operands.
	MissingOperand
	// ExtraOperand is an operand that no operator consumes.
	ExtraOperand
	// EmptyExpression is input with nothing to evaluate.
	EmptyExpression
)

func (p ParseProblem) String() string {
	switch p {
	case UnmatchedClose, UnclosedOpen:
		return "mismatched parentheses"
	case MissingOperand:
		return "insufficient operands"
	case ExtraOperand:
		return "too many operands"
	case EmptyExpression:
		return "empty expression"
	default:
		return "ParseProblem(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParseError indicates a structurally invalid expression. It implements
// Error.
type ParseError struct {
	// Col is the position of the token that exposed the problem.
	Col int
	// Problem is the kind of malformation.
	Problem ParseProblem
}

func (err *ParseError) Error() string {
	return errpos(err.Col, err.Problem.String())
}

func (err *ParseError) Pos() int {
	return err.Col
}

// EvalProblem describes the kind of failure in an EvaluationError.
type EvalProblem int8

const (
	evalNone EvalProblem = iota
	// DivisionByZero is division by exactly zero, or zero raised to a
	// negative power.
	DivisionByZero
	// UnknownOperator is a token the evaluator cannot apply.
	UnknownOperator
	// NotReal is a power of a negative base with a fractional exponent.
	NotReal
	// Overflow is a number or result too large to represent.
	Overflow
	// InvalidToken is a token that is neither a number nor an operator.
	InvalidToken
)

func (p EvalProblem) String() string {
	switch p {
	case DivisionByZero:
		return "division by zero"
	case UnknownOperator:
		return "unknown operator"
	case NotReal:
		return "result is not a real number"
	case Overflow:
		return "numeric overflow"
	case InvalidToken:
		return "invalid token"
	default:
		return "EvalProblem(" + strconv.Itoa(int(p)) + ")"
	}
}

// EvaluationError indicates a semantically invalid operation. It implements
// Error.
type EvaluationError struct {
	// Col is the position of the operator or number that failed.
	Col int
	// Token is the text of that operator or number.
	Token string
	// Problem is the kind of failure.
	Problem EvalProblem
}

func (err *EvaluationError) Error() string {
	switch err.Problem {
	case UnknownOperator, InvalidToken:
		return errpos(err.Col, err.Problem.String()+" "+strconv.Quote(err.Token))
	}
	return errpos(err.Col, err.Problem.String())
}

func (err *EvaluationError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return msg + " at position " + strconv.Itoa(pos)
}

// Error is an error with position information. Every error resulting from
// invalid input is one of *TokenizeError, *ParseError, or *EvaluationError,
// and each implements Error.
type Error interface {
	error
	// Pos returns the 0-based rune offset in the input of the character or
	// token that caused the error.
	Pos() int
}

var (
	_ Error = (*TokenizeError)(nil)
	_ Error = (*ParseError)(nil)
	_ Error = (*EvaluationError)(nil)
)
