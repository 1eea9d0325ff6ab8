package calqmath

import (
	"strings"
	"unicode"
)

// Interpreter ties a FunctionRegistry to the lexer, parser, and evaluator
// to turn source text directly into a Scalar or a typed InterpretError. It
// holds no other state and is safe for concurrent use, since a
// FunctionRegistry is immutable once built.
type Interpreter struct {
	fns *FunctionRegistry
}

// NewInterpreter installs precisionBits as the process-wide default
// precision (clamped to [PrecisionBitsMin(), PrecisionBitsMax()]) via
// Initialize, then builds an Interpreter around the default function
// catalog. As with Initialize itself, constructing a second Interpreter at
// a different precision after Scalars already exist panics; callers that
// need more than one precision in a single process must pick it before any
// Scalar is made.
func NewInterpreter(precisionBits uint) *Interpreter {
	Initialize(precisionBits)
	return &Interpreter{
		fns: CreateFunctionRegistryWithDefaults(),
	}
}

// ParseExpression parses source into an Expression without evaluating it,
// wrapping any failure as a ParseErrorKind or LexErrorKind InterpretError.
func (in *Interpreter) ParseExpression(source string) (*Expression, error) {
	expr, err := ParseExpression(strings.NewReader(source), in.fns)
	if err != nil {
		return nil, wrapInputError(err)
	}
	return expr, nil
}

// InterpretValue parses and evaluates source with x unbound. It fails with
// an EvaluationErrorKind InterpretError if source references x.
func (in *Interpreter) InterpretValue(source string) (Scalar, error) {
	expr, err := in.ParseExpression(source)
	if err != nil {
		return Scalar{}, err
	}
	result, err := expr.Evaluate()
	if err != nil {
		return Scalar{}, &InterpretError{Kind: EvaluationErrorKind, Err: err}
	}
	return result, nil
}

// InterpretAt parses and evaluates source with x bound to variable.
func (in *Interpreter) InterpretAt(source string, variable Scalar) (Scalar, error) {
	expr, err := in.ParseExpression(source)
	if err != nil {
		return Scalar{}, err
	}
	result, err := expr.EvaluateAt(variable)
	if err != nil {
		return Scalar{}, &InterpretError{Kind: EvaluationErrorKind, Err: err}
	}
	return result, nil
}

// Prettify returns source with all whitespace removed. It does not validate
// or evaluate source, so it never fails: it echoes back possibly-incomplete
// input as the user is still typing it, not a computed result. Use
// InterpretValue or InterpretAt for that.
func (in *Interpreter) Prettify(source string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, source)
}

// Functions returns the interpreter's function catalog.
func (in *Interpreter) Functions() *FunctionRegistry {
	return in.fns
}

func wrapInputError(err error) error {
	switch err.(type) {
	case *LexError:
		return &InterpretError{Kind: LexErrorKind, Err: err}
	default:
		return &InterpretError{Kind: ParseErrorKind, Err: err}
	}
}
