// Package calqmath implements an arbitrary-precision floating-point
// calculator engine.
//
// The grammar is intentionally small: decimal numbers, the single reserved
// variable "x", named unary functions applied with parentheses, the four
// standard binary operators, and parenthesized grouping. There is no
// implicit multiplication, no exponent operator, and no user-defined
// functions. An Interpreter ties a lexer, a parser, and a FunctionRegistry
// together to turn source text into either a Scalar result or a typed
// InterpretError.
package calqmath
