package calqmath

import (
	"math"
	"math/big"
)

// Sign classifies the sign of a non-NaN Scalar.
type Sign int8

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

// Scalar is an arbitrary-precision signed real number, possibly NaN or
// positive/negative infinity. The zero value is not a valid Scalar; use
// ScalarZero or one of the other constructors.
//
// math/big.Float, which backs Scalar, has no representation for NaN: an
// operation whose IEEE-754 equivalent is NaN instead panics with big.ErrNaN.
// Scalar recovers from that panic and records the NaN state explicitly in
// the nan field rather than leaning on the backend for it.
type Scalar struct {
	v   *big.Float
	nan bool
}

// ScalarZero returns the Scalar 0, at the current default precision.
func ScalarZero() Scalar {
	return scalarFromFloat(new(big.Float).SetPrec(currentDefaultPrecision()))
}

// ScalarNaN returns a NaN Scalar.
func ScalarNaN() Scalar {
	markScalarCreated()
	return Scalar{nan: true}
}

// ScalarPositiveInfinity returns positive infinity.
func ScalarPositiveInfinity() Scalar {
	v := new(big.Float).SetPrec(currentDefaultPrecision())
	v.SetInf(false)
	return scalarFromFloat(v)
}

// ScalarNegativeInfinity returns negative infinity.
func ScalarNegativeInfinity() Scalar {
	v := new(big.Float).SetPrec(currentDefaultPrecision())
	v.SetInf(true)
	return scalarFromFloat(v)
}

func scalarFromFloat(v *big.Float) Scalar {
	markScalarCreated()
	return Scalar{v: v}
}

// ScalarFromDecimalString parses s, a decimal string matching
// [+-]?(\d+\.?\d*|\.\d+), into a Scalar at the given precision (clamped to
// [PrecisionMin, PrecisionMax]). The lexer is responsible for keeping
// ill-formed strings from reaching this call; callers that pass malformed
// input get an implementation-defined result rather than an error.
func ScalarFromDecimalString(s string, precisionBits uint) Scalar {
	prec := clampPrecision(precisionBits)
	v, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
	if err != nil {
		return ScalarNaN()
	}
	return scalarFromFloat(v)
}

// ScalarFromFloat64 converts x to a Scalar at the given precision, exactly
// within that precision.
func ScalarFromFloat64(x float64, precisionBits uint) Scalar {
	prec := clampPrecision(precisionBits)
	v := new(big.Float).SetPrec(prec).SetFloat64(x)
	return scalarFromFloat(v)
}

func (s Scalar) big() *big.Float {
	if s.v == nil {
		return new(big.Float)
	}
	return s.v
}

// Prec returns the mantissa precision, in bits, backing s. NaN scalars
// report the current default precision.
func (s Scalar) Prec() uint {
	if s.nan || s.v == nil {
		return currentDefaultPrecision()
	}
	return s.v.Prec()
}

// IsNaN reports whether s is NaN.
func (s Scalar) IsNaN() bool {
	return s.nan
}

// IsInf reports whether s is positive or negative infinity.
func (s Scalar) IsInf() bool {
	return !s.nan && s.v != nil && s.v.IsInf()
}

// Sign reports the sign of s. Its result is unspecified for NaN; callers
// must check IsNaN first.
func (s Scalar) Sign() Sign {
	if s.nan {
		return Zero
	}
	switch s.big().Sign() {
	case -1:
		return Negative
	case 1:
		return Positive
	default:
		return Zero
	}
}

// Neg returns -s. NaN stays NaN.
func (s Scalar) Neg() Scalar {
	if s.nan {
		return ScalarNaN()
	}
	v := new(big.Float).SetPrec(s.Prec())
	v.Neg(s.big())
	return scalarFromFloat(v)
}

// Add returns s + t, at a precision no less than the greater of the two
// operand precisions. 0/0-like indeterminate forms (here: +Inf + -Inf and
// its mirror) become NaN; NaN propagates from either operand.
func (s Scalar) Add(t Scalar) Scalar {
	if s.nan || t.nan {
		return ScalarNaN()
	}
	return scalarBinary(s, t, (*big.Float).Add)
}

// Sub returns s - t. See Add for the NaN/Inf propagation rules, mirrored for
// subtraction (+Inf - +Inf and its mirror become NaN).
func (s Scalar) Sub(t Scalar) Scalar {
	if s.nan || t.nan {
		return ScalarNaN()
	}
	return scalarBinary(s, t, (*big.Float).Sub)
}

// Mul returns s * t. Zero times an infinity is NaN; NaN propagates.
func (s Scalar) Mul(t Scalar) Scalar {
	if s.nan || t.nan {
		return ScalarNaN()
	}
	return scalarBinary(s, t, (*big.Float).Mul)
}

// Quo returns s / t. Division by zero yields signed infinity (sign follows
// the numerator) unless the numerator is also zero, in which case the
// result is NaN; infinity divided by infinity is likewise NaN. NaN
// propagates from either operand.
func (s Scalar) Quo(t Scalar) Scalar {
	if s.nan || t.nan {
		return ScalarNaN()
	}
	return scalarBinary(s, t, (*big.Float).Quo)
}

func scalarBinary(s, t Scalar, op func(z, x, y *big.Float) *big.Float) (result Scalar) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(big.ErrNaN); ok {
				result = ScalarNaN()
				return
			}
			panic(r)
		}
	}()
	prec := s.Prec()
	if t.Prec() > prec {
		prec = t.Prec()
	}
	v := new(big.Float).SetPrec(prec)
	op(v, s.big(), t.big())
	return scalarFromFloat(v)
}

// Equal reports whether s and t compare equal per the backend's comparison.
// NaN never compares equal to anything, including another NaN.
func (s Scalar) Equal(t Scalar) bool {
	if s.nan || t.nan {
		return false
	}
	return s.big().Cmp(t.big()) == 0
}

// ToFloat64 converts s to the nearest float64. This is lossy and intended
// only for the plotting collaborator.
func (s Scalar) ToFloat64() float64 {
	if s.nan {
		return math.NaN()
	}
	f, _ := s.big().Float64()
	return f
}

