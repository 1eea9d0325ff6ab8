package calqmath

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a named unary scalar function, as stored in a FunctionRegistry.
type Func func(Scalar) Scalar

// FunctionRef is an immutable, shared reference to a (name, Func) pair held
// by a FunctionRegistry. Multiple Expressions may reference the same entry;
// the registry that produced a FunctionRef outlives any Expression derived
// from it.
type FunctionRef struct {
	name string
	fn   Func
}

// Name returns the identifier this function is registered under.
func (f *FunctionRef) Name() string {
	return f.name
}

// Call applies the function to v.
func (f *FunctionRef) Call(v Scalar) Scalar {
	return f.fn(v)
}

// reservedVariableName is the only identifier a FunctionRegistry may never
// bind: it names the free variable in source text.
const reservedVariableName = "x"

// FunctionRegistry is an immutable mapping from identifier to FunctionRef,
// consulted by the parser (to bind identifiers to functions) and indirectly
// by the evaluator (through the FunctionRef each Expression node holds).
type FunctionRegistry struct {
	byName map[string]*FunctionRef
	sorted []*FunctionRef
}

// CreateFunctionRegistryWithDefaults builds a FunctionRegistry seeded with
// the default catalog (§4.2): id, abs, ceil, floor, round, roundeven, trunc,
// sqrt, cbrt, exp, log, log2, erf, erfc, gamma, sin, csc, asin, cos, sec,
// acos, tan, cot, atan, sinh, cosh, tanh, asinh, acosh, atanh. It panics if
// the reserved name "x" would collide with a catalog entry — a programming
// error in the catalog, never a runtime condition.
func CreateFunctionRegistryWithDefaults() *FunctionRegistry {
	entries := map[string]Func{
		"id":        scalarID,
		"abs":       scalarAbs,
		"ceil":      scalarCeil,
		"floor":     scalarFloor,
		"round":     scalarRound,
		"roundeven": scalarRoundEven,
		"trunc":     scalarTrunc,
		"sqrt":      scalarSqrt,
		"cbrt":      scalarCbrt,
		"exp":       scalarExp,
		"log":       scalarLog,
		"log2":      scalarLog2,
		"erf":       scalarErf,
		"erfc":      scalarErfc,
		"gamma":     scalarGamma,
		"sin":       scalarSin,
		"csc":       scalarCsc,
		"asin":      scalarAsin,
		"cos":       scalarCos,
		"sec":       scalarSec,
		"acos":      scalarAcos,
		"tan":       scalarTan,
		"cot":       scalarCot,
		"atan":      scalarAtan,
		"sinh":      scalarSinh,
		"cosh":      scalarCosh,
		"tanh":      scalarTanh,
		"asinh":     scalarAsinh,
		"acosh":     scalarAcosh,
		"atanh":     scalarAtanh,
	}
	if _, reserved := entries[reservedVariableName]; reserved {
		panic("calqmath: reserved name " + reservedVariableName + " present in default catalog")
	}

	reg := &FunctionRegistry{byName: make(map[string]*FunctionRef, len(entries))}
	for name, fn := range entries {
		reg.byName[name] = &FunctionRef{name: name, fn: fn}
	}
	reg.sorted = make([]*FunctionRef, 0, len(reg.byName))
	for _, ref := range reg.byName {
		reg.sorted = append(reg.sorted, ref)
	}
	sortFunctionRefs(reg.sorted)
	return reg
}

// Lookup returns the FunctionRef bound to name, or nil if none exists.
func (r *FunctionRegistry) Lookup(name string) *FunctionRef {
	return r.byName[name]
}

// Names returns the catalog's FunctionRefs in stable, lexicographically
// sorted order.
func (r *FunctionRegistry) Names() []*FunctionRef {
	out := make([]*FunctionRef, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// sortFunctionRefs sorts by name in place without pulling in package sort's
// reflection-based Slice.
func sortFunctionRefs(refs []*FunctionRef) {
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && refs[j].name < refs[j-1].name; j-- {
			refs[j], refs[j-1] = refs[j-1], refs[j]
		}
	}
}

func scalarID(v Scalar) Scalar { return v }

func scalarAbs(v Scalar) Scalar {
	if v.IsNaN() {
		return ScalarNaN()
	}
	z := new(big.Float).SetPrec(v.Prec())
	z.Abs(v.big())
	return scalarFromFloat(z)
}

func scalarSqrt(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		if x.Sign() < 0 {
			panic(big.ErrNaN{})
		}
		return z.Sqrt(x)
	})
}

func scalarCbrt(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		neg := x.Sign() < 0
		arg := x
		if neg {
			arg = new(big.Float).SetPrec(x.Prec()).Neg(x)
		}
		third := new(big.Float).SetPrec(x.Prec()).Quo(big.NewFloat(1), big.NewFloat(3))
		r := bigfloat.Pow(new(big.Float).SetPrec(x.Prec()), arg, third)
		if neg {
			r.Neg(r)
		}
		return z.Set(r)
	})
}

func scalarExp(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		return bigfloat.Exp(z, x)
	})
}

func scalarLog(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		if x.Sign() <= 0 {
			panic(big.ErrNaN{})
		}
		return bigfloat.Log(z, x)
	})
}

func scalarLog2(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		if x.Sign() <= 0 {
			panic(big.ErrNaN{})
		}
		ln2 := bigfloat.Log(new(big.Float).SetPrec(x.Prec()), new(big.Float).SetPrec(x.Prec()).SetInt64(2))
		lnx := bigfloat.Log(new(big.Float).SetPrec(x.Prec()), x)
		return z.Quo(lnx, ln2)
	})
}

// unaryFloatOp runs op against v's backing big.Float at v's precision,
// recovering big.ErrNaN panics into a NaN Scalar.
func unaryFloatOp(v Scalar, op func(z, x *big.Float) *big.Float) (result Scalar) {
	if v.IsNaN() {
		return ScalarNaN()
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(big.ErrNaN); ok {
				result = ScalarNaN()
				return
			}
			panic(r)
		}
	}()
	z := new(big.Float).SetPrec(v.Prec())
	op(z, v.big())
	return scalarFromFloat(z)
}

// The integer-rounding functions below work directly against big.Float and
// big.Int, since no third-party package offers a big.Float rounding helper.

func scalarTrunc(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		if x.IsInf() {
			return z.Set(x)
		}
		i, _ := x.Int(nil)
		return z.SetInt(i)
	})
}

func scalarFloor(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		if x.IsInf() {
			return z.Set(x)
		}
		i, _ := x.Int(nil)
		frac := new(big.Float).SetPrec(x.Prec()).Sub(x, new(big.Float).SetPrec(x.Prec()).SetInt(i))
		if x.Sign() < 0 && frac.Sign() != 0 {
			i.Sub(i, big.NewInt(1))
		}
		return z.SetInt(i)
	})
}

func scalarCeil(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		if x.IsInf() {
			return z.Set(x)
		}
		i, _ := x.Int(nil)
		frac := new(big.Float).SetPrec(x.Prec()).Sub(x, new(big.Float).SetPrec(x.Prec()).SetInt(i))
		if x.Sign() > 0 && frac.Sign() != 0 {
			i.Add(i, big.NewInt(1))
		}
		return z.SetInt(i)
	})
}

// scalarRound rounds half away from zero.
func scalarRound(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		if x.IsInf() {
			return z.Set(x)
		}
		i, _ := x.Int(nil)
		frac := new(big.Float).SetPrec(x.Prec()).Sub(x, new(big.Float).SetPrec(x.Prec()).SetInt(i))
		frac.Abs(frac)
		half := big.NewFloat(0.5)
		if frac.Cmp(half) >= 0 {
			if x.Sign() < 0 {
				i.Sub(i, big.NewInt(1))
			} else {
				i.Add(i, big.NewInt(1))
			}
		}
		return z.SetInt(i)
	})
}

// scalarRoundEven rounds half to even (banker's rounding).
func scalarRoundEven(v Scalar) Scalar {
	return unaryFloatOp(v, func(z, x *big.Float) *big.Float {
		if x.IsInf() {
			return z.Set(x)
		}
		i, _ := x.Int(nil)
		frac := new(big.Float).SetPrec(x.Prec()).Sub(x, new(big.Float).SetPrec(x.Prec()).SetInt(i))
		frac.Abs(frac)
		half := big.NewFloat(0.5)
		switch frac.Cmp(half) {
		case 1:
			bumpAwayFromZero(i, x.Sign())
		case 0:
			if isOddInt(i) {
				bumpAwayFromZero(i, x.Sign())
			}
		}
		return z.SetInt(i)
	})
}

func bumpAwayFromZero(i *big.Int, sign int) {
	if sign < 0 {
		i.Sub(i, big.NewInt(1))
	} else {
		i.Add(i, big.NewInt(1))
	}
}

func isOddInt(i *big.Int) bool {
	return i.Bit(0) == 1
}
