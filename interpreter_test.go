package calqmath

import "testing"

func TestInterpreterInterpretValue(t *testing.T) {
	in := NewInterpreter(64)
	got, err := in.InterpretValue("1+2*3")
	if err != nil {
		t.Fatalf("interpreting: %v", err)
	}
	if got.String() != "7" {
		t.Errorf("want 7, got %s", got.String())
	}
}

func TestInterpreterInterpretAt(t *testing.T) {
	in := NewInterpreter(64)
	x := ScalarFromDecimalString("3", 64)
	got, err := in.InterpretAt("x*x+1", x)
	if err != nil {
		t.Fatalf("interpreting: %v", err)
	}
	if got.String() != "10" {
		t.Errorf("want 10, got %s", got.String())
	}
}

func TestInterpreterLexErrorKind(t *testing.T) {
	in := NewInterpreter(64)
	_, err := in.InterpretValue("1 $ 2")
	ie, ok := err.(*InterpretError)
	if !ok {
		t.Fatalf("want an *InterpretError, got %T (%v)", err, err)
	}
	if ie.Kind != LexErrorKind {
		t.Errorf("want LexErrorKind, got %v", ie.Kind)
	}
}

func TestInterpreterParseErrorKind(t *testing.T) {
	in := NewInterpreter(64)
	_, err := in.InterpretValue("1+")
	ie, ok := err.(*InterpretError)
	if !ok {
		t.Fatalf("want an *InterpretError, got %T (%v)", err, err)
	}
	if ie.Kind != ParseErrorKind {
		t.Errorf("want ParseErrorKind, got %v", ie.Kind)
	}
}

func TestInterpreterEvaluationErrorKind(t *testing.T) {
	in := NewInterpreter(64)
	_, err := in.InterpretValue("x")
	ie, ok := err.(*InterpretError)
	if !ok {
		t.Fatalf("want an *InterpretError, got %T (%v)", err, err)
	}
	if ie.Kind != EvaluationErrorKind {
		t.Errorf("want EvaluationErrorKind, got %v", ie.Kind)
	}
}

func TestInterpreterPrettify(t *testing.T) {
	in := NewInterpreter(64)
	if got := in.Prettify("1 2 + 3 \t*\n4"); got != "12+3*4" {
		t.Errorf("want whitespace stripped, got %s", got)
	}
	// Prettify must not validate or evaluate: malformed input is echoed back
	// with its whitespace removed, not rejected.
	if got := in.Prettify("1 + + 2"); got != "1++2" {
		t.Errorf("want incomplete input echoed unevaluated, got %s", got)
	}
}

func TestInterpreterPrettifyIsIdempotent(t *testing.T) {
	in := NewInterpreter(64)
	src := "1 + sin( x )"
	once := in.Prettify(src)
	twice := in.Prettify(once)
	if once != twice {
		t.Errorf("prettify(prettify(s)) != prettify(s): %q vs %q", once, twice)
	}
}
