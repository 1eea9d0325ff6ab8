package calqmath

import (
	"strings"
	"testing"
)

func evalString(t *testing.T, src string) Scalar {
	t.Helper()
	expr := mustParse(t, src)
	v, err := expr.Evaluate()
	if err != nil {
		t.Fatalf("evaluating %q: %v", src, err)
	}
	return v
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1+2*3", "7"},
		{"2*3+1", "7"},
		{"10-2-3", "5"},
		{"10/2/5", "1"},
		{"2*3-4/2", "4"},
		{"-2*3", "-6"},
		{"-(2+3)", "-5"},
		{"2*(3+4)", "14"},
	}
	for _, c := range cases {
		if got := evalString(t, c.src).String(); got != c.want {
			t.Errorf("eval(%q): want %s, got %s", c.src, c.want, got)
		}
	}
}

func TestEvalFunctionCall(t *testing.T) {
	got := evalString(t, "sqrt(4)").String()
	if got != "2" {
		t.Errorf("sqrt(4): want 2, got %s", got)
	}
}

func TestEvalAtVariable(t *testing.T) {
	expr := mustParse(t, "x*x+1")
	three := ScalarFromDecimalString("3", 64)
	got, err := expr.EvaluateAt(three)
	if err != nil {
		t.Fatalf("evaluating x*x+1 at 3: %v", err)
	}
	if got.String() != "10" {
		t.Errorf("x*x+1 at x=3: want 10, got %s", got.String())
	}
}

func TestEvalUnboundVariableFails(t *testing.T) {
	expr := mustParse(t, "x+1")
	if _, err := expr.Evaluate(); err == nil {
		t.Errorf("expected an error evaluating x+1 with x unbound")
	}
}

func TestHasVariableThroughNesting(t *testing.T) {
	expr, err := ParseExpression(strings.NewReader("sin((x+1)*2)"), CreateFunctionRegistryWithDefaults())
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if !expr.HasVariable() {
		t.Errorf("expected HasVariable to see through nested groups and calls")
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	got := evalString(t, "1/0")
	if !got.IsInf() {
		t.Errorf("1/0: want infinity, got %s", got.String())
	}
}
