package calqmath

import "testing"

func TestScalarStringWorkedExamples(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"0.00123", "1.23e-3"},
		{"0.0123", "0.012_3"},
		{"1.23", "1.23"},
		{"123", "123"},
		{"1230", "1_230"},
		{"12300000", "1.23e7"},
		{"0.1234567890123", "0.123_456_789"},
		{"1234567891234.5", "1.234_567_891e12"},
		{"-0.123", "-0.123"},
	}

	for _, c := range cases {
		v := ScalarFromDecimalString(c.src, 128)
		if got := v.String(); got != c.want {
			t.Errorf("String(%s): want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestScalarStringSpecialValues(t *testing.T) {
	if got := ScalarZero().String(); got != "0" {
		t.Errorf("zero: want %q, got %q", "0", got)
	}
	if got := ScalarNaN().String(); got != "NaN" {
		t.Errorf("NaN: want %q, got %q", "NaN", got)
	}
	if got := ScalarPositiveInfinity().String(); got != "Inf" {
		t.Errorf("+Inf: want %q, got %q", "Inf", got)
	}
	if got := ScalarNegativeInfinity().String(); got != "-Inf" {
		t.Errorf("-Inf: want %q, got %q", "-Inf", got)
	}
}

func TestGroupFromRight(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1230", "1_230"},
		{"1234567", "1_234_567"},
	}
	for _, c := range cases {
		if got := groupFromRight(c.in, 3); got != c.want {
			t.Errorf("groupFromRight(%q, 3): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestGroupFromLeft(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "123_4"},
		{"123456789", "123_456_789"},
	}
	for _, c := range cases {
		if got := groupFromLeft(c.in, 3); got != c.want {
			t.Errorf("groupFromLeft(%q, 3): want %q, got %q", c.in, c.want, got)
		}
	}
}
