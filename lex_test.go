package calqmath

import (
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []token
		errs   int
	}{
		{"", []token{{kind: tokenEOF, pos: 1}}, 0},
		{"   \t\n  ", []token{{kind: tokenEOF, pos: 1}}, 0},
		{"0", []token{{kind: tokenNumber, text: "0", pos: 1}}, 0},
		{"12.34", []token{{kind: tokenNumber, text: "12.34", pos: 1}}, 0},
		{".5", []token{{kind: tokenNumber, text: ".5", pos: 1}}, 0},
		{"1.2.3", nil, 1},
		{".", nil, 1},
		{"x", []token{{kind: tokenIdentifier, text: "x", pos: 1}}, 0},
		{"sin", []token{{kind: tokenIdentifier, text: "sin", pos: 1}}, 0},
		{"1+2", []token{
			{kind: tokenNumber, text: "1", pos: 1},
			{kind: tokenOperator, text: "+", pos: 2},
			{kind: tokenNumber, text: "2", pos: 3},
		}, 0},
		{"(x)", []token{
			{kind: tokenOpenBracket, text: "(", pos: 1},
			{kind: tokenIdentifier, text: "x", pos: 2},
			{kind: tokenCloseBracket, text: ")", pos: 3},
		}, 0},
		{"1 $ 2", nil, 1},
	}

	for _, c := range cases {
		lx := newLexer(strings.NewReader(c.src))
		if c.tokens == nil {
			// Drain to EOF, counting the errors along the way.
			errs := 0
			for {
				tok, err := lx.next()
				if err != nil {
					errs++
					continue
				}
				if tok.kind == tokenEOF {
					break
				}
			}
			if errs != c.errs {
				t.Errorf("lexing %q: want %d errors, got %d", c.src, c.errs, errs)
			}
			continue
		}
		for _, want := range c.tokens {
			got, err := lx.next()
			if err != nil {
				t.Errorf("lexing %q: unexpected error %v", c.src, err)
				break
			}
			if got != want {
				t.Errorf("lexing %q: want %+v, got %+v", c.src, want, got)
			}
		}
	}
}

func TestLexNumberRejectsSecondDot(t *testing.T) {
	lx := newLexer(strings.NewReader("1.2.3"))
	if _, err := lx.next(); err == nil {
		t.Errorf("expected an error scanning 1.2.3, got none")
	}
}

// TestLexWhitespaceIsEliminatedNotSeparating verifies whitespace is
// stripped before tokenizing, even in the middle of what would otherwise be
// a single number or identifier, rather than acting as a token separator.
func TestLexWhitespaceIsEliminatedNotSeparating(t *testing.T) {
	withSpaces := newLexer(strings.NewReader("1 2 3 . 4"))
	without := newLexer(strings.NewReader("123.4"))
	for {
		gotTok, gotErr := withSpaces.next()
		wantTok, wantErr := without.next()
		if (gotErr == nil) != (wantErr == nil) {
			t.Fatalf("error mismatch: got %v, want %v", gotErr, wantErr)
		}
		if gotErr != nil {
			return
		}
		if gotTok.kind != wantTok.kind || gotTok.text != wantTok.text {
			t.Errorf("token mismatch: got %+v, want %+v", gotTok, wantTok)
		}
		if gotTok.kind == tokenEOF {
			return
		}
	}
}
