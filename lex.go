package calqmath

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenNone tokenKind = iota
	tokenEOF
	tokenNumber
	tokenIdentifier
	tokenOperator
	tokenOpenBracket
	tokenCloseBracket
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case tokenNumber:
		return "Number"
	case tokenIdentifier:
		return "Identifier"
	case tokenOperator:
		return "Operator"
	case tokenOpenBracket:
		return "OpenBracket"
	case tokenCloseBracket:
		return "CloseBracket"
	default:
		return "None"
	}
}

// token is a single lexical token, with the rune position at which it
// starts.
type token struct {
	kind tokenKind
	text string
	pos  int
}

// operatorRunes is the set of runes the lexer recognizes as binary or unary
// operators. The grammar has exactly these four; there is no exponent
// operator.
const operatorRunes = "+-*/"

// lexer scans a rune stream into tokens one at a time.
type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

// newLexer strips every whitespace rune out of src before any tokenizing
// happens, so whitespace is eliminated rather than treated as a token
// separator: "1 2 3" must lex as the single number "123", not three
// separate tokens. The trimmed text is buffered up front (src is read to
// completion here) and replayed through a strings.Reader, which is itself
// an io.RuneScanner.
func newLexer(src io.RuneScanner) *lexer {
	var trimmed strings.Builder
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			break
		}
		if unicode.IsSpace(r) {
			continue
		}
		trimmed.WriteRune(r)
	}
	return &lexer{src: strings.NewReader(trimmed.String()), rune: 1}
}

func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token. Once EOF has been returned, subsequent calls
// keep returning EOF tokens rather than an error, so callers needn't track
// whether they've already seen it.
func (l *lexer) next() (token, error) {
	if l.eof {
		return token{kind: tokenEOF, pos: l.rune}, nil
	}
	defer l.buf.Reset()
	tok := token{pos: l.rune}
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.eof = true
			tok.kind = tokenEOF
			return tok, nil
		}
		return token{}, err
	}
	switch {
	case r == '.' || ('0' <= r && r <= '9'):
		l.unreadRune()
		text, err := l.scanNumber()
		if err != nil {
			return token{}, err
		}
		tok.kind = tokenNumber
		tok.text = text
		return tok, nil
	case unicode.IsLetter(r):
		l.unreadRune()
		tok.kind = tokenIdentifier
		tok.text = l.scanIdentifier()
		return tok, nil
	case r == '(':
		tok.kind = tokenOpenBracket
		tok.text = "("
		return tok, nil
	case r == ')':
		tok.kind = tokenCloseBracket
		tok.text = ")"
		return tok, nil
	case strings.ContainsRune(operatorRunes, r):
		tok.kind = tokenOperator
		tok.text = string(r)
		return tok, nil
	default:
		l.buf.WriteRune(r)
		return token{}, &LexError{Text: l.buf.String(), Col: tok.pos}
	}
}

// scanNumber scans [0-9]*\.?[0-9]+ | [0-9]+\.?[0-9]*, i.e. a decimal literal
// with at least one digit somewhere and at most one decimal point.
// Scientific notation is not part of the grammar.
func (l *lexer) scanNumber() (string, error) {
	start := l.rune
	var dot, dig bool
scan:
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		switch {
		case r == '.':
			if dot {
				l.buf.WriteRune(r)
				return "", &LexError{Text: l.buf.String(), Col: start}
			}
			dot = true
			l.buf.WriteRune(r)
		case '0' <= r && r <= '9':
			dig = true
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			break scan
		}
	}
	if !dig {
		return "", &LexError{Text: l.buf.String(), Col: start}
	}
	return l.buf.String(), nil
}

// scanIdentifier scans a maximal run of letters and digits starting with a
// letter. The reserved variable "x" and every function name are lexed the
// same way; the parser distinguishes them.
func (l *lexer) scanIdentifier() string {
	for {
		r, err := l.readRune()
		if err != nil {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			l.buf.WriteRune(r)
			continue
		}
		l.unreadRune()
		break
	}
	return l.buf.String()
}
