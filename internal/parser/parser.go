// Package parser decodes JSON text into a value.Value tree.
//
// The parser is a single-pass recursive-descent parser over a lookahead-1
// cursor of Unicode code points. Each grammar production decides its path
// from at most one unconsumed character, so no backtracking is ever needed.
// The parser performs no I/O; callers hand it a complete string.
package parser

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/mcncl/jsonv/internal/value"
)

// ErrorKind categorizes parse failures.
type ErrorKind int

const (
	// UnexpectedEndOfInput means the input ended while a production
	// expected more characters.
	UnexpectedEndOfInput ErrorKind = iota
	// UnexpectedToken means a character was seen that no active
	// production accepts at that position.
	UnexpectedToken
	// UnterminatedString means an opening quote had no matching
	// unescaped closing quote before end of input.
	UnterminatedString
	// InvalidEscapeSequence means a backslash was followed by a
	// character outside the recognized escape set, or a \u escape did
	// not decode to a Unicode scalar value.
	InvalidEscapeSequence
	// InvalidNumber means the accumulated numeric character run does
	// not form a valid 64-bit float.
	InvalidNumber
	// InvalidLiteral means an alphabetic run did not exactly match
	// true, false or null.
	InvalidLiteral
	// TrailingCharacters means non-whitespace content remained after a
	// complete top-level value.
	TrailingCharacters
)

// String returns a short name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case UnexpectedToken:
		return "unexpected token"
	case UnterminatedString:
		return "unterminated string"
	case InvalidEscapeSequence:
		return "invalid escape sequence"
	case InvalidNumber:
		return "invalid number"
	case InvalidLiteral:
		return "invalid literal"
	case TrailingCharacters:
		return "trailing characters"
	}
	return "parse error"
}

// ParseError describes the first failure encountered in a left-to-right
// scan of the input. Token carries the offending character for
// UnexpectedToken and InvalidEscapeSequence; Literal carries the
// accumulated text for InvalidLiteral.
type ParseError struct {
	Kind    ErrorKind
	Token   rune
	Literal string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token: %q", e.Token)
	case UnterminatedString:
		return "unterminated string"
	case InvalidEscapeSequence:
		return fmt.Sprintf("invalid escape sequence: '\\%c'", e.Token)
	case InvalidNumber:
		return "invalid number format"
	case InvalidLiteral:
		return fmt.Sprintf("invalid literal: %q", e.Literal)
	case TrailingCharacters:
		return "trailing characters after valid JSON"
	}
	return "parse error"
}

// Is matches two ParseErrors by kind, so callers can probe with errors.Is
// without caring about the offending character.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Parse decodes a single JSON value from input. Leading and trailing
// whitespace is allowed; any other content after the first value is a
// TrailingCharacters error. On failure the returned error is always a
// *ParseError and the returned Value is null.
//
// Nesting depth is unbounded: each nested array or object consumes one
// stack frame, so adversarially deep input is limited only by the
// runtime's stack ceiling.
func Parse(input string) (value.Value, error) {
	p := &parser{src: []rune(input)}
	v, err := p.parseValue()
	if err != nil {
		return value.Null(), err
	}
	p.skipWhitespace()
	if _, ok := p.peek(); ok {
		return value.Null(), &ParseError{Kind: TrailingCharacters}
	}
	return v, nil
}

type parser struct {
	src []rune
	pos int
}

// peek returns the next code point without consuming it.
func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

// next consumes and returns the next code point.
func (p *parser) next() (rune, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	c := p.src[p.pos]
	p.pos++
	return c, true
}

func (p *parser) skipWhitespace() {
	for {
		c, ok := p.peek()
		if !ok || !unicode.IsSpace(c) {
			return
		}
		p.pos++
	}
}

// parseValue is the dispatch production: after skipping whitespace the
// next character deterministically selects the branch.
func (p *parser) parseValue() (value.Value, error) {
	p.skipWhitespace()
	c, ok := p.peek()
	if !ok {
		return value.Null(), &ParseError{Kind: UnexpectedEndOfInput}
	}
	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseString()
	case c == 't' || c == 'f' || c == 'n':
		return p.parseLiteral()
	case c == '-' || isDigit(c):
		return p.parseNumber()
	default:
		return value.Null(), &ParseError{Kind: UnexpectedToken, Token: c}
	}
}

// parseString consumes "..." including the surrounding quotes. The
// recognized escapes are \" \\ \/ \b \f \n \r \t and \uXXXX with exactly
// four hex digits. Each \u escape is decoded independently: a code unit
// that is not a Unicode scalar value on its own (a lone surrogate half)
// is rejected rather than paired with an adjacent escape.
func (p *parser) parseString() (value.Value, error) {
	p.next() // opening '"'
	var s strings.Builder
	for {
		c, ok := p.next()
		if !ok {
			return value.Null(), &ParseError{Kind: UnterminatedString}
		}
		switch c {
		case '"':
			return value.String(s.String()), nil
		case '\\':
			esc, ok := p.next()
			if !ok {
				return value.Null(), &ParseError{Kind: UnterminatedString}
			}
			switch esc {
			case '"', '\\', '/':
				s.WriteRune(esc)
			case 'b':
				s.WriteRune('\b')
			case 'f':
				s.WriteRune('\f')
			case 'n':
				s.WriteRune('\n')
			case 'r':
				s.WriteRune('\r')
			case 't':
				s.WriteRune('\t')
			case 'u':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return value.Null(), err
				}
				s.WriteRune(r)
			default:
				return value.Null(), &ParseError{Kind: InvalidEscapeSequence, Token: esc}
			}
		default:
			s.WriteRune(c)
		}
	}
}

// parseUnicodeEscape decodes the four hex digits after \u into a single
// code point.
func (p *parser) parseUnicodeEscape() (rune, error) {
	var hex strings.Builder
	for i := 0; i < 4; i++ {
		c, ok := p.next()
		if !ok {
			return 0, &ParseError{Kind: UnterminatedString}
		}
		hex.WriteRune(c)
	}
	code, err := strconv.ParseUint(hex.String(), 16, 32)
	if err != nil {
		return 0, &ParseError{Kind: InvalidEscapeSequence, Token: 'u'}
	}
	r := rune(code)
	if utf16.IsSurrogate(r) {
		return 0, &ParseError{Kind: InvalidEscapeSequence, Token: 'u'}
	}
	return r, nil
}

// parseNumber greedily accumulates the candidate character run and defers
// correctness to strconv.ParseFloat. Malformed runs such as "--1" are
// therefore detected late, after all candidate characters are consumed.
// A run that overflows float64 yields an infinity rather than an error.
func (p *parser) parseNumber() (value.Value, error) {
	var num strings.Builder
	if c, ok := p.peek(); ok && c == '-' {
		num.WriteRune(c)
		p.pos++
	}
	for {
		c, ok := p.peek()
		if !ok {
			break
		}
		if isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			num.WriteRune(c)
			p.pos++
		} else {
			break
		}
	}
	n, err := strconv.ParseFloat(num.String(), 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return value.Null(), &ParseError{Kind: InvalidNumber}
	}
	return value.Number(n), nil
}

// parseArray consumes [...] with comma-separated elements.
func (p *parser) parseArray() (value.Value, error) {
	p.next() // '['
	var elems []value.Value
	p.skipWhitespace()
	if c, ok := p.peek(); ok && c == ']' {
		p.next()
		return value.Array(), nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return value.Null(), err
		}
		elems = append(elems, v)
		p.skipWhitespace()
		c, ok := p.next()
		switch {
		case !ok:
			return value.Null(), &ParseError{Kind: UnexpectedEndOfInput}
		case c == ']':
			return value.Array(elems...), nil
		case c == ',':
			continue
		default:
			return value.Null(), &ParseError{Kind: UnexpectedToken, Token: c}
		}
	}
}

// parseObject consumes {...} with comma-separated "key": value members.
// Keys must be strings; duplicate keys overwrite silently, so the last
// write wins.
func (p *parser) parseObject() (value.Value, error) {
	p.next() // '{'
	members := make(map[string]value.Value)
	p.skipWhitespace()
	if c, ok := p.peek(); ok && c == '}' {
		p.next()
		return value.Object(members), nil
	}
	for {
		keyValue, err := p.parseValue()
		if err != nil {
			return value.Null(), err
		}
		key, ok := keyValue.AsString()
		if !ok {
			return value.Null(), &ParseError{Kind: UnexpectedToken, Token: '"'}
		}

		p.skipWhitespace()
		if c, ok := p.next(); !ok || c != ':' {
			return value.Null(), &ParseError{Kind: UnexpectedToken, Token: ':'}
		}

		v, err := p.parseValue()
		if err != nil {
			return value.Null(), err
		}
		members[key] = v

		p.skipWhitespace()
		c, ok := p.next()
		switch {
		case !ok:
			return value.Null(), &ParseError{Kind: UnexpectedEndOfInput}
		case c == '}':
			return value.Object(members), nil
		case c == ',':
			continue
		default:
			return value.Null(), &ParseError{Kind: UnexpectedToken, Token: c}
		}
	}
}

// parseLiteral accumulates consecutive letters and matches the run
// against exactly true, false or null. Accumulation only stops at the
// first non-letter, so both prefixes ("tru") and extensions ("trueish")
// fail with the full run in the error.
func (p *parser) parseLiteral() (value.Value, error) {
	var lit strings.Builder
	for {
		c, ok := p.peek()
		if !ok || !unicode.IsLetter(c) {
			break
		}
		lit.WriteRune(c)
		p.pos++
	}
	switch lit.String() {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	case "null":
		return value.Null(), nil
	default:
		return value.Null(), &ParseError{Kind: InvalidLiteral, Literal: lit.String()}
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
