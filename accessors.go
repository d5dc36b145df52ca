package vktor

import (
	"fmt"
	"strconv"
)

// TokenKind returns the kind of the most recently read token. Before the
// first successful call to Parse it is KindNone.
func (p *Parser) TokenKind() Kind {
	return p.kind
}

// Depth returns the nesting depth of the most recently read token: 0 at
// the top level, 1 inside the outermost array or object, and so on.
func (p *Parser) Depth() int {
	return p.depth
}

// CurrentContainer returns the kind of container the most recently read
// token belongs to, or ContainerNone at the top level.
func (p *Parser) CurrentContainer() Container {
	return p.container
}

// ValueLong returns the current token's value as an int64, via the
// longest valid leading integer prefix of its text — mirroring strtol's
// prefix-parsing behavior in the C library this ports. Valid for any
// token with a value (KindInt, KindFloat, KindString, KindObjectKey);
// container and keyword tokens have no value to parse.
func (p *Parser) ValueLong() (int64, error) {
	if !p.hasValue {
		return 0, fmt.Errorf("%w: current token has no value", ErrNoValue)
	}
	n, _, err := parseLongPrefix(p.buf.buf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return n, nil
}

// ValueDouble returns the current token's value as a float64, parsed
// from its full text (mirroring strtod). Valid for any token with a
// value.
func (p *Parser) ValueDouble() (float64, error) {
	if !p.hasValue {
		return 0, fmt.Errorf("%w: current token has no value", ErrNoValue)
	}
	f, err := strconv.ParseFloat(p.buf.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return f, nil
}

// ValueStringBorrow returns the current token's string value as a slice
// aliasing the parser's internal buffer. The slice is only valid until
// the next call to Parse; callers that need to retain it across calls
// must copy it, or use ValueStringCopy instead. Valid for KindString and
// KindObjectKey tokens.
func (p *Parser) ValueStringBorrow() ([]byte, error) {
	if p.kind != KindString && p.kind != KindObjectKey {
		return nil, fmt.Errorf("%w: current token is not a string", ErrNoValue)
	}
	return p.buf.buf, nil
}

// ValueStringCopy returns the current token's string value as an
// independent copy, safe to retain past the next call to Parse. Valid
// for KindString and KindObjectKey tokens.
func (p *Parser) ValueStringCopy() (string, error) {
	if p.kind != KindString && p.kind != KindObjectKey {
		return "", fmt.Errorf("%w: current token is not a string", ErrNoValue)
	}
	return p.buf.String(), nil
}

// parseLongPrefix parses the longest valid leading integer prefix of b:
// an optional sign followed by one or more decimal digits. It returns the
// number of prefix bytes consumed alongside the parsed value.
func parseLongPrefix(b []byte) (int64, int, error) {
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	start := i
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0, fmt.Errorf("no leading integer in %q", b)
	}
	n, err := strconv.ParseInt(string(b[:i]), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return n, i, nil
}
