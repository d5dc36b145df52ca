package vktor

import "fmt"

// parserState is the scanner's top-level mode: which sub-scanner, if any,
// currently owns the byte stream.
type parserState int8

const (
	// stateStructural is the scanner's home state: no token is mid-flight,
	// and the next byte is dispatched purely off the expected-set bitmask
	// (this covers "expecting a value", "expecting a comma or close", and
	// "expecting a colon" uniformly).
	stateStructural parserState = iota
	stateString
	stateNumber
	stateKeyword
	stateDone
	stateError
)

// strSubState is the string sub-scanner's suspended state: which part of
// an escape sequence (if any) is in progress. Kept as its own small state
// machine rather than folded into ExpectedSet, per the alternate design
// libvktor's author considered and this port adopts for the string
// sub-grammar specifically.
type strSubState int8

const (
	strNormal strSubState = iota
	strEscape
	strUnicodeHex
	strAwaitLowEscape
	strAwaitLowU
	strUnicodeHexLow
)

// numSubState is the number sub-scanner's suspended state.
type numSubState int8

const (
	numSignSeen numSubState = iota
	numLeadingZero
	numIntDigits
	numDotSeen
	numFracDigits
	numExpSignOpt
	numExpSignSeen
	numExpDigits
)

// Parser is an incremental, pull-style JSON tokenizer. The zero value is
// not usable; construct one with NewParser.
//
// Feed bytes as they arrive, then repeatedly call Parse to pull tokens.
// Parse never blocks and never requires the whole document to be
// buffered: when the token in progress can't be completed with the bytes
// fed so far, it returns StatusNeedMore and expects more input via Feed.
// Call Close once no further Feed calls will occur, so a trailing
// open-ended token (a bare top-level number, in particular) can be
// finalized instead of waiting for input that will never come.
type Parser struct {
	queue chunkQueue
	nest  nestStack
	buf   tokenBuf

	state    parserState
	expected ExpectedSet
	closed   bool
	err      error

	kind      Kind
	depth     int
	container Container
	hasValue  bool

	// expectKey is true while the scanner is positioned to read an object
	// key rather than a value; it decides whether a completed string token
	// is reported as KindObjectKey or KindString.
	expectKey bool

	keywordWant Kind
	keywordText string
	keywordPos  int

	numSub    numSubState
	numIsFloat bool

	strSub             strSubState
	strHex             [4]byte
	strHexPos          int
	strHighSurrogate   uint16
}

// NewParser creates a Parser ready to accept input via Feed. maxDepth
// bounds the nesting stack (arrays and objects combined); 0 means
// unlimited.
func NewParser(maxDepth int) *Parser {
	return &Parser{
		nest:     newNestStack(maxDepth),
		expected: ExpValueTokens,
	}
}

// Feed appends a chunk of input for the parser to consume. The slice is
// retained by the parser (it is not copied) until fully consumed, so
// callers must not modify it afterward. Feeding a zero-length slice has
// no effect.
func (p *Parser) Feed(b []byte) error {
	if p.closed {
		return fmt.Errorf("%w: Feed called after Close", ErrInternal)
	}
	p.queue.push(b)
	return nil
}

// Close signals that no further Feed calls will occur. It lets Parse
// finalize a trailing open-ended token (a bare top-level number in
// particular has no terminator byte of its own) instead of returning
// StatusNeedMore forever.
func (p *Parser) Close() {
	p.closed = true
}

// Parse advances the scanner and reports what happened. See Status for
// the possible outcomes. Once Parse returns StatusError, every
// subsequent call returns the same error.
func (p *Parser) Parse() (Status, error) {
	if p.err != nil {
		return StatusError, p.err
	}
	if p.state == stateDone {
		return p.drainTrailingWhitespace()
	}
	for {
		b, ok := p.queue.peek()
		if !ok {
			if p.closed {
				return p.atEOF()
			}
			return StatusNeedMore, nil
		}
		tok, err := p.step(b)
		if err != nil {
			return p.fail(err)
		}
		if tok {
			return StatusToken, nil
		}
	}
}

func (p *Parser) fail(err error) (Status, error) {
	p.state = stateError
	p.err = err
	return StatusError, err
}

func (p *Parser) step(b byte) (tokenReady bool, err error) {
	switch p.state {
	case stateStructural:
		return p.stepStructural(b)
	case stateString:
		return p.stepString(b)
	case stateNumber:
		return p.stepNumber(b)
	case stateKeyword:
		return p.stepKeyword(b)
	default:
		return false, fmt.Errorf("%w: step called in terminal state", ErrInternal)
	}
}

func (p *Parser) drainTrailingWhitespace() (Status, error) {
	for {
		b, ok := p.queue.peek()
		if !ok {
			return StatusComplete, nil
		}
		if isWhitespace(b) {
			p.queue.consume()
			continue
		}
		return p.fail(fmt.Errorf("%w: trailing data after complete value: %q (%#02x)", ErrUnexpectedInput, b, b))
	}
}

func (p *Parser) atEOF() (Status, error) {
	switch p.state {
	case stateNumber:
		if !p.numValid() {
			return p.fail(fmt.Errorf("%w: truncated number at end of input", ErrIncompleteData))
		}
		p.finishNumber()
		return StatusToken, nil
	case stateString, stateKeyword:
		return p.fail(fmt.Errorf("%w: unterminated token at end of input", ErrIncompleteData))
	case stateStructural:
		if p.nest.depth() == 0 && p.kind == KindNone {
			return p.fail(fmt.Errorf("%w: no value was parsed", ErrNoValue))
		}
		return p.fail(fmt.Errorf("%w: unexpected end of input", ErrIncompleteData))
	default:
		return p.fail(fmt.Errorf("%w: unexpected end of input", ErrIncompleteData))
	}
}

func (p *Parser) unexpectedErr(b byte) error {
	return fmt.Errorf("%w: unexpected byte %q (%#02x)", ErrUnexpectedInput, b, b)
}

// isWhitespace reports whether b is JSON insignificant whitespace: SP, HT,
// LF, CR, plus FF and VT (libvktor treats both as whitespace too; see
// vktor.c's top-level dispatch).
func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

// completeStructural records a token that carries no literal payload of
// its own (container open/close, keywords): the Kind is the value. Open
// tokens are pushed onto the nesting stack before this runs, so Depth and
// CurrentContainer report the container just entered. Close tokens are
// popped before this runs, so Depth and CurrentContainer report the
// enclosing container the closed one returns to — matching
// vktor_get_depth/vktor_get_current_nest_type, which read the nest stack
// live, after the pop has already happened.
func (p *Parser) completeStructural(k Kind) {
	p.kind = k
	p.depth = p.nest.depth()
	p.container = p.nest.current()
	p.hasValue = false
	p.state = stateStructural
}

// completeValue records a token whose literal payload is readable via
// the Value* accessors (strings, numbers, object keys).
func (p *Parser) completeValue(k Kind) {
	p.kind = k
	p.depth = p.nest.depth()
	p.container = p.nest.current()
	p.hasValue = true
	p.state = stateStructural
}

// afterValue computes what may legally follow a just-completed value,
// based on the (possibly just-popped) enclosing container. This is the
// narrowed, container-specific successor set rather than the C source's
// broader always-available superset.
func (p *Parser) afterValue() {
	switch p.nest.current() {
	case ContainerArray:
		p.expected = ExpComma | ExpArrayEnd
	case ContainerObject:
		p.expected = ExpComma | ExpObjectEnd
	default:
		p.expected = 0
		p.state = stateDone
	}
}

// stepStructural dispatches a byte seen while no token is mid-flight:
// whitespace, a structural character, or the first byte of a value.
func (p *Parser) stepStructural(b byte) (bool, error) {
	if isWhitespace(b) {
		p.queue.consume()
		return false, nil
	}

	switch b {
	case '{':
		if !p.expected.has(ExpObjectStart) {
			return false, p.unexpectedErr(b)
		}
		p.queue.consume()
		if err := p.nest.push(ContainerObject); err != nil {
			return false, err
		}
		p.completeStructural(KindObjectStart)
		p.expectKey = true
		p.expected = ExpObjectKey | ExpObjectEnd
		return true, nil

	case '}':
		if !p.expected.has(ExpObjectEnd) {
			return false, p.unexpectedErr(b)
		}
		p.queue.consume()
		if _, err := p.nest.pop(); err != nil {
			return false, err
		}
		p.completeStructural(KindObjectEnd)
		p.expectKey = false
		p.afterValue()
		return true, nil

	case '[':
		if !p.expected.has(ExpArrayStart) {
			return false, p.unexpectedErr(b)
		}
		p.queue.consume()
		if err := p.nest.push(ContainerArray); err != nil {
			return false, err
		}
		p.completeStructural(KindArrayStart)
		p.expected = ExpValueTokens | ExpArrayEnd
		return true, nil

	case ']':
		if !p.expected.has(ExpArrayEnd) {
			return false, p.unexpectedErr(b)
		}
		p.queue.consume()
		if _, err := p.nest.pop(); err != nil {
			return false, err
		}
		p.completeStructural(KindArrayEnd)
		p.afterValue()
		return true, nil

	case ',':
		if !p.expected.has(ExpComma) {
			return false, p.unexpectedErr(b)
		}
		p.queue.consume()
		switch p.nest.current() {
		case ContainerObject:
			p.expectKey = true
			p.expected = ExpObjectKey
		case ContainerArray:
			p.expected = ExpValueTokens
		default:
			return false, fmt.Errorf("%w: comma seen outside any container", ErrInternal)
		}
		return false, nil

	case ':':
		if !p.expected.has(ExpColon) {
			return false, p.unexpectedErr(b)
		}
		p.queue.consume()
		p.expected = ExpValueTokens
		return false, nil

	case '"':
		if !p.expected.has(ExpString) && !p.expected.has(ExpObjectKey) {
			return false, p.unexpectedErr(b)
		}
		p.queue.consume()
		p.buf.reset()
		p.strSub = strNormal
		p.state = stateString
		return false, nil

	case 't':
		return p.beginKeyword(b, ExpTrue, KindTrue, "true")
	case 'f':
		return p.beginKeyword(b, ExpFalse, KindFalse, "false")
	case 'n':
		return p.beginKeyword(b, ExpNull, KindNull, "null")

	case '-', '+':
		if !p.expected.has(ExpInt) && !p.expected.has(ExpFloat) {
			return false, p.unexpectedErr(b)
		}
		return p.beginNumber(b)

	default:
		if b >= '0' && b <= '9' {
			if !p.expected.has(ExpInt) && !p.expected.has(ExpFloat) {
				return false, p.unexpectedErr(b)
			}
			return p.beginNumber(b)
		}
		return false, p.unexpectedErr(b)
	}
}

func (p *Parser) beginKeyword(b byte, want ExpectedSet, kind Kind, text string) (bool, error) {
	if !p.expected.has(want) {
		return false, p.unexpectedErr(b)
	}
	p.queue.consume()
	p.keywordWant = kind
	p.keywordText = text
	p.keywordPos = 1
	p.state = stateKeyword
	return false, nil
}

func (p *Parser) stepKeyword(b byte) (bool, error) {
	if b != p.keywordText[p.keywordPos] {
		return false, p.unexpectedErr(b)
	}
	p.queue.consume()
	p.keywordPos++
	if p.keywordPos < len(p.keywordText) {
		return false, nil
	}
	p.completeStructural(p.keywordWant)
	p.afterValue()
	return true, nil
}

func (p *Parser) finishString() {
	if p.expectKey {
		p.completeValue(KindObjectKey)
		p.expectKey = false
		p.expected = ExpColon
		return
	}
	p.completeValue(KindString)
	p.afterValue()
}

func (p *Parser) stepString(b byte) (bool, error) {
	switch p.strSub {
	case strNormal:
		switch {
		case b == '"':
			p.queue.consume()
			p.finishString()
			return true, nil
		case b == '\\':
			p.queue.consume()
			p.strSub = strEscape
			return false, nil
		case b < 0x20:
			return false, p.unexpectedErr(b)
		default:
			// Raw multi-byte UTF-8 passes through unvalidated; vktor
			// trusts the caller's encoding for unescaped bytes.
			p.buf.writeByte(b)
			p.queue.consume()
			return false, nil
		}

	case strEscape:
		p.queue.consume()
		switch b {
		case '"', '\\', '/':
			p.buf.writeByte(b)
			p.strSub = strNormal
		case 'b':
			p.buf.writeByte('\b')
			p.strSub = strNormal
		case 'f':
			p.buf.writeByte('\f')
			p.strSub = strNormal
		case 'n':
			p.buf.writeByte('\n')
			p.strSub = strNormal
		case 'r':
			p.buf.writeByte('\r')
			p.strSub = strNormal
		case 't':
			p.buf.writeByte('\t')
			p.strSub = strNormal
		case 'u':
			p.strHexPos = 0
			p.strSub = strUnicodeHex
		default:
			return false, p.unexpectedErr(b)
		}
		return false, nil

	case strUnicodeHex, strUnicodeHexLow:
		nib, ok := hexNibble(b)
		if !ok {
			return false, p.unexpectedErr(b)
		}
		p.queue.consume()
		p.strHex[p.strHexPos] = nib
		p.strHexPos++
		if p.strHexPos < 4 {
			return false, nil
		}
		cp := uint16(p.strHex[0])<<12 | uint16(p.strHex[1])<<8 | uint16(p.strHex[2])<<4 | uint16(p.strHex[3])

		if p.strSub == strUnicodeHexLow {
			var out [4]byte
			n := surrogateToUTF8(p.strHighSurrogate, cp, out[:])
			if n == 0 {
				return false, fmt.Errorf("%w: invalid low surrogate in \\u escape pair, last byte %q (%#02x)", ErrUnexpectedInput, b, b)
			}
			p.buf.writeBytes(out[:n])
			p.strSub = strNormal
			return false, nil
		}

		if isHighSurrogate(cp) {
			p.strHighSurrogate = cp
			p.strSub = strAwaitLowEscape
			return false, nil
		}
		if isLowSurrogate(cp) {
			return false, fmt.Errorf("%w: unpaired low surrogate in \\u escape, last byte %q (%#02x)", ErrUnexpectedInput, b, b)
		}
		var out [3]byte
		n := bmpToUTF8(cp, out[:])
		p.buf.writeBytes(out[:n])
		p.strSub = strNormal
		return false, nil

	case strAwaitLowEscape:
		if b != '\\' {
			return false, fmt.Errorf("%w: unpaired high surrogate in \\u escape, next byte %q (%#02x)", ErrUnexpectedInput, b, b)
		}
		p.queue.consume()
		p.strSub = strAwaitLowU
		return false, nil

	case strAwaitLowU:
		if b != 'u' {
			return false, fmt.Errorf("%w: unpaired high surrogate in \\u escape, next byte %q (%#02x)", ErrUnexpectedInput, b, b)
		}
		p.queue.consume()
		p.strHexPos = 0
		p.strSub = strUnicodeHexLow
		return false, nil

	default:
		return false, fmt.Errorf("%w: invalid string sub-state", ErrInternal)
	}
}

func numFirstDigitState(b byte) numSubState {
	if b == '0' {
		return numLeadingZero
	}
	return numIntDigits
}

func (p *Parser) beginNumber(b byte) (bool, error) {
	p.buf.reset()
	p.numIsFloat = false
	p.buf.writeByte(b)
	p.queue.consume()
	if b == '-' || b == '+' {
		p.numSub = numSignSeen
	} else {
		p.numSub = numFirstDigitState(b)
	}
	p.state = stateNumber
	return false, nil
}

func (p *Parser) stepNumber(b byte) (bool, error) {
	switch p.numSub {
	case numSignSeen:
		if b < '0' || b > '9' {
			return false, p.unexpectedErr(b)
		}
		p.buf.writeByte(b)
		p.queue.consume()
		p.numSub = numFirstDigitState(b)
		return false, nil

	case numLeadingZero:
		switch {
		case b == '.':
			p.buf.writeByte(b)
			p.queue.consume()
			p.numIsFloat = true
			p.numSub = numDotSeen
			return false, nil
		case b == 'e' || b == 'E':
			p.buf.writeByte(b)
			p.queue.consume()
			p.numIsFloat = true
			p.numSub = numExpSignOpt
			return false, nil
		case b >= '0' && b <= '9':
			return false, p.unexpectedErr(b)
		default:
			return p.finishNumberOn(b)
		}

	case numIntDigits:
		switch {
		case b >= '0' && b <= '9':
			p.buf.writeByte(b)
			p.queue.consume()
			return false, nil
		case b == '.':
			p.buf.writeByte(b)
			p.queue.consume()
			p.numIsFloat = true
			p.numSub = numDotSeen
			return false, nil
		case b == 'e' || b == 'E':
			p.buf.writeByte(b)
			p.queue.consume()
			p.numIsFloat = true
			p.numSub = numExpSignOpt
			return false, nil
		default:
			return p.finishNumberOn(b)
		}

	case numDotSeen:
		if b < '0' || b > '9' {
			return false, p.unexpectedErr(b)
		}
		p.buf.writeByte(b)
		p.queue.consume()
		p.numSub = numFracDigits
		return false, nil

	case numFracDigits:
		switch {
		case b >= '0' && b <= '9':
			p.buf.writeByte(b)
			p.queue.consume()
			return false, nil
		case b == 'e' || b == 'E':
			p.buf.writeByte(b)
			p.queue.consume()
			p.numSub = numExpSignOpt
			return false, nil
		default:
			return p.finishNumberOn(b)
		}

	case numExpSignOpt:
		if b == '+' || b == '-' {
			p.buf.writeByte(b)
			p.queue.consume()
			p.numSub = numExpSignSeen
			return false, nil
		}
		if b < '0' || b > '9' {
			return false, p.unexpectedErr(b)
		}
		p.buf.writeByte(b)
		p.queue.consume()
		p.numSub = numExpDigits
		return false, nil

	case numExpSignSeen:
		if b < '0' || b > '9' {
			return false, p.unexpectedErr(b)
		}
		p.buf.writeByte(b)
		p.queue.consume()
		p.numSub = numExpDigits
		return false, nil

	case numExpDigits:
		if b >= '0' && b <= '9' {
			p.buf.writeByte(b)
			p.queue.consume()
			return false, nil
		}
		return p.finishNumberOn(b)

	default:
		return false, fmt.Errorf("%w: invalid number sub-state", ErrInternal)
	}
}

// finishNumberOn completes the number token on seeing a terminator byte
// that is NOT part of the number grammar; that byte is left unconsumed
// for the next call to dispatch.
func (p *Parser) finishNumberOn(b byte) (bool, error) {
	if isWhitespace(b) || isNumberTerminator(b) {
		p.finishNumber()
		return true, nil
	}
	return false, p.unexpectedErr(b)
}

func isNumberTerminator(b byte) bool {
	switch b {
	case ',', ']', '}':
		return true
	default:
		return false
	}
}

// numValid reports whether the number sub-scanner is in a state where the
// literal seen so far is already a complete, valid JSON number — the set
// of states Close() may finalize at end of input.
func (p *Parser) numValid() bool {
	switch p.numSub {
	case numLeadingZero, numIntDigits, numFracDigits, numExpDigits:
		return true
	default:
		return false
	}
}

func (p *Parser) finishNumber() {
	k := KindInt
	if p.numIsFloat {
		k = KindFloat
	}
	p.completeValue(k)
	p.afterValue()
}
