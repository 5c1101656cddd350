package clausewitz

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

func isWhitespace(b byte) bool {
	return b == 0x09 || b == 0x0A || b == 0x0D || b == 0x20
}

// textParser holds the state shared across a single top-level parse: the
// peeking byte source, a reusable scratch buffer for the bare token
// currently being scanned, and two hash-indexed intern caches for repeated
// bare tokens. Caches are an allocation-avoidance optimization only;
// clearing them (or never populating them) changes nothing observable.
type textParser struct {
	src         *source
	scratch     []byte
	stringCache map[uint64]string
	valueCache  map[uint64]*Value
}

// ParseText parses the Clausewitz text form from r. It performs no header
// check: a leading magic word on its own line is tolerated and discarded
// (see parseTop). Load, by contrast, requires the header and strips it
// before handing the rest to the text parser.
func ParseText(r io.Reader) (*Value, error) {
	p := &textParser{src: newSource(r)}
	return p.parseTop()
}

// ParseString parses the Clausewitz text form held in s.
func ParseString(s string) (*Value, error) {
	return ParseText(strings.NewReader(s))
}

// ParseBytes parses the Clausewitz text form held in b.
func ParseBytes(b []byte) (*Value, error) {
	return ParseText(bytes.NewReader(b))
}

func (p *textParser) skipWS() {
	for {
		b := p.src.peek()
		if b < 0 || !isWhitespace(byte(b)) {
			return
		}
		p.src.read()
	}
}

// readBareToken scans a bare token into the parser's scratch buffer and
// returns it. The slice aliases the parser's internal buffer and is only
// valid until the next call that mutates scratch (readBareToken, or
// anything that calls it) — callers that need to keep the bytes around
// must convert them to a string (via internKey or narrow) before making
// another scanning call.
//
// A token ends at the first whitespace byte, '}', EOF, or — only once the
// token already holds at least one byte — '='. That last clause is what
// lets a bare "=" stand as its own identifier, e.g. "bar=a ==b" parses as
// two pairs: bar="a" and "="="b".
func (p *textParser) readBareToken() []byte {
	p.scratch = p.scratch[:0]
	for {
		b := p.src.peek()
		if b < 0 || isWhitespace(byte(b)) || b == '}' {
			break
		}
		if b == '=' && len(p.scratch) > 0 {
			break
		}
		p.scratch = append(p.scratch, byte(b))
		p.src.read()
	}
	return p.scratch
}

func hashBytes(b []byte) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= prime64
	}
	return h
}

func (p *textParser) internKey(tok []byte) string {
	h := hashBytes(tok)
	if s, ok := p.stringCache[h]; ok {
		return s
	}
	s := cp1252(tok)
	if p.stringCache == nil {
		p.stringCache = make(map[uint64]string)
	}
	p.stringCache[h] = s
	return s
}

func (p *textParser) narrowScalar(tok []byte) *Value {
	h := hashBytes(tok)
	if v, ok := p.valueCache[h]; ok {
		return v
	}
	var v *Value
	switch string(tok) {
	case "yes":
		v = newBool(true)
	case "no":
		v = newBool(false)
	default:
		if n, ok := parseNumber(tok); ok {
			v = newNumber(n)
		} else if d, ok := parseDate(tok); ok {
			v = newDate(d)
		} else {
			v = newString(cp1252(tok))
		}
	}
	if p.valueCache == nil {
		p.valueCache = make(map[uint64]*Value)
	}
	p.valueCache[h] = v
	return v
}

// narrow classifies a bare token already delimited by readBareToken. "hsv"
// and "rgb" are special-cased: each consumes a following "{ a b c }" tuple
// rather than being classified as a plain string.
func (p *textParser) narrow(tok []byte) (*Value, error) {
	switch string(tok) {
	case "hsv":
		return p.parseTriplet(newHsv)
	case "rgb":
		return p.parseRgbTriplet()
	default:
		return p.narrowScalar(tok), nil
	}
}

func (p *textParser) parseTriplet(build func(a, b, c float64) *Value) (*Value, error) {
	p.skipWS()
	if err := p.expect('{', ErrUnexpectedToken, "{"); err != nil {
		return nil, err
	}
	p.src.read()
	var nums [3]float64
	for i := range nums {
		p.skipWS()
		tok := p.readBareToken()
		// HSV components are plain decimals such as "0.5"; parseNumber's
		// 3-or-5 fractional digit rule does not apply to them.
		n, err := strconv.ParseFloat(string(tok), 64)
		if err != nil {
			return nil, p.errorf(ErrUnexpectedToken, "expected number in color tuple, got %q", tok)
		}
		nums[i] = n
	}
	p.skipWS()
	if err := p.expect('}', ErrUnexpectedToken, "}"); err != nil {
		return nil, err
	}
	p.src.read()
	return build(nums[0], nums[1], nums[2]), nil
}

func (p *textParser) parseRgbTriplet() (*Value, error) {
	p.skipWS()
	if err := p.expect('{', ErrUnexpectedToken, "{"); err != nil {
		return nil, err
	}
	p.src.read()
	var nums [3]byte
	for i := range nums {
		p.skipWS()
		tok := p.readBareToken()
		n, ok := parseNumber(tok)
		if !ok {
			return nil, p.errorf(ErrUnexpectedToken, "expected number in color tuple, got %q", tok)
		}
		nums[i] = byte(n)
	}
	p.skipWS()
	if err := p.expect('}', ErrUnexpectedToken, "}"); err != nil {
		return nil, err
	}
	p.src.read()
	return newRgb(nums[0], nums[1], nums[2]), nil
}

func (p *textParser) parseQuoted() (*Value, error) {
	p.src.read() // opening quote
	var buf []byte
	for {
		b := p.src.peek()
		if b < 0 {
			return nil, p.errorf(ErrUnexpectedToken, "unterminated quoted string")
		}
		if b == '"' {
			break
		}
		buf = append(buf, byte(b))
		p.src.read()
	}
	p.src.read() // closing quote
	if d, ok := parseDate(buf); ok {
		return newDate(d), nil
	}
	return newString(cp1252(buf)), nil
}

func (p *textParser) parseValue() (*Value, error) {
	switch p.src.peek() {
	case '"':
		return p.parseQuoted()
	case '{':
		p.src.read()
		v, err := p.parseContainer()
		if err != nil {
			return nil, err
		}
		if err := p.expect('}', ErrUnexpectedToken, "}"); err != nil {
			return nil, err
		}
		p.src.read()
		return v, nil
	default:
		tok := p.readBareToken()
		return p.narrow(tok)
	}
}

// parseContainer is entered with the opening '{' already consumed. It
// decides, by looking ahead at most a few bytes, whether the container is
// an empty record, a record (first token followed by '='), or an array
// (anything else) — and recurses for a nested '{' so that the same
// disambiguation applies at every depth. It never consumes the matching
// closing '}': the caller (parseValue) does that once parseContainer
// returns.
func (p *textParser) parseContainer() (*Value, error) {
	p.skipWS()
	switch b := p.src.peek(); {
	case b == '}':
		return newRecord(nil), nil

	case b == '"':
		first, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		elems, err := p.parseArrayTail([]*Value{first})
		if err != nil {
			return nil, err
		}
		return newArray(elems), nil

	case b == '{':
		p.src.read()
		inner, err := p.parseContainer()
		if err != nil {
			return nil, err
		}
		if err := p.expect('}', ErrUnexpectedToken, "}"); err != nil {
			return nil, err
		}
		p.src.read()
		elems, err := p.parseArrayTail([]*Value{inner})
		if err != nil {
			return nil, err
		}
		return newArray(elems), nil

	default:
		tok := p.readBareToken()
		p.skipWS()
		switch b2 := p.src.peek(); {
		case b2 == '}':
			v, err := p.narrow(tok)
			if err != nil {
				return nil, err
			}
			return newArray([]*Value{v}), nil

		case b2 == '=':
			key := p.internKey(tok)
			p.src.read()
			p.skipWS()
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			fields, err := p.parseObjectBody(&Field{Key: key, Value: val})
			if err != nil {
				return nil, err
			}
			return newRecord(fields), nil

		default:
			v, err := p.narrow(tok)
			if err != nil {
				return nil, err
			}
			elems, err := p.parseArrayTail([]*Value{v})
			if err != nil {
				return nil, err
			}
			return newArray(elems), nil
		}
	}
}

func (p *textParser) parseArrayTail(elems []*Value) ([]*Value, error) {
	for {
		p.skipWS()
		b := p.src.peek()
		if b == '}' {
			break
		}
		if b < 0 {
			return nil, p.errorf(ErrUnexpectedToken, "unterminated array")
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return elems, nil
}

// parseObjectBody accumulates (key, value) pairs, starting from an
// optional already-parsed first pair, tolerating stray unowned "{}" blocks
// between pairs. It stops — without consuming — at '}' or EOF, leaving the
// caller to require the closing brace where one is expected.
func (p *textParser) parseObjectBody(first *Field) ([]Field, error) {
	var fields []Field
	if first != nil {
		fields = append(fields, *first)
	}
	for {
		p.skipWS()
		b := p.src.peek()
		if b == '}' || b < 0 {
			break
		}
		if b == '{' {
			if err := p.skipStrayBlock(); err != nil {
				return nil, err
			}
			continue
		}
		f, err := p.parsePair()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (p *textParser) parsePair() (Field, error) {
	p.skipWS()
	keyTok := p.readBareToken()
	if len(keyTok) == 0 {
		return Field{}, p.errorf(ErrMissingIdentifier, "expected a key")
	}
	key := p.internKey(keyTok)
	p.skipWS()
	if err := p.expect('=', ErrMissingEquals, "="); err != nil {
		return Field{}, err
	}
	p.src.read()
	p.skipWS()
	val, err := p.parseValue()
	if err != nil {
		return Field{}, err
	}
	return Field{Key: key, Value: val}, nil
}

// skipStrayBlock consumes a "{...}" block the caller never asked for — the
// format occasionally emits placeholder objects with no owning key. Brace
// depth is tracked so a non-empty stray block skips correctly too, and
// quoted strings inside it are not scanned for braces.
func (p *textParser) skipStrayBlock() error {
	p.src.read() // leading '{'
	depth := 1
	for depth > 0 {
		b := p.src.peek()
		switch {
		case b < 0:
			return p.errorf(ErrUnexpectedToken, "unterminated block")
		case b == '"':
			p.src.read()
			for {
				c := p.src.read()
				if c < 0 {
					return p.errorf(ErrUnexpectedToken, "unterminated quoted string in block")
				}
				if c == '"' {
					break
				}
			}
		case b == '{':
			depth++
			p.src.read()
		case b == '}':
			depth--
			p.src.read()
		default:
			p.src.read()
		}
	}
	return nil
}

func (p *textParser) expect(b byte, kind error, what string) error {
	if p.src.peek() != int(b) {
		return p.errorf(kind, "expected %q", what)
	}
	return nil
}

func (p *textParser) errorf(kind error, format string, args ...interface{}) error {
	return newParseError(kind, p.src.bytePos(), format, args...)
}

// parseTop handles the top level of a document, where a leading magic word
// on its own line has to be told apart from a real first key. After
// skipping leading whitespace and reading one bare token, a following CR or
// LF means that token was a standalone header/magic word on its own line
// (e.g. "EU4txt\n"): it is discarded and the rest of the stream is a flat
// sequence of pairs read until EOF. Anything else means the token actually
// was the first key of the first pair — there is no header line to skip —
// so it is resolved as a key, its value is read, and parsing continues as
// an object until EOF. See DESIGN.md for how this branching was derived.
func (p *textParser) parseTop() (*Value, error) {
	p.skipWS()
	if p.src.peek() < 0 {
		return newRecord(nil), nil
	}
	tok := p.readBareToken()
	next := p.src.peek()
	if next == '\r' || next == '\n' {
		p.skipWS()
		fields, err := p.parseObjectBody(nil)
		if err != nil {
			return nil, err
		}
		return newRecord(fields), nil
	}

	key := p.internKey(tok)
	p.skipWS()
	if err := p.expect('=', ErrMissingEquals, "="); err != nil {
		return nil, err
	}
	p.src.read()
	p.skipWS()
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	fields, err := p.parseObjectBody(&Field{Key: key, Value: val})
	if err != nil {
		return nil, err
	}
	return newRecord(fields), nil
}
