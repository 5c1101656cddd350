package clausewitz

import (
	"bufio"
	"io"
)

// source wraps a byte stream with one-byte look-ahead. peek never advances;
// read always does. EOF is reported as -1 from both. There is no line
// tracking: the text parser reports positions in bytes consumed, not
// line/column.
type source struct {
	r     *bufio.Reader
	peeked bool
	pb     int // cached peeked byte, or -1 for EOF
	pos    int64
}

func newSource(r io.Reader) *source {
	return &source{r: bufio.NewReaderSize(r, 4096)}
}

// peek returns the next byte without consuming it, or -1 at EOF.
func (s *source) peek() int {
	if !s.peeked {
		b, err := s.r.ReadByte()
		if err != nil {
			s.pb = -1
		} else {
			s.pb = int(b)
		}
		s.peeked = true
	}
	return s.pb
}

// read returns and consumes the next byte, or -1 at EOF.
func (s *source) read() int {
	b := s.peek()
	s.peeked = false
	if b >= 0 {
		s.pos++
	}
	return b
}

// bytePos reports how many bytes have been consumed by read so far. It is
// used to annotate ParseError with a stream position.
func (s *source) bytePos() int64 { return s.pos }
