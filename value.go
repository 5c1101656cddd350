// Package clausewitz parses the text and binary configuration/savegame
// format used by Clausewitz-engine titles (EU4, CK2, HoI and similar) into a
// single in-memory value tree, and can serialize that tree back to the text
// form.
package clausewitz

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// cp1252 decodes Windows-1252 bytes to a UTF-8 Go string. Both the text and
// binary parsers route all string/key bytes through it.
func cp1252(b []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		// charmap.Windows1252 has no undefined code points, so this path is
		// unreachable in practice; fall back rather than fail a parse over it.
		return string(b)
	}
	return string(out)
}

// Kind identifies the concrete variant held by a Value.
type Kind int

const (
	KindBool Kind = iota
	KindNumber
	KindDate
	KindString
	KindHsv
	KindRgb
	KindArray
	KindRecord

	numKinds
	kindUnknown Kind = -1
)

var kindStrings = [numKinds]string{
	"<bool>",
	"<number>",
	"<date>",
	"<string>",
	"<hsv>",
	"<rgb>",
	"<array>",
	"<record>",
}

// String returns a human-readable name for k.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}

// Date is a calendar date with an optional hour. There is no timezone, no
// minutes, and no seconds: the format does not carry them.
type Date struct {
	Year, Month, Day, Hour int
}

// String renders d the way the text serializer writes dates: "Y.M.D", with
// no zero-padding and the hour omitted when zero.
func (d Date) String() string {
	if d.Hour != 0 {
		return fmt.Sprintf("%d.%d.%d.%d", d.Year, d.Month, d.Day, d.Hour)
	}
	return fmt.Sprintf("%d.%d.%d", d.Year, d.Month, d.Day)
}

// Field is one key/value pair of a Record. Records are ordered multimaps:
// keys are not required to be unique, and duplicates are preserved in the
// order they were parsed.
type Field struct {
	Key   string
	Value *Value
}

// Value is the tagged union produced by both parsers and consumed by the
// serializer. The zero Value is a KindBool false: a well-formed (if
// unremarkable) leaf rather than a nil-like sentinel.
type Value struct {
	kind Kind

	b    bool
	n    float64
	date Date
	s    string
	hsv  [3]float64
	rgb  [3]byte

	array  []*Value
	record []Field
}

// Kind reports which variant v holds.
func (v *Value) Kind() Kind {
	if v == nil {
		return kindUnknown
	}
	if v.kind < 0 || v.kind >= numKinds {
		return kindUnknown
	}
	return v.kind
}

func newBool(b bool) *Value           { return &Value{kind: KindBool, b: b} }
func newNumber(n float64) *Value      { return &Value{kind: KindNumber, n: n} }
func newDate(d Date) *Value           { return &Value{kind: KindDate, date: d} }
func newString(s string) *Value       { return &Value{kind: KindString, s: s} }
func newHsv(h, s, v float64) *Value   { return &Value{kind: KindHsv, hsv: [3]float64{h, s, v}} }
func newRgb(r, g, b byte) *Value      { return &Value{kind: KindRgb, rgb: [3]byte{r, g, b}} }
func newArray(elems []*Value) *Value  { return &Value{kind: KindArray, array: elems} }
func newRecord(fields []Field) *Value { return &Value{kind: KindRecord, record: fields} }

// String renders v in a form close to the text serializer's grammar (see
// Save): no newline follows scalars, elements and pairs are separated by a
// single space, a Record is always wrapped in braces, and strings are
// quoted with Go escaping, which Save does not apply. It is primarily a
// debugging aid: for a byte-exact file, use Save.
func (v *Value) String() string {
	if v == nil {
		return "no"
	}
	switch v.kind {
	case KindBool:
		if v.b {
			return "yes"
		}
		return "no"
	case KindNumber:
		return fmt.Sprintf("%.3f", v.n)
	case KindDate:
		return v.date.String()
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindHsv:
		return fmt.Sprintf("hsv { %g %g %g }", v.hsv[0], v.hsv[1], v.hsv[2])
	case KindRgb:
		return fmt.Sprintf("rgb { %d %d %d }", v.rgb[0], v.rgb[1], v.rgb[2])
	case KindArray:
		out := "{"
		for i, e := range v.array {
			if i > 0 {
				out += " "
			}
			out += e.String()
		}
		return out + "}"
	case KindRecord:
		out := "{"
		for i, f := range v.record {
			if i > 0 {
				out += " "
			}
			out += fmt.Sprintf("%s=%s", f.Key, f.Value.String())
		}
		return out + "}"
	}
	return "<unknown>"
}

// equalValue reports deep equality of two values, used by tests and by the
// parse/serialize round-trip property. Record comparison is
// order-sensitive and preserves duplicates, since Record is an ordered
// multimap rather than a map.
func equalValue(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindDate:
		return a.date == b.date
	case KindString:
		return a.s == b.s
	case KindHsv:
		return a.hsv == b.hsv
	case KindRgb:
		return a.rgb == b.rgb
	case KindArray:
		if len(a.array) != len(b.array) {
			return false
		}
		for i := range a.array {
			if !equalValue(a.array[i], b.array[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(a.record) != len(b.record) {
			return false
		}
		for i := range a.record {
			if a.record[i].Key != b.record[i].Key || !equalValue(a.record[i].Value, b.record[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
