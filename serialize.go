package clausewitz

import (
	"bufio"
	"fmt"
	"io"
)

// Save writes v to w in the Clausewitz text form. Only a top-level Record
// is serializable; any other root variant is a fatal ErrSerialize. Pairs
// are written back to back with no separator between them — newlines
// inside scalar values are what the parser treats as whitespace — and
// every scalar is followed by a newline.
func Save(w io.Writer, v *Value) error {
	if v.Kind() != KindRecord {
		return newParseError(ErrSerialize, -1, "root value must be a record, got %s", v.Kind())
	}
	bw := bufio.NewWriter(w)
	if err := writeRecordBody(bw, v); err != nil {
		return err
	}
	return bw.Flush()
}

func writeValue(w *bufio.Writer, v *Value) error {
	switch v.Kind() {
	case KindBool:
		if v.b {
			_, err := io.WriteString(w, "yes\n")
			return err
		}
		_, err := io.WriteString(w, "no\n")
		return err
	case KindDate:
		_, err := fmt.Fprintf(w, "%s\n", v.date.String())
		return err
	case KindNumber:
		_, err := fmt.Fprintf(w, "%.3f\n", v.n)
		return err
	case KindString:
		// No escaping: the format has none, and parseQuoted (text.go) reads
		// up to the first literal '"' with no escape handling either.
		_, err := fmt.Fprintf(w, "\"%s\"\n", v.s)
		return err
	case KindHsv:
		_, err := fmt.Fprintf(w, "hsv { %g %g %g }\n", v.hsv[0], v.hsv[1], v.hsv[2])
		return err
	case KindRgb:
		_, err := fmt.Fprintf(w, "rgb { %d %d %d }\n", v.rgb[0], v.rgb[1], v.rgb[2])
		return err
	case KindArray:
		if err := w.WriteByte('{'); err != nil {
			return err
		}
		for _, e := range v.array {
			if err := writeValue(w, e); err != nil {
				return err
			}
		}
		return w.WriteByte('}')
	case KindRecord:
		if err := w.WriteByte('{'); err != nil {
			return err
		}
		if err := writeRecordBody(w, v); err != nil {
			return err
		}
		return w.WriteByte('}')
	default:
		return newParseError(ErrSerialize, -1, "value of kind %s is not serializable", v.Kind())
	}
}

func writeRecordBody(w *bufio.Writer, v *Value) error {
	for _, f := range v.record {
		if _, err := io.WriteString(w, f.Key); err != nil {
			return err
		}
		if err := w.WriteByte('='); err != nil {
			return err
		}
		if err := writeValue(w, f.Value); err != nil {
			return err
		}
	}
	return nil
}
