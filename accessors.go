package clausewitz

import "fmt"

// nullValue is returned by the fluent, never-fail navigation methods
// (Index, Key) when the path doesn't exist. Its Kind is always
// kindUnknown, so chained fluent calls on it keep returning nullValue
// instead of panicking.
var nullValue = &Value{kind: kindUnknown}

// Get returns the value of the first field named key. It fails with
// ErrType if v is not a Record and with ErrKeyNotFound if no field has
// that name.
func (v *Value) Get(key string) (*Value, error) {
	if v.Kind() != KindRecord {
		return nil, fmt.Errorf("%w: Get on a %s", ErrType, v.Kind())
	}
	for _, f := range v.record {
		if f.Key == key {
			return f.Value, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
}

// TryGet is Get without the error channel: ok is false when the field is
// absent or v is not a Record.
func (v *Value) TryGet(key string) (*Value, bool) {
	val, err := v.Get(key)
	if err != nil {
		return nil, false
	}
	return val, true
}

// Collect gathers every field named key into an Array, in parse order.
// It never fails: a non-Record receiver or a name with no matches both
// yield an empty Array.
func (v *Value) Collect(key string) *Value {
	var out []*Value
	if v.Kind() == KindRecord {
		for _, f := range v.record {
			if f.Key == key {
				out = append(out, f.Value)
			}
		}
	}
	return newArray(out)
}

func (v *Value) AsBool() (bool, error) {
	if v.Kind() == KindBool {
		return v.b, nil
	}
	return false, fmt.Errorf("%w: value not a bool: %s", ErrType, v.Kind())
}

func (v *Value) AsNumber() (float64, error) {
	if v.Kind() == KindNumber {
		return v.n, nil
	}
	return 0, fmt.Errorf("%w: value not a number: %s", ErrType, v.Kind())
}

// AsInt truncates a Number toward zero. It does not accept any other kind.
func (v *Value) AsInt() (int, error) {
	n, err := v.AsNumber()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (v *Value) AsString() (string, error) {
	if v.Kind() == KindString {
		return v.s, nil
	}
	return "", fmt.Errorf("%w: value not a string: %s", ErrType, v.Kind())
}

func (v *Value) AsDate() (Date, error) {
	if v.Kind() == KindDate {
		return v.date, nil
	}
	return Date{}, fmt.Errorf("%w: value not a date: %s", ErrType, v.Kind())
}

func (v *Value) AsArray() ([]*Value, error) {
	if v.Kind() == KindArray {
		return v.array, nil
	}
	return nil, fmt.Errorf("%w: value not an array: %s", ErrType, v.Kind())
}

func (v *Value) AsRecord() ([]Field, error) {
	if v.Kind() == KindRecord {
		return v.record, nil
	}
	return nil, fmt.Errorf("%w: value not a record: %s", ErrType, v.Kind())
}

// Index offers positional access across every container-ish kind: Array
// and Record index their elements/fields, Hsv and Rgb index their three
// components as Number. An out-of-range index or a non-indexable kind
// both yield nullValue rather than failing, so chained Index/Key calls on
// a partially-shaped tree are safe.
func (v *Value) Index(i int) *Value {
	if i < 0 {
		return nullValue
	}
	switch v.Kind() {
	case KindArray:
		if i < len(v.array) {
			return v.array[i]
		}
	case KindRecord:
		if i < len(v.record) {
			return v.record[i].Value
		}
	case KindHsv:
		if i < 3 {
			return newNumber(v.hsv[i])
		}
	case KindRgb:
		if i < 3 {
			return newNumber(float64(v.rgb[i]))
		}
	}
	return nullValue
}

// Key offers fluent access to the first field named name, or nullValue if
// v isn't a Record or has no such field.
func (v *Value) Key(name string) *Value {
	if val, ok := v.TryGet(name); ok {
		return val
	}
	return nullValue
}

// FindOptional reports, among keys, which are present in every record and
// which are present in at least one but not all. A record that is not a
// Record (e.g. a scalar in a malformed slice) is treated as having none of
// the keys. Order follows keys, not records.
func FindOptional(records []*Value, keys []string) (allPresent, somePresent []string) {
	for _, key := range keys {
		count := 0
		for _, r := range records {
			if _, ok := r.TryGet(key); ok {
				count++
			}
		}
		switch {
		case count == len(records) && len(records) > 0:
			allPresent = append(allPresent, key)
		case count > 0:
			somePresent = append(somePresent, key)
		}
	}
	return allPresent, somePresent
}
