package clausewitz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "<bool>", KindBool.String())
	require.Equal(t, "<record>", KindRecord.String())
	require.Equal(t, "<unknown>", Kind(1000).String())
	require.Equal(t, "<unknown>", Kind(-1).String())
}

func TestValueKindNilSafe(t *testing.T) {
	var v *Value
	require.Equal(t, kindUnknown, v.Kind())
}

func TestDateString(t *testing.T) {
	require.Equal(t, "1444.11.11", Date{1444, 11, 11, 0}.String())
	require.Equal(t, "1444.11.11.23", Date{1444, 11, 11, 23}.String())
}

func TestCp1252Decode(t *testing.T) {
	// 0xE9 is Windows-1252 "é", outside plain ASCII.
	require.Equal(t, "café", cp1252([]byte("caf\xe9")))
}

func TestEqualValue(t *testing.T) {
	a := newRecord([]Field{{"x", newNumber(1)}, {"x", newNumber(2)}})
	b := newRecord([]Field{{"x", newNumber(1)}, {"x", newNumber(2)}})
	c := newRecord([]Field{{"x", newNumber(2)}, {"x", newNumber(1)}})
	require.True(t, equalValue(a, b))
	require.False(t, equalValue(a, c), "duplicate-key order must matter")
}

func TestValueString(t *testing.T) {
	v := newRecord([]Field{
		{"foo", newString("bar")},
		{"flag", newBool(true)},
	})
	require.Equal(t, `{foo="bar" flag=yes}`, v.String())
}
