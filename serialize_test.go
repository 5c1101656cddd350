package clausewitz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSave_Scalars(t *testing.T) {
	v := newRecord([]Field{
		{"flag", newBool(true)},
		{"off", newBool(false)},
		{"date", newDate(Date{1444, 11, 11, 0})},
		{"n", newNumber(1.5)},
		{"s", newString("hi")},
	})
	var buf strings.Builder
	require.NoError(t, Save(&buf, v))
	require.Equal(t, "flag=yes\noff=no\ndate=1444.11.11\nn=1.500\ns=\"hi\"\n", buf.String())
}

func TestSave_NestedContainers(t *testing.T) {
	v := newRecord([]Field{
		{"arr", newArray([]*Value{newNumber(1), newNumber(2)})},
		{"rec", newRecord([]Field{{"k", newString("v")}})},
	})
	var buf strings.Builder
	require.NoError(t, Save(&buf, v))
	require.Equal(t, "arr={1.000\n2.000\n}rec={k=\"v\"\n}", buf.String())
}

func TestSave_HsvRgb(t *testing.T) {
	v := newRecord([]Field{
		{"c1", newHsv(0.5, 0.2, 0.8)},
		{"c2", newRgb(10, 20, 30)},
	})
	var buf strings.Builder
	require.NoError(t, Save(&buf, v))
	require.Equal(t, "c1=hsv { 0.5 0.2 0.8 }\nc2=rgb { 10 20 30 }\n", buf.String())
}

func TestSave_RejectsNonRecordRoot(t *testing.T) {
	var buf strings.Builder
	err := Save(&buf, newNumber(1))
	require.ErrorIs(t, err, ErrSerialize)
}

func TestSave_RoundTripThroughParse(t *testing.T) {
	original := newRecord([]Field{
		{"a", newArray([]*Value{newString("x"), newBool(true), newDate(Date{2000, 1, 2, 3})})},
		{"a", newNumber(-2.5)},
	})
	var buf strings.Builder
	require.NoError(t, Save(&buf, original))
	reparsed, err := ParseString(buf.String())
	require.NoError(t, err)
	require.True(t, equalValue(original, reparsed), "got %s", reparsed)
}

func TestSave_StringNoEscaping(t *testing.T) {
	// Backslashes are written literally, not Go-escaped — the
	// format has no escape syntax, and parseQuoted reads raw bytes up to
	// the next '"'.
	v := newRecord([]Field{{"path", newString(`C:\Users\a`)}})
	var buf strings.Builder
	require.NoError(t, Save(&buf, v))
	require.Equal(t, "path=\"C:\\Users\\a\"\n", buf.String())

	reparsed, err := ParseString(buf.String())
	require.NoError(t, err)
	require.True(t, equalValue(v, reparsed), "got %s", reparsed)
}
