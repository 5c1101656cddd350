package clausewitz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1", 1, true},
		{"-1", -1, true},
		{"0", 0, true},
		{"2.000", 2, true},
		{"1.500", 1.5, true},
		{"-1.500", -1.5, true},
		{"1.78732", 1.78732, true},
		{"1.0000", 0, false}, // four-digit fraction
		{"1e10", 0, false},
		{"1.a.1", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{".500", 0, false},
		{"1.", 0, false},
	} {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := parseNumber([]byte(tc.input))
			require.Equal(t, tc.ok, ok)
			if ok {
				require.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestCutQ1616(t *testing.T) {
	for _, tc := range []struct {
		bytes []byte
		want  float64
	}{
		{[]byte{0x00, 0x40, 0x08, 0x00}, 16.5},
		{[]byte{0xc7, 0xe4, 0x00, 0x00}, 1.78732},
	} {
		t.Run(fmt.Sprintf("%x", tc.bytes), func(t *testing.T) {
			n := int32(uint32(tc.bytes[0]) | uint32(tc.bytes[1])<<8 | uint32(tc.bytes[2])<<16 | uint32(tc.bytes[3])<<24)
			require.InDelta(t, tc.want, cutQ1616(n), 1e-5)
		})
	}
}
