package clausewitz

import "math"

// cutQ1616 decodes the binary parser's 0x0167 float payload: a Q16.16
// fixed-point integer, doubled and truncated to 5 decimal digits:
// floor((n * 2 / 65536) * 100000) / 100000.
func cutQ1616(n int32) float64 {
	scaled := float64(n) * 2 / 65536
	return math.Floor(scaled*100000) / 100000
}

// cut32 decodes the binary parser's 0x000D float payload: a plain
// three-decimal fixed-point integer.
func cut32(n int32) float64 {
	return float64(n) / 1000.0
}
