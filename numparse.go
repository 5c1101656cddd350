package clausewitz

// parseNumber accepts exactly `-?\d+(\.\d{3}|\.\d{5})?` and returns false for
// any other shape: scientific notation, a trailing garbage byte, the wrong
// fractional digit count, or a bare '.'. It never calls strconv: the fixed
// fractional-digit-count rule makes a hand accumulator both simpler and
// allocation-free, which matters on the hot path of a savegame with
// hundreds of thousands of bare tokens.
func parseNumber(buf []byte) (float64, bool) {
	i := 0
	n := len(buf)
	if n == 0 {
		return 0, false
	}

	neg := false
	if buf[0] == '-' {
		neg = true
		i++
	}

	start := i
	var whole int64
	for i < n && isDigit(buf[i]) {
		whole = whole*10 + int64(buf[i]-'0')
		i++
	}
	if i == start {
		return 0, false // no integer digits at all
	}

	if i == n {
		v := float64(whole)
		if neg {
			v = -v
		}
		return v, true
	}

	if buf[i] != '.' {
		return 0, false
	}
	i++

	fracStart := i
	var frac int64
	for i < n && isDigit(buf[i]) {
		frac = frac*10 + int64(buf[i]-'0')
		i++
	}
	fracLen := i - fracStart
	if i != n || (fracLen != 3 && fracLen != 5) {
		return 0, false
	}

	var div float64
	if fracLen == 3 {
		div = 1000
	} else {
		div = 100000
	}
	v := float64(whole) + float64(frac)/div
	if neg {
		v = -v
	}
	return v, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
