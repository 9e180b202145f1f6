package resolve

// compareNatural orders strings the way humans read collector numbers:
// digit runs compare by numeric value, everything else byte-wise, so
// "9" sorts before "86a" and "86a" before "120". Equal numeric runs
// fall back to their literal spelling ("007" after "7") to keep the
// order total.
func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ia, rawA := digitRun(a, i)
			ib, rawB := digitRun(b, j)
			if c := compareDigits(rawA, rawB); c != 0 {
				return c
			}
			i, j = ia, ib
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digitRun returns the index past the digit run starting at i and the
// run itself.
func digitRun(s string, i int) (int, string) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i, s[start:i]
}

// compareDigits compares two digit runs by numeric value without
// parsing: after trimming leading zeros, a longer run is a bigger
// number and equal lengths compare lexically. Numeric ties break on
// the untrimmed spelling.
func compareDigits(a, b string) int {
	ta, tb := trimZeros(a), trimZeros(b)
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if ta != tb {
		if ta < tb {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
