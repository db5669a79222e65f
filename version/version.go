// Package version implements pkg-config's RPM-style version comparison and
// the dependency-clause grammar used by Requires/Requires.private/Conflicts.
package version

// Compare returns an integer comparing two version strings: -1 if a < b,
// 0 if they are equal, +1 if a > b.
//
// The algorithm is RPM-compatible (§4.4): an empty string sorts below any
// non-empty string, two empty strings are equal; otherwise both strings
// are walked in lockstep, skipping runs of non-alphanumeric separator
// bytes, comparing matched numeric runs as unsigned integers (ignoring
// leading zeros) and matched alphabetic runs byte-wise, with numeric
// segments always outranking alphabetic ones. Whichever string has
// remaining non-separator content at the point the other runs out is
// greater.
func Compare(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	if a == b {
		return 0
	}

	one, two := 0, 0
	for one < len(a) || two < len(b) {
		one = skipSeparators(a, one)
		two = skipSeparators(b, two)

		if one >= len(a) || two >= len(b) {
			break
		}

		var seg1, seg2 string
		var numeric bool

		if isDigit(a[one]) {
			end := one
			for end < len(a) && isDigit(a[end]) {
				end++
			}
			seg1 = a[one:end]
			one = end

			end = two
			for end < len(b) && isDigit(b[end]) {
				end++
			}
			seg2 = b[two:end]
			two = end

			numeric = true
		} else {
			end := one
			for end < len(a) && isAlpha(a[end]) {
				end++
			}
			seg1 = a[one:end]
			one = end

			end = two
			for end < len(b) && isAlpha(b[end]) {
				end++
			}
			seg2 = b[two:end]
			two = end

			numeric = false
		}

		if seg2 == "" {
			// The other side ran out of matching segment kind: numeric
			// segments outrank a missing/alphabetic counterpart.
			if numeric {
				return 1
			}
			return -1
		}
		if seg1 == "" {
			if numeric {
				return -1
			}
			return 1
		}

		if numeric {
			seg1 = trimLeadingZeros(seg1)
			seg2 = trimLeadingZeros(seg2)
			if len(seg1) > len(seg2) {
				return 1
			}
			if len(seg1) < len(seg2) {
				return -1
			}
		}

		if seg1 < seg2 {
			return -1
		}
		if seg1 > seg2 {
			return 1
		}
	}

	aRem := remainderIsEmpty(a, one)
	bRem := remainderIsEmpty(b, two)
	if aRem && bRem {
		return 0
	}
	if aRem {
		return -1
	}
	return 1
}

func skipSeparators(s string, i int) int {
	for i < len(s) && !isAlnum(s[i]) {
		i++
	}
	return i
}

func remainderIsEmpty(s string, i int) bool {
	return skipSeparators(s, i) >= len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) }

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
