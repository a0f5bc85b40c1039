package stats

import "unicode"

// ParseYear reads the leading integer of a year field, skipping leading
// whitespace and accepting an optional sign ("1962 (live)" reads as 1962).
// It reports false when no digits lead the value.
func ParseYear(s string) (int, bool) {
	rs := []rune(s)
	i := 0
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}

	sign := 1
	if i < len(rs) && (rs[i] == '+' || rs[i] == '-') {
		if rs[i] == '-' {
			sign = -1
		}
		i++
	}

	n, digits := 0, 0
	for ; i < len(rs) && rs[i] >= '0' && rs[i] <= '9'; i++ {
		n = n*10 + int(rs[i]-'0')
		digits++
		if n > 1<<31 {
			break
		}
	}
	if digits == 0 {
		return 0, false
	}
	return sign * n, true
}
