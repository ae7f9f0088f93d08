package utils

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// ClampInt coerces v into the inclusive range [lo, hi].
// Out-of-range command parameters are silently clamped rather than rejected.
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TruncateString cuts s down to at most maxRunes runes. Discord rejects
// messages over 2000 characters, so outbound AI replies are truncated before
// sending.
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
