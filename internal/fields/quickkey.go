package fields

import "regexp"

var (
	quickKeyPattern = regexp.MustCompile(`^(?:[0-9A-Fa-f]{2}\.){3}[0-9A-Fa-f]{2}$`)
	hexLetterRun    = regexp.MustCompile(`[A-Fa-f]{2}`)
)

// ValidateQuickKey accepts HH.HH.HH.HH (H a hex digit) unless the raw string
// contains two hex letters in a row or two identical hex characters in a row.
// Comparison of repeats is case-sensitive: "aA" is not a repeat.
func ValidateQuickKey(key string) bool {
	if !quickKeyPattern.MatchString(key) {
		return false
	}
	if hexLetterRun.MatchString(key) {
		return false
	}
	return !hasAdjacentRepeat(key)
}

func hasAdjacentRepeat(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] && isHex(s[i]) {
			return true
		}
	}
	return false
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
