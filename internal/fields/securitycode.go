package fields

import "strings"

const securitySymbols = "@$%(*)"

// Required character counts for a security code.
const (
	securityUpper   = 3
	securityLower   = 3
	securityDigits  = 4
	securitySymbolN = 2
)

// ValidateSecurityCode accepts a code made of exactly 3 uppercase letters,
// 3 lowercase letters, 4 digits and 2 symbols from @$%(*). Any other
// character rejects the code even if every count matches.
func ValidateSecurityCode(code string) bool {
	var upper, lower, digits, symbols int
	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
		case r >= 'a' && r <= 'z':
			lower++
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune(securitySymbols, r):
			symbols++
		default:
			return false
		}
	}
	return upper == securityUpper &&
		lower == securityLower &&
		digits == securityDigits &&
		symbols == securitySymbolN
}
