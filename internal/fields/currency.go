package fields

import "regexp"

// CurrencyPrefix is the token that precedes every amount on a transaction line.
const CurrencyPrefix = "R$"

var amountPattern = regexp.MustCompile(`^R\$ (?:\d{1,3}(?:\.\d{3})+|\d+),\d{2}$`)

// ValidateAmount accepts "R$ " followed by an integer part, either plain or
// grouped in thousands with '.', then ',' and exactly two decimals:
// "R$ 57,52", "R$ 1000,00", "R$ 1.000,00".
func ValidateAmount(amount string) bool {
	return amountPattern.MatchString(amount)
}

// JoinAmount rebuilds the amount from its two whitespace-separated tokens.
func JoinAmount(prefix, value string) string {
	return prefix + " " + value
}
