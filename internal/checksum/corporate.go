package checksum

const corporateDigits = 14

var (
	corporateFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	corporateSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateCorporateID checks a CNPJ written as DD.DDD.DDD/DDDD-DD. Both check
// digits are 11 minus the weighted sum mod 11, clamped to 0 when the result is
// 10 or more.
func ValidateCorporateID(raw string) bool {
	if !corporatePattern.MatchString(raw) {
		return false
	}
	return corporateDigitsMatch(digitsOf(raw))
}

func corporateDigitsMatch(d []int) bool {
	if len(d) != corporateDigits {
		return false
	}
	first := corporateCheckDigit(d, corporateFirstWeights)
	second := corporateCheckDigit(d, corporateSecondWeights)
	return first == d[12] && second == d[13]
}

func corporateCheckDigit(d, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += d[i] * w
	}
	check := 11 - sum%11
	if check >= 10 {
		return 0
	}
	return check
}
