package checksum

const individualDigits = 11

// ValidateIndividualID checks a CPF written as DDD.DDD.DDD-DD.
//
// With d[0..10] the digits in order:
//
//	v1 = (Σ d[i]*(9-i)) mod 11 mod 10                 for i in 0..8
//	v2 = (Σ d[i]*(9-((i+1) mod 10)) + 9*v1) mod 11 mod 10
//
// The identifier is valid iff v1 == d[10] and v2 == d[9].
func ValidateIndividualID(raw string) bool {
	if !individualPattern.MatchString(raw) {
		return false
	}
	return individualDigitsMatch(digitsOf(raw))
}

func individualDigitsMatch(d []int) bool {
	if len(d) != individualDigits {
		return false
	}
	v1, v2 := 0, 0
	for i := 0; i < 9; i++ {
		v1 += d[i] * (9 - i)
		v2 += d[i] * (9 - ((i + 1) % 10))
	}
	v1 = (v1 % 11) % 10
	v2 += v1 * 9
	v2 = (v2 % 11) % 10
	return v1 == d[10] && v2 == d[9]
}
