// Package checksum validates Brazilian tax identifiers by their mod-11 check
// digits.
//
// Two shapes are recognised:
//   - individual (CPF): DDD.DDD.DDD-DD, 11 digits, 14 characters
//   - corporate (CNPJ): DD.DDD.DDD/DDDD-DD, 14 digits, 18 characters
//
// Every exported predicate is total: malformed input is reported as invalid,
// never as a panic.
package checksum

import (
	"fmt"
	"regexp"

	"pixcheck/internal/domain"
	"pixcheck/pkg/platform/sentinel"
)

const (
	individualLength = 14
	corporateLength  = 18
)

var (
	individualPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	corporatePattern  = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
)

// ClassifyIdentifier decides the identifier shape from its length and
// punctuation. It does not look at check digits.
func ClassifyIdentifier(raw string) domain.IdentifierKind {
	switch len(raw) {
	case individualLength:
		if individualPattern.MatchString(raw) {
			return domain.IdentifierIndividual
		}
	case corporateLength:
		if corporatePattern.MatchString(raw) {
			return domain.IdentifierCorporate
		}
	}
	return domain.IdentifierInvalid
}

// ValidateCP dispatches by length: 14 characters to ValidateIndividualID,
// 18 to ValidateCorporateID. Any other length is invalid.
func ValidateCP(raw string) bool {
	switch len(raw) {
	case individualLength:
		return ValidateIndividualID(raw)
	case corporateLength:
		return ValidateCorporateID(raw)
	default:
		return false
	}
}

// Check classifies raw and verifies its check digits, reporting which rule
// failed. It returns sentinel.ErrFormat for a bad shape and
// sentinel.ErrChecksum for a well-formed identifier with wrong digits.
func Check(raw string) (domain.IdentifierKind, error) {
	kind := ClassifyIdentifier(raw)
	switch kind {
	case domain.IdentifierIndividual:
		if !individualDigitsMatch(digitsOf(raw)) {
			return kind, fmt.Errorf("individual identifier: %w", sentinel.ErrChecksum)
		}
	case domain.IdentifierCorporate:
		if !corporateDigitsMatch(digitsOf(raw)) {
			return kind, fmt.Errorf("corporate identifier: %w", sentinel.ErrChecksum)
		}
	default:
		return kind, fmt.Errorf("identifier shape: %w", sentinel.ErrFormat)
	}
	return kind, nil
}

// digitsOf strips punctuation, keeping decimal digits in order.
func digitsOf(raw string) []int {
	out := make([]int, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			out = append(out, int(c-'0'))
		}
	}
	return out
}
