package fields

import (
	"unicode"

	"pixcheck/internal/domain"
)

// ClassifyKey picks the key variant from its shape alone, before any grammar
// runs. The rules are tried in order:
//
//	leading '+'          -> phone
//	'.' as third rune    -> quick key
//	leading letter       -> email
//	anything else        -> invalid
func ClassifyKey(key string) domain.KeyKind {
	runes := []rune(key)
	switch {
	case len(runes) == 0:
		return domain.KeyInvalid
	case runes[0] == '+':
		return domain.KeyPhone
	case len(runes) > 2 && runes[2] == '.':
		return domain.KeyQuick
	case unicode.IsLetter(runes[0]):
		return domain.KeyEmail
	default:
		return domain.KeyInvalid
	}
}

// ValidateKey classifies key and runs the grammar for its variant. It returns
// the variant together with the verdict; an invalid variant is never valid.
func ValidateKey(key string) (domain.KeyKind, bool) {
	kind := ClassifyKey(key)
	switch kind {
	case domain.KeyPhone:
		return kind, ValidatePhone(key)
	case domain.KeyQuick:
		return kind, ValidateQuickKey(key)
	case domain.KeyEmail:
		return kind, ValidateEmail(key)
	default:
		return kind, false
	}
}
