// Package privacy masks identifiers and payment keys before they reach logs
// or error values. Masking keeps enough shape to debug a rejection without
// exposing the full value.
package privacy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaskToken picks a masking rule from the token's shape:
//
//	zxhbpg@jmurip.com   -> z***@jmurip.com
//	+55(92)3584-0188    -> +**(**)****-0188
//	136.775.118-79      -> ***.***.***-79
//	90.400.888/0001-42  -> **.***.***/****-42
//	D5.D9.A9.b6         -> **.**.**.b6
//
// Anything else keeps its first rune and masks the rest. Values are NFC
// normalised first, so composed and decomposed spellings of the same token
// mask identically and no combining mark survives next to a '*'.
func MaskToken(value string) string {
	value = norm.NFC.String(value)
	switch {
	case value == "":
		return ""
	case strings.Contains(value, "@"):
		return maskEmail(value)
	default:
		return maskTail(value, tailToKeep(value))
	}
}

func maskEmail(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return strings.Repeat("*", len(value))
	}
	local, domain := value[:at], value[at:]
	_, size := utf8.DecodeRuneInString(local)
	return local[:size] + "***" + domain
}

// tailToKeep returns how many trailing runes stay visible. Punctuated tokens
// keep their last group; free text keeps nothing but its first rune.
func tailToKeep(value string) int {
	last := strings.LastIndexAny(value, ".-/")
	if last < 0 || last == len(value)-1 {
		return 0
	}
	return len([]rune(value[last+1:]))
}

// maskTail replaces every letter or digit with '*' except the last keep
// runes. Punctuation is preserved so the shape stays readable. With keep == 0
// the first rune is left visible instead.
func maskTail(value string, keep int) string {
	runes := []rune(value)
	var b strings.Builder
	b.Grow(len(value))
	for i, r := range runes {
		visible := i >= len(runes)-keep || (keep == 0 && i == 0)
		if visible || !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('*')
	}
	return b.String()
}
