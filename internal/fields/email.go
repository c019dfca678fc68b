package fields

import "regexp"

// emailPattern is anchored only at the start. A string whose prefix is a
// valid address is accepted as a whole, so "a@b.co!!" passes.
var emailPattern = regexp.MustCompile(`^(?:[A-Za-z0-9]+[._-])*[A-Za-z0-9]+@[A-Za-z0-9-]+(?:\.[A-Za-z]{2,})+`)

// ValidateEmail accepts local-part segments joined by '.', '-' or '_', an '@',
// one or more domain labels and a top-level domain of at least two letters.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
