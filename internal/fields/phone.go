package fields

import "regexp"

var phonePattern = regexp.MustCompile(`^\+55\(\d{2}\)\d{4}-\d{4}$`)

// ValidatePhone accepts exactly +55(DD)DDDD-DDDD.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
