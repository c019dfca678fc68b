package fields

import "regexp"

var timePattern = regexp.MustCompile(`^[0-2]\d:[0-5]\d$`)

// ValidateTime accepts HH:MM where the hour starts with 0, 1 or 2 and the
// minute with 0-5. Hours up to 29 pass; there is no hour <= 23 check.
func ValidateTime(clock string) bool {
	return timePattern.MatchString(clock)
}
