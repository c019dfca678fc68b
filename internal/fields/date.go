package fields

import (
	"regexp"
	"strconv"
)

var datePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/\d{4}$`)

// daysInMonth has no leap-year rule: February always allows day 29, whatever
// the year.
var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ValidateDate accepts DD/MM/YYYY with a month in 01-12 and a day between 01
// and the month's length. "29/02/2023" is accepted.
func ValidateDate(date string) bool {
	m := datePattern.FindStringSubmatch(date)
	if m == nil {
		return false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth[month]
}
