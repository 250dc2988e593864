package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the yyyy-mm-dd format used for check-in dates
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate reports whether s is a real calendar date in yyyy-mm-dd form
func ValidateDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParsePositiveInt parses s as a base-10 integer greater than zero.
// Surrounding whitespace is ignored; anything else makes it invalid.
func ParsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
