package utils

import "regexp"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail reports whether s has a local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
