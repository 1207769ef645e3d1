package validate

import "regexp"

var (
	phoneRe = regexp.MustCompile(`^[0-9]{10,15}$`)
	upiRe   = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,64}@[a-zA-Z]{2,32}$`)
)

// IsPhone reports whether s looks like a bare subscriber number
// (10-15 digits, no separators or country prefix).
func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsUPI reports whether s is a well-formed UPI VPA, e.g. "name@bank".
func IsUPI(s string) bool {
	return upiRe.MatchString(s)
}
