package phone

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// Normalize returns the number in E.164 form ("+15551234567"). Ten-digit numbers
// are treated as North American; an explicit "+" keeps the given country code.
// Returns "" when the input cannot be a dialable number.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	explicit := strings.HasPrefix(raw, "+")
	digits := nonDigit.ReplaceAllString(raw, "")

	switch {
	case explicit && len(digits) >= 8 && len(digits) <= 15:
		return "+" + digits
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	}
	return ""
}

func Valid(raw string) bool {
	return Normalize(raw) != ""
}

// Display formats North American numbers as "(555) 123-4567"; others are returned normalized.
func Display(raw string) string {
	n := Normalize(raw)
	if len(n) == 12 && strings.HasPrefix(n, "+1") {
		return "(" + n[2:5] + ") " + n[5:8] + "-" + n[8:]
	}
	if n == "" {
		return raw
	}
	return n
}

// Mask hides all but the last four characters for logs.
func Mask(raw string) string {
	if len(raw) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(raw)-4) + raw[len(raw)-4:]
}
