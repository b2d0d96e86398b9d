package utils

import "strings"

// NormalizePhone strips channel-specific envelope prefixes from a number as
// delivered by provider webhooks ("whatsapp:+51987654321", "+51987654321")
// down to the bare digit form stored on phone links.
func NormalizePhone(raw string) string {
	n := strings.TrimSpace(raw)
	n = strings.TrimPrefix(n, "whatsapp:")
	n = strings.TrimPrefix(n, "+")
	return n
}

// IsNumeric reports whether s is a non-empty string of ASCII digits
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SanitizePhone removes separators commonly found in spreadsheet phone cells
func SanitizePhone(raw string) string {
	n := NormalizePhone(raw)
	for _, sep := range []string{" ", "-", "(", ")", "."} {
		n = strings.ReplaceAll(n, sep, "")
	}
	return n
}
