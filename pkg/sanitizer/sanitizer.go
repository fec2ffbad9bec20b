// Package sanitizer normalizes user-supplied input before validation and
// storage. Email lowercasing here is what makes the unique index on the
// users collection effectively case-insensitive.
package sanitizer

import (
	"strings"
	"unicode"
)

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Applied before every lookup and write so "A@X.com" and "a@x.com" address
// the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps a leading plus sign and digits, dropping separators
// like spaces, dashes, and parentheses.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range phone {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeWhitespace trims and collapses internal runs of whitespace into
// single spaces. Used for display names and address fields.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
