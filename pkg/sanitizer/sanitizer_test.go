package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viteshop/backend/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"A@X.com", "a@x.com"},
		{"  User@Example.COM  ", "user@example.com"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizer.NormalizeEmail(tc.in))
	}
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"+1 (234) 567-8900", "+12345678900"},
		{"123 456 7890", "1234567890"},
		{"", ""},
		{"12+34", "1234"}, // plus only allowed at the start
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizer.NormalizePhone(tc.in))
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Alice Smith", sanitizer.NormalizeWhitespace("  Alice \t Smith \n"))
	assert.Equal(t, "", sanitizer.NormalizeWhitespace("   "))
}
