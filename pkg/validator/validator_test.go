package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viteshop/backend/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "Alice"),
			validator.MinLen("password", "secret1", 6),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "  "),
			validator.MinLen("password", "abc", 6),
		)
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
		assert.True(t, verrs.Has("name"))
		assert.True(t, verrs.Has("password"))
		assert.Equal(t, []string{"name", "password"}, verrs.Fields())
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	t.Run("Required trims whitespace", func(t *testing.T) {
		t.Parallel()

		assert.False(t, validator.Required("f", " \t ").Check())
		assert.True(t, validator.Required("f", "x").Check())
	})

	t.Run("MinLen and MaxLen", func(t *testing.T) {
		t.Parallel()

		assert.True(t, validator.MinLen("f", "1234567890", 10).Check())
		assert.False(t, validator.MinLen("f", "123456789", 10).Check())
		assert.True(t, validator.MaxLen("f", "abc", 3).Check())
		assert.False(t, validator.MaxLen("f", "abcd", 3).Check())
	})

	t.Run("Equal", func(t *testing.T) {
		t.Parallel()

		assert.True(t, validator.Equal("confirmPassword", "a", "a", "passwords do not match").Check())
		assert.False(t, validator.Equal("confirmPassword", "a", "b", "passwords do not match").Check())
	})

	t.Run("ValidEmail", func(t *testing.T) {
		t.Parallel()

		valid := []string{"a@x.com", "user.name+tag@example.co.uk"}
		for _, v := range valid {
			assert.True(t, validator.ValidEmail("email", v).Check(), v)
		}

		invalid := []string{"", "plain", "@x.com", "a@nodot", "a@.com", "a@x.com."}
		for _, v := range invalid {
			assert.False(t, validator.ValidEmail("email", v).Check(), v)
		}
	})
}
