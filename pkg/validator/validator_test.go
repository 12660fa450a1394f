package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listora/identity/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "Jane"),
			validator.ValidEmail("email", "jane@example.com"),
			validator.MinLength("password", "longenough", 8),
		)
		assert.NoError(t, err)
	})

	t.Run("collects all failures", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "  "),
			validator.ValidEmail("email", "not-an-email"),
		)
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
		assert.Contains(t, verrs.Fields(), "name")
		assert.Contains(t, verrs.Fields(), "email")
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "user+tag@example.co.uk", "a.b@x.io"}
	for _, email := range valid {
		assert.NoError(t, validator.Apply(validator.ValidEmail("email", email)), email)
	}

	invalid := []string{"", "plain", "a@", "@x.com", "Jane <a@x.com>", "a b@x.com"}
	for _, email := range invalid {
		assert.Error(t, validator.Apply(validator.ValidEmail("email", email)), email)
	}
}

func TestMinLength(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MinLength("password", "12345678", 8)))
	assert.Error(t, validator.Apply(validator.MinLength("password", "1234567", 8)))
}
