package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"jane@example.com",
		"jane.doe+tag@clinic.co.uk",
		"a_b-c@sub.domain.io",
	}
	for _, email := range valid {
		assert.Empty(t, Email(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"janeexample.com",
		"jane@",
		"@example.com",
		"jane@example",
		"jane doe@example.com",
	}
	for _, email := range invalid {
		assert.NotEmpty(t, Email(email), "expected %q to be rejected", email)
	}
}

func TestPassword(t *testing.T) {
	assert.Empty(t, Password("Abcdef12"))

	cases := map[string]string{
		"too short":    "Ab1",
		"no uppercase": "abcdef12",
		"no lowercase": "ABCDEF12",
		"no digit":     "Abcdefgh",
	}
	for name, password := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotEmpty(t, Password(password))
		})
	}
}

func TestPhone(t *testing.T) {
	assert.Empty(t, Phone(""), "optional field: empty is valid")
	assert.Empty(t, Phone("(555) 123-4567"))
	assert.Empty(t, Phone("5551234567"))
	assert.Empty(t, Phone("555-123-4567"))

	assert.NotEmpty(t, Phone("123456789"), "9 digits")
	assert.NotEmpty(t, Phone("12345678901"), "11 digits")
	assert.NotEmpty(t, Phone("(555) 123-456"), "formatted but short")
}

func TestDateOfBirth(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

	t.Run("exactly 13 today is valid", func(t *testing.T) {
		assert.Empty(t, dateOfBirthAt("2013-08-31", now))
	})

	t.Run("one day under 13 is rejected", func(t *testing.T) {
		assert.NotEmpty(t, dateOfBirthAt("2013-09-01", now))
	})

	t.Run("future date is rejected", func(t *testing.T) {
		assert.NotEmpty(t, dateOfBirthAt("2027-01-01", now))
	})

	t.Run("over 120 is rejected", func(t *testing.T) {
		assert.NotEmpty(t, dateOfBirthAt("1900-01-01", now))
	})

	t.Run("120 exactly is valid", func(t *testing.T) {
		assert.Empty(t, dateOfBirthAt("1906-08-31", now))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		assert.NotEmpty(t, dateOfBirthAt("31/08/2000", now))
		assert.NotEmpty(t, dateOfBirthAt("", now))
	})
}
