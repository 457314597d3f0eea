// Package validation holds the field checks applied before any write reaches
// the database. Every function returns an empty string for valid input and a
// user-facing message otherwise.
package validation

import (
	"regexp"
	"time"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func Email(email string) string {
	if email == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}

func Password(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return "Password must contain an uppercase letter"
	}
	if !lower {
		return "Password must contain a lowercase letter"
	}
	if !digit {
		return "Password must contain a digit"
	}
	return ""
}

// Phone accepts any formatting as long as exactly ten digits are present.
// The field is optional, so empty input is valid.
func Phone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits != 10 {
		return "Phone number must have 10 digits"
	}
	return ""
}

// DateOfBirth expects YYYY-MM-DD and requires an age between 13 and 120.
func DateOfBirth(dob string) string {
	return dateOfBirthAt(dob, time.Now())
}

func dateOfBirthAt(dob string, now time.Time) string {
	if dob == "" {
		return "Date of birth is required"
	}
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return "Date of birth must be YYYY-MM-DD"
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if birth.After(today) {
		return "Date of birth cannot be in the future"
	}
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 13 {
		return "You must be at least 13 years old"
	}
	if age > 120 {
		return "Please enter a valid date of birth"
	}
	return ""
}
