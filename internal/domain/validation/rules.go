// Package validation holds the pure field validators guarding account input.
// Every rule is stateless and fails fast with a ValidationFailed domain error
// before any persistence side effect can occur.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
)

const (
	// UsernameMinLength and UsernameMaxLength bound the login name.
	UsernameMinLength = 3
	UsernameMaxLength = 100

	// EmailMaxLength bounds the stored email column.
	EmailMaxLength = 100

	// MinYear and MaxYear bound enrollment and graduation years to a
	// plausible calendar range.
	MinYear = 2000
	MaxYear = 2100
)

// emailPattern is compiled once; matching is case-insensitive.
var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// PasswordPolicy describes the complexity rules a plaintext password must meet.
type PasswordPolicy struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumbers   bool
}

// DefaultPasswordPolicy returns the rules applied when configuration stays silent:
// at least 8 characters with a digit, a letter and an uppercase letter.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		MaxLength:        255,
		RequireUppercase: true,
		RequireNumbers:   true,
	}
}

// NoWhitespace fails if the value contains any space character.
func NoWhitespace(value, label string) error {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage(fmt.Sprintf("%s cannot contain whitespace", label))
	}

	return nil
}

// Username checks the login name shape: 3-100 characters, no whitespace.
func Username(value string) error {
	if len(value) < UsernameMinLength || len(value) > UsernameMaxLength {
		return domainerrors.ErrValidationFailed.WrapMessage(
			fmt.Sprintf("username must be between %d and %d characters", UsernameMinLength, UsernameMaxLength))
	}

	return NoWhitespace(value, "username")
}

// Email checks syntax and length of an email address.
func Email(value string) error {
	if len(value) == 0 || len(value) > EmailMaxLength {
		return domainerrors.ErrValidationFailed.WrapMessage(
			fmt.Sprintf("email must be between 1 and %d characters", EmailMaxLength))
	}
	if !emailPattern.MatchString(value) {
		return domainerrors.ErrValidationFailed.WrapMessage("email address is not valid")
	}

	return nil
}

// Password checks a plaintext password against the policy.
// The plaintext is never included in the returned error.
func Password(value string, policy PasswordPolicy) error {
	if err := NoWhitespace(value, "password"); err != nil {
		return err
	}
	if len(value) < policy.MinLength {
		return domainerrors.ErrValidationFailed.WrapMessage(
			fmt.Sprintf("password must be at least %d characters long", policy.MinLength))
	}
	if policy.MaxLength > 0 && len(value) > policy.MaxLength {
		return domainerrors.ErrValidationFailed.WrapMessage(
			fmt.Sprintf("password must be at most %d characters long", policy.MaxLength))
	}

	var hasDigit, hasLetter, hasUpper, hasLower bool
	for _, r := range value {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasLetter = true
			hasUpper = true
		case unicode.IsLetter(r):
			hasLetter = true
			if unicode.IsLower(r) {
				hasLower = true
			}
		}
	}

	if policy.RequireNumbers && !hasDigit {
		return domainerrors.ErrValidationFailed.WrapMessage("password must contain at least one digit")
	}
	if !hasLetter {
		return domainerrors.ErrValidationFailed.WrapMessage("password must contain at least one letter")
	}
	if policy.RequireUppercase && !hasUpper {
		return domainerrors.ErrValidationFailed.WrapMessage("password must contain at least one uppercase letter")
	}
	if policy.RequireLowercase && !hasLower {
		return domainerrors.ErrValidationFailed.WrapMessage("password must contain at least one lowercase letter")
	}

	return nil
}

// Permission fails unless the value is a member of the permission enumeration.
func Permission(value string) error {
	if !entity.Permission(value).IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage(fmt.Sprintf("unknown permission %q", value))
	}

	return nil
}

// Semester fails unless the value is a member of the semester enumeration.
func Semester(value string) error {
	if !entity.Semester(value).IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage(fmt.Sprintf("unknown semester %q", value))
	}

	return nil
}

// YearRange bounds a year to the plausible calendar range.
func YearRange(year int, label string) error {
	if year < MinYear || year > MaxYear {
		return domainerrors.ErrValidationFailed.WrapMessage(
			fmt.Sprintf("%s must be between %d and %d", label, MinYear, MaxYear))
	}

	return nil
}

// YearOrdering enforces that enrollment strictly precedes graduation.
func YearOrdering(enrollmentYear, graduationYear int) error {
	if enrollmentYear >= graduationYear {
		return domainerrors.ErrValidationFailed.WrapMessage("enrollment year must be before graduation year")
	}

	return nil
}
