package validation

import (
	"testing"

	domainerrors "helios/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	policy := DefaultPasswordPolicy()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Valid1Pass", wantErr: false},
		{name: "too short", password: "short1", wantErr: true},
		{name: "no uppercase", password: "alllowercase1", wantErr: true},
		{name: "no digit", password: "NoDigitsHere", wantErr: true},
		{name: "contains space", password: "Has Space1", wantErr: true},
		{name: "contains tab", password: "Has\tTab99", wantErr: true},
		{name: "digits only", password: "12345678", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password, policy)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPassword_LowercaseRequirement(t *testing.T) {
	policy := DefaultPasswordPolicy()
	policy.RequireLowercase = true

	// All-caps passes the default policy but fails the stricter one.
	assert.NoError(t, Password("ALLUPPER1", DefaultPasswordPolicy()))
	assert.ErrorIs(t, Password("ALLUPPER1", policy), domainerrors.ErrValidationFailed)
	assert.NoError(t, Password("Mixed1Case", policy))
}

func TestPassword_ErrorNeverContainsPlaintext(t *testing.T) {
	err := Password("Sup3r Secret", DefaultPasswordPolicy())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "Sup3r")
}

func TestUsername(t *testing.T) {
	assert.NoError(t, Username("alice"))
	assert.NoError(t, Username("bob"))
	assert.Error(t, Username("ab"))
	assert.Error(t, Username("has space"))
	assert.Error(t, Username(""))

	long := make([]byte, UsernameMaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, Username(string(long)))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("a@x.com"))
	assert.NoError(t, Email("First.Last+tag@example.co.uk"))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("missing@tld"))
	assert.Error(t, Email(""))
}

func TestPermission(t *testing.T) {
	assert.NoError(t, Permission("user"))
	assert.NoError(t, Permission("moderator"))
	assert.NoError(t, Permission("admin"))
	assert.Error(t, Permission("root"))
	assert.Error(t, Permission(""))
}

func TestSemester(t *testing.T) {
	assert.NoError(t, Semester("FALL"))
	assert.NoError(t, Semester("SPRING"))
	assert.Error(t, Semester("SUMMER"))
}

func TestYearOrdering(t *testing.T) {
	assert.NoError(t, YearOrdering(2020, 2024))
	assert.ErrorIs(t, YearOrdering(2024, 2024), domainerrors.ErrValidationFailed)
	assert.ErrorIs(t, YearOrdering(2025, 2024), domainerrors.ErrValidationFailed)
}

func TestYearRange(t *testing.T) {
	assert.NoError(t, YearRange(2000, "enrollment year"))
	assert.NoError(t, YearRange(2100, "graduation year"))
	assert.Error(t, YearRange(1999, "enrollment year"))
	assert.Error(t, YearRange(2101, "graduation year"))
}

func TestNoWhitespace_Label(t *testing.T) {
	err := NoWhitespace("two words", "username")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")

	// The wrapped error chain keeps the domain sentinel reachable.
	var appErr domainerrors.AppError
	assert.True(t, errors.As(err, &appErr))
}
