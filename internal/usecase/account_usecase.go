// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterAccountInput defines the data required to register a new account.
// Permission may be left empty; self-registration never elevates beyond the
// default level.
type RegisterAccountInput struct {
	Username   string
	Email      string
	Password   string
	Permission string
	Profile    *ProfileInput
}

// ProfileInput defines a complete academic profile supplied at registration.
type ProfileInput struct {
	EnrollmentYear     int
	GraduationYear     int
	EnrollmentSemester string
	GraduationSemester string
	Major              string
	Minor              string
	Concentration      string
}

// UpdateAccountInput carries partial-update semantics: nil fields are left
// untouched, set fields are validated and applied.
type UpdateAccountInput struct {
	Username *string
	Email    *string
	Password *string
	Profile  *UpdateProfileInput
}

// UpdateProfileInput applies the same partial-field merge to the attached
// academic profile.
type UpdateProfileInput struct {
	EnrollmentYear     *int
	GraduationYear     *int
	EnrollmentSemester *string
	GraduationSemester *string
	Major              *string
	Minor              *string
	Concentration      *string
}

// --- Output DTOs ---

// AccountOutput is the public projection of an account. It never carries the
// password hash.
type AccountOutput struct {
	ID         uuid.UUID      `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	Permission string         `json:"permission"`
	Profile    *ProfileOutput `json:"profile,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ProfileOutput is the public projection of an academic profile.
type ProfileOutput struct {
	EnrollmentYear     int    `json:"enrollmentYear"`
	GraduationYear     int    `json:"graduationYear"`
	EnrollmentSemester string `json:"enrollmentSemester,omitempty"`
	GraduationSemester string `json:"graduationSemester,omitempty"`
	Major              string `json:"major"`
	Minor              string `json:"minor,omitempty"`
	Concentration      string `json:"concentration,omitempty"`
}

// AccountUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) depends on.
type AccountUsecase interface {
	// Register validates, hashes and persists a new account, optionally with
	// its academic profile, in one transaction.
	Register(ctx context.Context, input *RegisterAccountInput) (*AccountOutput, error)

	// Authenticate checks a username/password pair. It never reveals which of
	// the two was wrong.
	Authenticate(ctx context.Context, username, password string) (bool, error)

	// Get returns a single account by ID.
	Get(ctx context.Context, id uuid.UUID) (*AccountOutput, error)

	// List returns all accounts, newest first.
	List(ctx context.Context) ([]*AccountOutput, error)

	// ListPage returns a bounded page of accounts, newest first.
	ListPage(ctx context.Context, skip, limit int) ([]*AccountOutput, error)

	// Update applies a partial update and returns the resulting account.
	Update(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*AccountOutput, error)

	// Delete removes an account and its owned profile.
	Delete(ctx context.Context, id uuid.UUID) error
}
