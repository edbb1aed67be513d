// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core identity record of the system. The password is held only
// as an irreversible hash; the plaintext never reaches this type.
type Account struct {
	ID              uuid.UUID        // Unique identifier, generated at creation and immutable afterwards.
	Username        string           // Login name, globally unique, no whitespace.
	Email           string           // Contact address, globally unique.
	PasswordHash    string           // Salted one-way hash of the account's secret.
	Permission      Permission       // Access level; self-registration never exceeds PermissionUser.
	AcademicProfile *AcademicProfile // Optional 1:1 sub-record. Nil when the account has no profile.
	CreatedAt       time.Time        // Timestamp of account creation, immutable.
	UpdatedAt       time.Time        // Timestamp of the last modification.
}

// AcademicProfile holds enrollment data owned by exactly one Account.
// Deleting the account removes the profile with it.
type AcademicProfile struct {
	AccountID          uuid.UUID // Foreign key to the owning Account; also the profile's own primary key.
	EnrollmentYear     int       // Bounded 2000..2100, strictly before GraduationYear.
	GraduationYear     int
	EnrollmentSemester *Semester // Optional semester detail.
	GraduationSemester *Semester
	Major              string // Required field of study.
	Minor              string // Optional.
	Concentration      string // Optional.
	UpdatedAt          time.Time
}
