// Package entity contains the core business objects of the project.
package entity

// Semester marks which half of the academic year an enrollment or
// graduation falls in.
type Semester string

const (
	// SemesterFall is the autumn term.
	SemesterFall Semester = "FALL"
	// SemesterSpring is the spring term.
	SemesterSpring Semester = "SPRING"
)

// String returns the string representation of the Semester.
func (s Semester) String() string {
	return string(s)
}

// IsValid checks if the Semester is a valid value.
func (s Semester) IsValid() bool {
	switch s {
	case SemesterFall, SemesterSpring:
		return true
	default:
		return false
	}
}
